// Package errors provides the structured error type raised by the registry.
//
// Every failure is an *AppError carrying one of three lifecycle codes:
// SETUP_ERROR while building a package, MOUNTING_ERROR while installing
// providers, and INJECTION_ERROR when a token cannot be resolved. Details
// always include the canonical token name and, where known, the package.
package errors

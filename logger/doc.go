// Package logger provides structured logging for dime using zerolog.
//
// It supports JSON and console output, level configuration, and
// component-scoped loggers with map-based structured fields.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.WithComponent("di")
//	log.Info("Packages mounted", logger.Fields(logger.FieldProviders, 3))
package logger

// Package version reports which version of dime is linked into a binary.
//
// The version is read from the Go build info and can be pinned at compile
// time via -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/dime/version.Version=v1.0.0"
package version

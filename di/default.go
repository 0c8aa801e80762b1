package di

import (
	"github.com/kbukum/dime/provider"
	"github.com/kbukum/dime/token"
)

// Package-level functions operate on Default().

// Configure starts a mount on the default instance.
func Configure() *SetupBuilder { return Default().Configure() }

// MountPackages mounts packages into the default instance.
func MountPackages(packages ...*provider.Package) error {
	return Default().MountPackages(packages...)
}

// TearDown resets the default instance.
func TearDown() { Default().TearDown() }

// Get resolves tok on the default instance.
func Get(tok token.Token) (any, error) { return Default().Get(tok) }

// GetValidToken matches tok against the default instance's registry.
func GetValidToken(tok token.Token) (token.Token, bool) {
	return Default().GetValidToken(tok)
}

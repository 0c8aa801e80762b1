package provider

import (
	"fmt"

	"github.com/kbukum/dime/errors"
	"github.com/kbukum/dime/token"
)

// Package is an immutable, ordered bundle of providers with unique
// canonical token names.
type Package struct {
	name      string
	providers []Provider
}

func (*Package) entry() {}

// NewPackage flattens entries into a package. Nested packages contribute
// their providers in order; the first provider seen for a canonical name
// wins and later ones are dropped.
func NewPackage(name string, entries ...Entry) (*Package, error) {
	p := &Package{name: name, providers: make([]Provider, 0, len(entries))}
	seen := make(map[string]struct{}, len(entries))

	for i, e := range entries {
		switch v := e.(type) {
		case nil:
			return nil, errors.Setup(name, fmt.Sprintf("Expected provider or package but got <nil> at position %d", i))
		case *Package:
			if v == nil {
				return nil, errors.Setup(name, fmt.Sprintf("Expected provider or package but got nil package at position %d", i))
			}
			for _, nested := range v.providers {
				if err := p.add(nested, seen); err != nil {
					return nil, err
				}
			}
		case Provider:
			if err := p.add(v, seen); err != nil {
				return nil, err
			}
		default:
			return nil, errors.Setup(name, fmt.Sprintf("Could not parse provider %T", e))
		}
	}
	return p, nil
}

// MustPackage is like NewPackage but panics on error. Intended for
// package-level variable declarations.
func MustPackage(name string, entries ...Entry) *Package {
	p, err := NewPackage(name, entries...)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *Package) add(pr Provider, seen map[string]struct{}) error {
	if pr.Token == nil {
		return errors.Setup(p.name, fmt.Sprintf("Could not parse provider %s", pr))
	}

	normalized := normalize(pr)
	key := token.Name(normalized.Token)
	if _, dup := seen[key]; dup {
		return nil
	}
	seen[key] = struct{}{}
	p.providers = append(p.providers, normalized)
	return nil
}

// normalize rewrites factory classes into plain factories so the mount
// pipeline only deals with class, value and factory providers.
func normalize(pr Provider) Provider {
	switch {
	case pr.selfTyped():
		return Provider{Token: pr.Token, Kind: KindClass, construct: pr.construct}
	case pr.Kind == KindFactoryClass:
		return Provider{Token: pr.Token, Kind: KindFactory, factory: pr.Construct}
	default:
		return pr
	}
}

// Name returns the package name used in error messages.
func (p *Package) Name() string { return p.name }

// Providers returns a copy of the normalized providers in order.
func (p *Package) Providers() []Provider {
	out := make([]Provider, len(p.providers))
	copy(out, p.providers)
	return out
}

// Len returns the number of providers.
func (p *Package) Len() int { return len(p.providers) }

// Has reports whether the package holds a provider with tok's canonical name.
func (p *Package) Has(tok token.Token) bool {
	name := token.Name(tok)
	for _, pr := range p.providers {
		if token.Name(pr.Token) == name {
			return true
		}
	}
	return false
}

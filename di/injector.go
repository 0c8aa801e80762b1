package di

import (
	"context"
	"fmt"

	"github.com/kbukum/dime/errors"
	"github.com/kbukum/dime/observability"
	"github.com/kbukum/dime/registry"
	"github.com/kbukum/dime/token"
)

// Injector reads resolved values from a registry.
type Injector interface {
	// Get returns the value for tok, invoking a factory when tok is bound
	// to one. A miss is an injection error.
	Get(tok token.Token) (any, error)
	// GetValidToken returns the first registered key whose normalized name
	// matches tok.
	GetValidToken(tok token.Token) (token.Token, bool)
	// Has reports whether tok has a matching key.
	Has(tok token.Token) bool
}

// MapInjector is the Injector backed by a registry.KeyMap.
type MapInjector struct {
	keys    *registry.KeyMap
	metrics *observability.Metrics
}

// NewMapInjector returns an injector reading keys.
func NewMapInjector(keys *registry.KeyMap) *MapInjector {
	return &MapInjector{keys: keys}
}

// Get implements Injector.
func (i *MapInjector) Get(tok token.Token) (any, error) {
	key, ok := i.GetValidToken(tok)
	if !ok {
		i.metrics.RecordResolve(context.Background(), observability.StatusMiss)
		name := token.Name(tok)
		return nil, errors.Injection(name, fmt.Sprintf("Couldn't find value for token `%s`!", name))
	}
	i.metrics.RecordResolve(context.Background(), observability.StatusHit)
	v, _ := i.keys.Get(key)
	return v, nil
}

// GetValidToken implements Injector.
func (i *MapInjector) GetValidToken(tok token.Token) (token.Token, bool) {
	if tok == nil {
		return nil, false
	}
	return i.keys.Find(func(k token.Token) bool { return token.Match(k, tok) })
}

// Has implements Injector.
func (i *MapInjector) Has(tok token.Token) bool {
	_, ok := i.GetValidToken(tok)
	return ok
}

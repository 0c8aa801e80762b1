package di

import (
	"fmt"
	"reflect"

	"github.com/kbukum/dime/errors"
	"github.com/kbukum/dime/token"
)

// Resolve resolves tok with type safety, returns error on failure.
//
// Example:
//
//	mailer, err := di.Resolve[*Mailer](d, token.String("mailer"))
//	if err != nil {
//	    return fmt.Errorf("failed to get mailer: %w", err)
//	}
func Resolve[T any](inj Injector, tok token.Token) (T, error) {
	var zero T
	instance, err := inj.Get(tok)
	if err != nil {
		return zero, err
	}
	result, ok := instance.(T)
	if !ok {
		name := token.Name(tok)
		return zero, errors.Injection(name, fmt.Sprintf("Value for token `%s` is %T, expected %s",
			name, instance, reflect.TypeFor[T]()))
	}
	return result, nil
}

// MustResolve resolves tok with type safety, panics on error.
// Use this during wiring when a missing dependency is a programming error.
func MustResolve[T any](inj Injector, tok token.Token) T {
	result, err := Resolve[T](inj, tok)
	if err != nil {
		panic(fmt.Sprintf("di: %v", err))
	}
	return result
}

// TryResolve resolves tok, returns zero value and false if not found or of
// another type. Use this when a dependency is optional.
//
//	if clock, ok := di.TryResolve[Clock](d, token.String("clock")); ok {
//	    now = clock.Now()
//	}
func TryResolve[T any](inj Injector, tok token.Token) (T, bool) {
	result, err := Resolve[T](inj, tok)
	return result, err == nil
}

// ResolveType resolves the provider registered for T's type name, the token
// used by provider.Class and provider.Constructor.
//
//	cache, err := di.ResolveType[*Cache](d)
func ResolveType[T any](inj Injector) (T, error) {
	return Resolve[T](inj, token.TypeOf[T]())
}

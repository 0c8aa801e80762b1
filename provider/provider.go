package provider

import (
	"fmt"

	"github.com/kbukum/dime/token"
)

// Kind determines how a provider produces its value.
type Kind int

const (
	KindNone         Kind = iota // no producer; rejected at mount
	KindClass                    // constructed once at mount, shared afterwards
	KindValue                    // stored as given
	KindFactory                  // function invoked on every resolution
	KindFactoryClass             // type constructed fresh on every resolution
)

func (k Kind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindValue:
		return "value"
	case KindFactory:
		return "factory"
	case KindFactoryClass:
		return "factory_class"
	default:
		return "none"
	}
}

// Entry is anything accepted by NewPackage: a Provider or a *Package.
type Entry interface {
	entry()
}

// Provider declares how to produce the value for a token.
type Provider struct {
	Token token.Token
	Kind  Kind

	construct func() any
	value     any
	factory   func() any
}

func (Provider) entry() {}

// Construct runs the class constructor. Only meaningful for KindClass and
// KindFactoryClass.
func (p Provider) Construct() any {
	if p.construct == nil {
		return nil
	}
	return p.construct()
}

// Value returns the stored value of a KindValue provider.
func (p Provider) Value() any { return p.value }

// Factory returns the producer of a KindFactory provider.
func (p Provider) Factory() func() any { return p.factory }

// String implements fmt.Stringer.
func (p Provider) String() string {
	return fmt.Sprintf("Provider(%s, %s)", token.Name(p.Token), p.Kind)
}

// selfTyped reports whether the provider's token is the type it constructs,
// the shape produced by Class and Constructor.
func (p Provider) selfTyped() bool {
	_, ok := p.Token.(token.Type)
	return ok && p.Kind == KindClass
}

func newOf[T any]() func() any {
	return func() any { return new(T) }
}

func ctorOf[T any](fn func() T) func() any {
	return func() any { return fn() }
}

// Class is a bare type reference: the token is T's type and a single *T is
// created at mount time.
func Class[T any]() Provider {
	return Provider{Token: token.TypeOf[T](), Kind: KindClass, construct: newOf[T]()}
}

// Constructor is a bare type reference with a custom constructor. The token
// is T's type, so Constructor(NewService) registers under "Service" when
// NewService returns *Service.
func Constructor[T any](fn func() T) Provider {
	return Provider{Token: token.TypeOf[T](), Kind: KindClass, construct: ctorOf(fn)}
}

// UseClass registers a single *T under tok.
func UseClass[T any](tok token.Token) Provider {
	return Provider{Token: tok, Kind: KindClass, construct: newOf[T]()}
}

// UseConstructor registers the single result of fn under tok.
func UseConstructor[T any](tok token.Token, fn func() T) Provider {
	return Provider{Token: tok, Kind: KindClass, construct: ctorOf(fn)}
}

// UseValue registers v under tok as-is. Functions are stored, not called.
func UseValue(tok token.Token, v any) Provider {
	return Provider{Token: tok, Kind: KindValue, value: v}
}

// UseFactory registers fn under tok. Every resolution calls fn again.
func UseFactory(tok token.Token, fn func() any) Provider {
	return Provider{Token: tok, Kind: KindFactory, factory: fn}
}

// UseFactoryClass registers a fresh *T per resolution under tok.
func UseFactoryClass[T any](tok token.Token) Provider {
	return Provider{Token: tok, Kind: KindFactoryClass, construct: newOf[T]()}
}

// UseFactoryConstructor registers a fresh fn() result per resolution under tok.
func UseFactoryConstructor[T any](tok token.Token, fn func() T) Provider {
	return Provider{Token: tok, Kind: KindFactoryClass, construct: ctorOf(fn)}
}

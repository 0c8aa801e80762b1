package token

import (
	"fmt"
	"reflect"
	"unicode"
	"unicode/utf8"
)

// Token identifies a provider. It is implemented by String, *Symbol and Type only.
type Token interface {
	// Name returns the canonical name used for identity comparison.
	Name() string
	token()
}

// String is a token identified by its literal value.
type String string

// Name returns the string itself.
func (s String) Name() string { return string(s) }

func (String) token() {}

// Symbol is an opaque token carrying a description. Two symbols with the
// same description are different keys in a registry but share a name.
type Symbol struct {
	description string
}

// New creates a Symbol with the given description.
func New(description string) *Symbol {
	return &Symbol{description: description}
}

// Name returns the symbol's description.
func (s *Symbol) Name() string {
	if s == nil {
		return ""
	}
	return s.description
}

// String implements fmt.Stringer.
func (s *Symbol) String() string {
	return fmt.Sprintf("Symbol(%s)", s.Name())
}

func (*Symbol) token() {}

// Type is a token referring to a Go type. Its name is the declared type
// name with pointer indirections removed.
type Type struct {
	typ reflect.Type
}

// TypeOf returns the Type token for T.
func TypeOf[T any]() Type {
	return Type{typ: reflect.TypeOf((*T)(nil)).Elem()}
}

// TypeFor returns the Type token for an existing reflect.Type.
func TypeFor(t reflect.Type) Type {
	return Type{typ: t}
}

// Name returns the declared name of the referenced type.
func (t Type) Name() string {
	rt := t.typ
	if rt == nil {
		return ""
	}
	for rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	if n := rt.Name(); n != "" {
		return n
	}
	return rt.String()
}

// Reflect returns the underlying reflect.Type.
func (t Type) Reflect() reflect.Type { return t.typ }

// String implements fmt.Stringer.
func (t Type) String() string {
	if t.typ == nil {
		return "Type(<nil>)"
	}
	return fmt.Sprintf("Type(%s)", t.typ)
}

func (Type) token() {}

// Name returns the canonical name of t. A nil token has the empty name.
func Name(t Token) string {
	if t == nil {
		return ""
	}
	return t.Name()
}

// Of converts a string, Token or reflect.Type into a Token.
func Of(v any) (Token, error) {
	switch tv := v.(type) {
	case Token:
		return tv, nil
	case string:
		return String(tv), nil
	case reflect.Type:
		if tv == nil {
			return nil, fmt.Errorf("token: nil reflect.Type")
		}
		return Type{typ: tv}, nil
	case nil:
		return nil, fmt.Errorf("token: nil value")
	default:
		return nil, fmt.Errorf("token: unsupported token value %T", v)
	}
}

// Normalize upper-cases the first rune of name and leaves the rest untouched,
// so "someValue" and "SomeValue" normalize identically.
func Normalize(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}
	upper := unicode.ToUpper(r)
	if upper == r {
		return name
	}
	return string(upper) + name[size:]
}

// Match reports whether a and b name the same provider.
func Match(a, b Token) bool {
	return Normalize(Name(a)) == Normalize(Name(b))
}

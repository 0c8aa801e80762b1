// Package registry provides the ordered token store behind a Dime instance.
//
// Keys are compared by exact identity: two Symbol tokens with the same
// description are separate entries here. Name-based matching is layered on
// top by the di package.
//
//	m := registry.New()
//	m.Set(token.String("port"), 8080)
//	m.SetProducer(token.String("now"), func() any { return time.Now() })
//	v, ok := m.Get(token.String("now")) // fresh value on every call
package registry

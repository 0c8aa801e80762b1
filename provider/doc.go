// Package provider declares providers and bundles them into packages.
//
// A provider is built with one of the constructors below and never by
// inspecting values at runtime:
//
//	provider.Class[Cache]()                                  // *Cache singleton, token "Cache"
//	provider.Constructor(NewMailer)                          // singleton from a constructor
//	provider.UseValue(token.String("port"), 8080)            // fixed value
//	provider.UseFactory(token.String("now"), func() any { return time.Now() })
//	provider.UseFactoryClass[Request](token.String("req"))   // fresh *Request per resolution
//
// Packages flatten nested packages and drop later providers whose canonical
// token name was already seen:
//
//	core := provider.MustPackage("Core", provider.Class[Cache]())
//	app := provider.MustPackage("App", core, provider.Constructor(NewMailer))
package provider

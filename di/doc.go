// Package di mounts provider packages into a registry and resolves tokens
// against it.
//
// A Dime instance owns one registry and one mount-complete event. Mounting
// installs every provider in package order and then fires the event, which
// is what deferred injection points in package inject wait on.
//
// # Mounting
//
//	d := di.New()
//	err := d.Configure().
//	    WithPackages(corePackage, httpPackage).
//	    Lazy().
//	    Load()
//
// A repeated canonical token name across the mounted packages, or against
// an earlier mount that was not torn down, fails with a mounting error.
//
// # Resolution
//
//	port, err := di.Resolve[int](d, token.String("port"))
//	cache := di.MustResolve[*Cache](d, token.TypeOf[Cache]())
//
// Names match after upper-casing their first letter, so "someValue"
// resolves a provider registered as "SomeValue".
//
// # Default instance
//
// The package-level Configure, MountPackages, TearDown, Get and
// GetValidToken functions use Default(), whose settings are read by
// config.Load.
package di

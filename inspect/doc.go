// Package inspect exposes a read-only HTTP view of a di.Dime using Gin.
//
// Mount it on an existing engine:
//
//	inspect.Register(engine.Group("/debug/dime"), d)
//
// or serve it on its own:
//
//	http.ListenAndServe(":9090", inspect.NewRouter(d))
//
// Listing tokens never invokes factories.
package inspect

// Package token defines the identity used to register and request providers.
//
// A token is one of three variants:
//
//	token.String("config")           // plain name
//	token.New("db-connection")       // opaque symbol, identity by pointer
//	token.TypeOf[UserService]()      // type reference, named after the type
//
// Every token has a canonical name (Name). Lookups compare canonical names
// after upper-casing the first letter (Normalize), so a property-derived
// "userService" finds a type-derived "UserService".
package token

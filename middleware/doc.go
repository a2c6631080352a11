// Package middleware exposes HTTP middleware adapters that resolve a shared
// session for the wrapped handler, built on top of memory.Store loads.
//
// # Guards
//
//   - [Require] — resolves the session identifier from the X-Session-Key header.
//   - [RequireToken] — resolves the identifier from a signed bearer token.
//
// Each guard loads the session from the store and injects the handle into the
// request context, where [SessionFromContext] retrieves it.
//
// # Architecture boundaries
//
// This package translates HTTP semantics into Store calls. It does NOT
// implement session logic itself — lookup and decoding are delegated to
// memory.Store.
//
// # What this package must NOT do
//
//   - Talk to Redis directly (Store handles I/O).
//   - Mutate or save sessions (handlers own the write path).
//   - Mint tokens (token.Manager owns issuance).
package middleware

// Package memory provides an ephemeral, shared session store backed by Redis. It gives
// independent request handlers in a distributed service a named bag of session data under
// a shared identifier, with automatic expiry and explicit destruction.
//
// The package is designed for concurrent server workloads: [Store] methods are safe to
// call from multiple goroutines after construction through [New] or [Open]. Individual
// [Session] handles are not synchronized; each goroutine should load its own handle.
//
// # Architecture boundaries
//
// memory is the public surface. It exposes [Store], [Session], [Config], and value types
// (MetricsSnapshot, Field, etc.). The Redis wire format — a JSON object whose field order
// is preserved, with one reserved expiry entry — is owned entirely by this package and
// never leaks through the API.
//
// # What this package must NOT do
//
//   - Expose the ordered-map container or encoding details in its public API.
//   - Retry, log, or fall back on backend failures; errors propagate to the caller.
//   - Perform backend I/O outside of Load, Ping, and the Session lifecycle methods
//     (Create is allocation-only).
//   - Start background goroutines; every operation is one synchronous round trip.
//
// # Performance contract
//
// Load is the hot path. It must complete in a single Redis GET plus one JSON decode.
// Save, Extend, and Close are allowed one Redis command each.
package memory

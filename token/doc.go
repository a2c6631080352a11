// Package token issues and verifies signed session tokens that carry a
// session identifier, letting services hand out a compact pointer to a shared
// session without exposing raw store identifiers.
package token

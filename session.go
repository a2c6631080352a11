package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Field is a single session entry. Entries preserve the order in which keys
// were first set.
type Field struct {
	Key   string
	Value any
}

// Session is an in-memory handle over one shared session. All field mutations
// are local until [Session.Save]; nothing here talks to Redis except the
// Save, Extend, and Close lifecycle operations. A Session is not safe for
// concurrent use.
type Session struct {
	store  *Store
	id     string
	ttl    time.Duration
	fields *orderedmap.OrderedMap[string, any]
}

// ID returns the session identifier. Immutable for the lifetime of the handle.
func (s *Session) ID() string {
	return s.id
}

// TTL returns the per-session expiry override. Zero means the session
// inherits the store default.
func (s *Session) TTL() time.Duration {
	return s.ttl
}

// SetTTL replaces the per-session expiry override. Positive values are
// quantized to whole seconds, rounded up; zero or negative clears the
// override. The new value takes effect on the next Save or Extend.
func (s *Session) SetTTL(d time.Duration) {
	s.ttl = normalizeTTL(d)
}

// Get returns the value stored under key. A missing key returns
// [ErrMissingField]; the reserved expiry field returns [ErrReservedField].
func (s *Session) Get(key string) (any, error) {
	if key == reservedTTLKey {
		return nil, fmt.Errorf("%w: %q", ErrReservedField, key)
	}
	v, ok := s.fields.Get(key)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingField, key)
	}
	return v, nil
}

// Set stores value under key, overwriting any previous value. New keys append
// to the iteration order; existing keys keep their position.
func (s *Session) Set(key string, value any) error {
	if key == reservedTTLKey {
		return fmt.Errorf("%w: %q", ErrReservedField, key)
	}
	s.fields.Set(key, value)
	return nil
}

// Delete removes key from the session. A missing key returns
// [ErrMissingField].
func (s *Session) Delete(key string) error {
	if key == reservedTTLKey {
		return fmt.Errorf("%w: %q", ErrReservedField, key)
	}
	if _, ok := s.fields.Delete(key); !ok {
		return fmt.Errorf("%w: %q", ErrMissingField, key)
	}
	return nil
}

// Contains reports whether key is present. The reserved expiry field is
// metadata, not an entry, and always reports false.
func (s *Session) Contains(key string) bool {
	if key == reservedTTLKey {
		return false
	}
	_, ok := s.fields.Get(key)
	return ok
}

// Entries returns all fields in insertion order. The slice is a snapshot;
// mutating it does not affect the session.
func (s *Session) Entries() []Field {
	out := make([]Field, 0, s.fields.Len())
	for pair := s.fields.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, Field{Key: pair.Key, Value: pair.Value})
	}
	return out
}

// Len returns the number of fields, excluding the reserved expiry metadata.
func (s *Session) Len() int {
	return s.fields.Len()
}

// String renders the current fields as JSON in insertion order, without the
// reserved expiry metadata. Intended for logs and debugging, not persistence.
func (s *Session) String() string {
	data, err := json.Marshal(s.fields)
	if err != nil {
		return "{}"
	}
	return string(data)
}

// Save serializes the session and writes it to Redis under the store's key
// prefix, applying the effective expiry. A Save with effective TTL zero
// persists the key without expiry. Concurrent saves of the same identifier
// follow last-write-wins.
//
//	Performance: 1 Redis SET.
func (s *Session) Save(ctx context.Context) error {
	data, err := encodeFields(s.fields, s.ttl)
	if err != nil {
		return err
	}
	if s.store.maxSize > 0 && len(data) > s.store.maxSize {
		return fmt.Errorf("%w: %d bytes", ErrSessionTooLarge, len(data))
	}

	if err := s.store.redis.Set(ctx, s.store.key(s.id), data, s.effectiveTTL()).Err(); err != nil {
		s.store.metrics.Inc(MetricBackendError)
		return fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}

	s.store.metrics.Inc(MetricSessionSaved)
	return nil
}

// Extend refreshes the session expiry in Redis without rewriting the payload.
// With an effective TTL of zero there is nothing to refresh and Extend
// returns immediately without a backend call. Extending an identifier that no
// longer exists in Redis is a no-op on the backend side.
//
//	Performance: at most 1 Redis EXPIRE.
func (s *Session) Extend(ctx context.Context) error {
	ttl := s.effectiveTTL()
	if ttl == 0 {
		return nil
	}

	if err := s.store.redis.Expire(ctx, s.store.key(s.id), ttl).Err(); err != nil {
		s.store.metrics.Inc(MetricBackendError)
		return fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}

	s.store.metrics.Inc(MetricSessionExtended)
	return nil
}

// Close deletes the session from Redis. Closing an already-absent session is
// not an error; the operation is idempotent. The in-memory handle stays
// usable afterwards and a later Save recreates the key.
//
//	Performance: 1 Redis DEL.
func (s *Session) Close(ctx context.Context) error {
	if err := s.store.redis.Del(ctx, s.store.key(s.id)).Err(); err != nil {
		s.store.metrics.Inc(MetricBackendError)
		return fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}

	s.store.metrics.Inc(MetricSessionClosed)
	return nil
}

// effectiveTTL resolves the expiry for the next backend write: the session
// override when set, otherwise the store default. Zero disables expiry.
func (s *Session) effectiveTTL() time.Duration {
	if s.ttl > 0 {
		return s.ttl
	}
	return s.store.defaultTTL
}

package memory

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Store is a Redis-backed session store gateway. It owns the key namespace,
// the process-wide default expiry, and the conversion between the wire format
// and in-memory [Session] handles.
type Store struct {
	redis      redis.UniversalClient
	prefix     string
	defaultTTL time.Duration
	maxSize    int
	metrics    *Metrics
	ownsClient bool
}

// New creates a [Store] on top of an injected Redis client. The client is
// shared, not owned: [Store.Close] will not close it. cfg.Redis is ignored.
func New(client redis.UniversalClient, cfg Config) (*Store, error) {
	if client == nil {
		return nil, errors.New("nil redis client")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Store{
		redis:      client,
		prefix:     cfg.Session.KeyPrefix,
		defaultTTL: cfg.Session.DefaultTTL,
		maxSize:    cfg.Session.MaxSessionSize,
		metrics:    NewMetrics(cfg.Metrics),
	}, nil
}

// Open dials Redis from cfg.Redis, verifies the connection with a ping, and
// returns a [Store] that owns the resulting client. [Store.Close] releases it.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	if strings.TrimSpace(cfg.Redis.Addr) == "" {
		return nil, errors.New("Redis Addr must not be empty")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Username: cfg.Redis.Username,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	store, err := New(client, cfg)
	if err != nil {
		_ = client.Close()
		return nil, err
	}
	store.ownsClient = true

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}

	return store, nil
}

func (s *Store) key(id string) string {
	return s.prefix + id
}

// Create builds a fresh in-memory [Session] handle without touching the
// backend. An empty id generates a random 128-bit identifier rendered as a
// 32-character hex string; no uniqueness check is performed against Redis.
// ttl sets the per-session expiry override (quantized to whole seconds,
// rounded up); zero or negative means "inherit the store default".
//
//	Performance: 0 Redis commands.
func (s *Store) Create(id string, ttl time.Duration) *Session {
	if id == "" {
		id = newSessionID()
	}

	s.metrics.Inc(MetricSessionCreated)

	return &Session{
		store:  s,
		id:     id,
		ttl:    normalizeTTL(ttl),
		fields: orderedmap.New[string, any](),
	}
}

// Load fetches a session by identifier. An absent session is a normal outcome
// and returns (nil, nil), never an error. A payload that cannot be decoded
// returns [ErrCorruptedSession]; it is never treated as an empty session.
//
//	Performance: 1 Redis GET.
func (s *Store) Load(ctx context.Context, id string) (*Session, error) {
	start := time.Now()

	data, err := s.redis.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			s.metrics.Inc(MetricSessionAbsent)
			return nil, nil
		}
		s.metrics.Inc(MetricBackendError)
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}

	fields, ttl, err := decodeFields(data)
	if err != nil {
		s.metrics.Inc(MetricSessionCorrupted)
		return nil, fmt.Errorf("%w: %v", ErrCorruptedSession, err)
	}

	s.metrics.Inc(MetricSessionLoaded)
	s.metrics.Observe(MetricLoadLatency, time.Since(start))

	return &Session{store: s, id: id, ttl: ttl, fields: fields}, nil
}

// Ping returns a point-in-time Redis availability check and latency.
func (s *Store) Ping(ctx context.Context) (time.Duration, error) {
	start := time.Now()
	if err := s.redis.Ping(ctx).Err(); err != nil {
		return time.Since(start), fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	return time.Since(start), nil
}

// Close releases the Redis client when the store owns it (constructed via
// [Open]). Stores built with [New] leave the injected client untouched.
func (s *Store) Close() error {
	if !s.ownsClient {
		return nil
	}
	return s.redis.Close()
}

// DefaultTTL returns the process-wide default expiry applied to sessions
// without an override. Read-only after construction.
func (s *Store) DefaultTTL() time.Duration {
	return s.defaultTTL
}

// MetricsSnapshot returns a point-in-time copy of all store counters and
// histograms. Safe for concurrent use with live traffic.
func (s *Store) MetricsSnapshot() MetricsSnapshot {
	return s.metrics.Snapshot()
}

func newSessionID() string {
	u := uuid.New()
	return hex.EncodeToString(u[:])
}

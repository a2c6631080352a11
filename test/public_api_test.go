package test

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	memory "github.com/kvsession/memory"
	"github.com/kvsession/memory/middleware"
	"github.com/kvsession/memory/token"

	"github.com/redis/go-redis/v9"
)

// This test intentionally guards public API compile-compat for consumers.
func TestPublicAPISurfaceCompile(t *testing.T) {
	var _ func(redis.UniversalClient, memory.Config) (*memory.Store, error) = memory.New
	var _ func(context.Context, memory.Config) (*memory.Store, error) = memory.Open
	var _ func() memory.Config = memory.DefaultConfig
	var _ func() (memory.Config, error) = memory.FromEnv

	var _ *memory.Store
	var _ memory.Config
	var _ memory.RedisConfig
	var _ memory.SessionConfig
	var _ memory.MetricsConfig
	var _ memory.Field
	var _ memory.MetricsSnapshot
	var _ memory.MetricID

	var _ error = memory.ErrMissingField
	var _ error = memory.ErrReservedField
	var _ error = memory.ErrCorruptedSession
	var _ error = memory.ErrBackendUnavailable
	var _ error = memory.ErrSessionTooLarge

	var _ func(*memory.Store, string, time.Duration) *memory.Session = (*memory.Store).Create
	var _ func(*memory.Store, context.Context, string) (*memory.Session, error) = (*memory.Store).Load
	var _ func(*memory.Store, context.Context) (time.Duration, error) = (*memory.Store).Ping
	var _ func(*memory.Store) error = (*memory.Store).Close
	var _ func(*memory.Store) time.Duration = (*memory.Store).DefaultTTL
	var _ func(*memory.Store) memory.MetricsSnapshot = (*memory.Store).MetricsSnapshot

	var _ func(*memory.Session) string = (*memory.Session).ID
	var _ func(*memory.Session) time.Duration = (*memory.Session).TTL
	var _ func(*memory.Session, time.Duration) = (*memory.Session).SetTTL
	var _ func(*memory.Session, string) (any, error) = (*memory.Session).Get
	var _ func(*memory.Session, string, any) error = (*memory.Session).Set
	var _ func(*memory.Session, string) error = (*memory.Session).Delete
	var _ func(*memory.Session, string) bool = (*memory.Session).Contains
	var _ func(*memory.Session) []memory.Field = (*memory.Session).Entries
	var _ func(*memory.Session) int = (*memory.Session).Len
	var _ func(*memory.Session, context.Context) error = (*memory.Session).Save
	var _ func(*memory.Session, context.Context) error = (*memory.Session).Extend
	var _ func(*memory.Session, context.Context) error = (*memory.Session).Close
	var _ fmt.Stringer = (*memory.Session)(nil)

	var _ func(*memory.Store) func(http.Handler) http.Handler = middleware.Require
	var _ func(*memory.Store, *token.Manager) func(http.Handler) http.Handler = middleware.RequireToken
	var _ func(context.Context) (*memory.Session, bool) = middleware.SessionFromContext
	var _ string = middleware.HeaderSessionKey

	var _ func(token.Config) (*token.Manager, error) = token.NewManager
	var _ func(*token.Manager, string) (string, error) = (*token.Manager).Issue
	var _ func(*token.Manager, string) (string, error) = (*token.Manager).Parse
}

//go:build integration
// +build integration

package test

import (
	"context"
	"testing"
	"time"

	memory "github.com/kvsession/memory"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newIntegrationStore(t *testing.T) (*memory.Store, *redis.Client, func()) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	cfg := memory.DefaultConfig()
	cfg.Session.DefaultTTL = time.Hour

	store, err := memory.New(rdb, cfg)
	if err != nil {
		t.Fatalf("store init failed: %v", err)
	}

	return store, rdb, func() {
		_ = rdb.Close()
		mr.Close()
	}
}

// saveSeedSession persists a session with a fixed set of fields so tests can
// assert on known content.
func saveSeedSession(t *testing.T, ctx context.Context, store *memory.Store, id string) *memory.Session {
	t.Helper()

	sess := store.Create(id, 0)
	for _, f := range []memory.Field{
		{Key: "user", Value: "alice@example.com"},
		{Key: "stage", Value: "checkout"},
		{Key: "attempts", Value: 2},
	} {
		if err := sess.Set(f.Key, f.Value); err != nil {
			t.Fatalf("seed set %q failed: %v", f.Key, err)
		}
	}

	if err := sess.Save(ctx); err != nil {
		t.Fatalf("seed save failed: %v", err)
	}
	return sess
}

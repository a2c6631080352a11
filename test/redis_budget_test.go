//go:build integration
// +build integration

package test

import (
	"context"
	"net"
	"sync/atomic"
	"testing"
	"time"

	memory "github.com/kvsession/memory"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// cmdCounter is a go-redis Hook that counts the number of Redis round-trips
// (individual commands and pipeline calls).
type cmdCounter struct {
	commands  atomic.Int64
	pipelines atomic.Int64
}

func (h *cmdCounter) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		return next(ctx, network, addr)
	}
}

func (h *cmdCounter) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		h.commands.Add(1)
		return next(ctx, cmd)
	}
}

func (h *cmdCounter) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		// Each pipeline call is one network round-trip regardless of command count.
		h.pipelines.Add(1)
		h.commands.Add(int64(len(cmds)))
		return next(ctx, cmds)
	}
}

func (h *cmdCounter) Reset() {
	h.commands.Store(0)
	h.pipelines.Store(0)
}

func (h *cmdCounter) Commands() int64  { return h.commands.Load() }
func (h *cmdCounter) Pipelines() int64 { return h.pipelines.Load() }

// newCountedStore creates a store backed by miniredis with a cmdCounter hook
// installed. Reset the counter before each measured operation.
func newCountedStore(t *testing.T, defaultTTL time.Duration) (*memory.Store, *cmdCounter, func()) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	counter := &cmdCounter{}
	rdb.AddHook(counter)

	// Warm the connection, then reset: go-redis may emit extra commands on
	// first use (handshake, AUTH, SELECT, CLIENT SETNAME, etc.) and those
	// must not land in a measured window.
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		t.Fatalf("warmup ping: %v", err)
	}
	counter.Reset()

	cfg := memory.DefaultConfig()
	cfg.Session.DefaultTTL = defaultTTL

	store, err := memory.New(rdb, cfg)
	if err != nil {
		t.Fatalf("store init: %v", err)
	}
	return store, counter, func() {
		_ = rdb.Close()
		mr.Close()
	}
}

// TestSessionCreateRedisBudget verifies that building a session handle and
// staging fields costs zero Redis commands.
func TestSessionCreateRedisBudget(t *testing.T) {
	store, counter, cleanup := newCountedStore(t, time.Hour)
	defer cleanup()

	counter.Reset()

	sess := store.Create("", 0)
	if err := sess.Set("user", "alice@example.com"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := sess.Set("stage", "checkout"); err != nil {
		t.Fatalf("set: %v", err)
	}

	if cmds := counter.Commands(); cmds != 0 {
		t.Errorf("Create+Set used %d Redis commands; budget is 0", cmds)
	}
}

// TestSessionLoadRedisBudget verifies that a load is exactly one GET.
func TestSessionLoadRedisBudget(t *testing.T) {
	store, counter, cleanup := newCountedStore(t, time.Hour)
	defer cleanup()

	ctx := context.Background()
	saveSeedSession(t, ctx, store, "sid-load-budget")

	counter.Reset()

	if _, err := store.Load(ctx, "sid-load-budget"); err != nil {
		t.Fatalf("load: %v", err)
	}

	if cmds := counter.Commands(); cmds != 1 {
		t.Errorf("Load used %d Redis commands; budget is 1 (GET)", cmds)
	}
	t.Logf("Load: %d commands, %d pipelines", counter.Commands(), counter.Pipelines())
}

// TestSessionSaveRedisBudget verifies that a save is exactly one SET.
func TestSessionSaveRedisBudget(t *testing.T) {
	store, counter, cleanup := newCountedStore(t, time.Hour)
	defer cleanup()

	ctx := context.Background()
	sess := store.Create("sid-save-budget", 0)
	if err := sess.Set("user", "alice@example.com"); err != nil {
		t.Fatalf("set: %v", err)
	}

	counter.Reset()

	if err := sess.Save(ctx); err != nil {
		t.Fatalf("save: %v", err)
	}

	if cmds := counter.Commands(); cmds != 1 {
		t.Errorf("Save used %d Redis commands; budget is 1 (SET)", cmds)
	}
	t.Logf("Save: %d commands, %d pipelines", counter.Commands(), counter.Pipelines())
}

// TestSessionExtendRedisBudget verifies that an extend is exactly one EXPIRE,
// and that a zero-window extend skips the backend entirely.
func TestSessionExtendRedisBudget(t *testing.T) {
	t.Run("with expiry window", func(t *testing.T) {
		store, counter, cleanup := newCountedStore(t, time.Hour)
		defer cleanup()

		ctx := context.Background()
		sess := saveSeedSession(t, ctx, store, "sid-extend-budget")

		counter.Reset()

		if err := sess.Extend(ctx); err != nil {
			t.Fatalf("extend: %v", err)
		}

		if cmds := counter.Commands(); cmds != 1 {
			t.Errorf("Extend used %d Redis commands; budget is 1 (EXPIRE)", cmds)
		}
	})

	t.Run("no expiry window", func(t *testing.T) {
		store, counter, cleanup := newCountedStore(t, 0)
		defer cleanup()

		ctx := context.Background()
		sess := saveSeedSession(t, ctx, store, "sid-extend-zero")

		counter.Reset()

		if err := sess.Extend(ctx); err != nil {
			t.Fatalf("extend: %v", err)
		}

		if cmds := counter.Commands(); cmds != 0 {
			t.Errorf("zero-window Extend used %d Redis commands; budget is 0", cmds)
		}
	})
}

// TestSessionCloseRedisBudget verifies that a close is exactly one DEL.
func TestSessionCloseRedisBudget(t *testing.T) {
	store, counter, cleanup := newCountedStore(t, time.Hour)
	defer cleanup()

	ctx := context.Background()
	sess := saveSeedSession(t, ctx, store, "sid-close-budget")

	counter.Reset()

	if err := sess.Close(ctx); err != nil {
		t.Fatalf("close: %v", err)
	}

	if cmds := counter.Commands(); cmds != 1 {
		t.Errorf("Close used %d Redis commands; budget is 1 (DEL)", cmds)
	}
	t.Logf("Close: %d commands, %d pipelines", counter.Commands(), counter.Pipelines())
}

package store

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
)

func TestRedisStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	defer mr.Close()

	store, err := NewRedis(Config{
		TTL:   time.Second,
		Redis: &RedisConfig{Addr: mr.Addr()},
	})
	if err != nil {
		t.Fatalf("NewRedis error: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close(ctx)
	})

	sess := Session{Token: "redis-token", UserID: 3, Username: "user"}
	if err := store.Save(ctx, sess); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	got, err := store.Get(ctx, sess.Token)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.UserID != sess.UserID || got.Username != sess.Username {
		t.Fatalf("unexpected session: %+v", got)
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats error: %v", err)
	}
	if stats["total"].(int) != 1 {
		t.Fatalf("expected one stored session, stats: %+v", stats)
	}

	if err := store.Remove(ctx, sess.Token); err != nil {
		t.Fatalf("Remove error: %v", err)
	}
	if _, err := store.Get(ctx, sess.Token); err == nil {
		t.Fatal("expected removed session to be gone")
	}
}

func TestRedisStoreHonoursServerExpiry(t *testing.T) {
	ctx := context.Background()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	defer mr.Close()

	store, err := NewRedis(Config{
		TTL:   time.Second,
		Redis: &RedisConfig{Addr: mr.Addr()},
	})
	if err != nil {
		t.Fatalf("NewRedis error: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close(ctx)
	})

	if err := store.Save(ctx, Session{Token: "fleeting", UserID: 1}); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	mr.FastForward(2 * time.Second)

	if _, err := store.Get(ctx, "fleeting"); err == nil {
		t.Fatal("expected expired key lookup to fail")
	}
}

package redis

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestCacheSetAndGet(t *testing.T) {
	client, _ := newTestRedisClient(t)
	cache := NewCache(client)
	ctx := context.Background()

	if err := cache.Set(ctx, "contas:snapshot", `[{"ID":"c1"}]`, time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	val, err := cache.Get(ctx, "contas:snapshot")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}

	if val != `[{"ID":"c1"}]` {
		t.Fatalf("unexpected value %s", val)
	}
}

func TestCacheKeysArePrefixed(t *testing.T) {
	client, mr := newTestRedisClient(t)
	cache := NewCache(client)

	if err := cache.Set(context.Background(), "k", "v", time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	if !mr.Exists("livrocaixa:cache:k") {
		t.Fatalf("expected prefixed key, got %v", mr.Keys())
	}
}

func TestCacheMissAndExpiry(t *testing.T) {
	client, mr := newTestRedisClient(t)
	cache := NewCache(client)
	ctx := context.Background()

	if _, err := cache.Get(ctx, "absent"); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected ErrCacheMiss, got %v", err)
	}

	if err := cache.Set(ctx, "short", "v", time.Second); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	mr.FastForward(2 * time.Second)

	if _, err := cache.Get(ctx, "short"); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected expired key to miss, got %v", err)
	}
}

func TestCacheDelete(t *testing.T) {
	client, _ := newTestRedisClient(t)
	cache := NewCache(client)
	ctx := context.Background()

	if err := cache.Set(ctx, "foo", "bar", time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	if err := cache.Delete(ctx, "foo"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if _, err := cache.Get(ctx, "foo"); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected miss after delete, got %v", err)
	}
}

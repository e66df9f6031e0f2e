// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func newTestMemoryCache(t *testing.T, opts MemoryCacheOptions) *MemoryCache {
	t.Helper()
	c := NewMemoryCache(opts)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestMemoryCache_BasicOperations(t *testing.T) {
	cache := newTestMemoryCache(t, MemoryCacheOptions{DefaultTTL: time.Hour, MaxSize: 100})
	ctx := context.Background()

	if err := cache.Set(ctx, "settings", []byte(`{"siteName":"Studio"}`), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	val, err := cache.Get(ctx, "settings")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(val) != `{"siteName":"Studio"}` {
		t.Errorf("Get = %s", val)
	}

	has, err := cache.Has(ctx, "settings")
	if err != nil {
		t.Fatalf("Has failed: %v", err)
	}
	if !has {
		t.Error("expected settings to exist")
	}

	if err := cache.Delete(ctx, "settings"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := cache.Get(ctx, "settings"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expected ErrCacheMiss, got %v", err)
	}
}

func TestMemoryCache_Expiration(t *testing.T) {
	cache := newTestMemoryCache(t, MemoryCacheOptions{DefaultTTL: time.Hour})
	ctx := context.Background()

	_ = cache.Set(ctx, "short", []byte("v"), 30*time.Millisecond)
	_ = cache.Set(ctx, "long", []byte("v"), 0)

	time.Sleep(50 * time.Millisecond)

	if _, err := cache.Get(ctx, "short"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expected short TTL key to expire, got %v", err)
	}
	if has, _ := cache.Has(ctx, "short"); has {
		t.Error("Has reported an expired key")
	}
	if _, err := cache.Get(ctx, "long"); err != nil {
		t.Errorf("expected default TTL key to survive, got %v", err)
	}
	if got := cache.Stats().Items; got != 1 {
		t.Errorf("Items = %d, want 1", got)
	}
}

func TestMemoryCache_DeleteByPrefix(t *testing.T) {
	cache := newTestMemoryCache(t, MemoryCacheOptions{DefaultTTL: time.Hour})
	ctx := context.Background()

	for _, k := range []string{"blog:list:1", "blog:list:2", "blog:post:x", "hero:home"} {
		_ = cache.Set(ctx, k, []byte("v"), 0)
	}

	if err := cache.DeleteByPrefix(ctx, "blog:"); err != nil {
		t.Fatalf("DeleteByPrefix failed: %v", err)
	}

	for _, k := range []string{"blog:list:1", "blog:list:2", "blog:post:x"} {
		if _, err := cache.Get(ctx, k); !errors.Is(err, ErrCacheMiss) {
			t.Errorf("expected %s to be deleted", k)
		}
	}
	if _, err := cache.Get(ctx, "hero:home"); err != nil {
		t.Error("expected hero:home to survive")
	}
}

func TestMemoryCache_Clear(t *testing.T) {
	cache := newTestMemoryCache(t, MemoryCacheOptions{DefaultTTL: time.Hour})
	ctx := context.Background()

	_ = cache.Set(ctx, "a", []byte("1"), 0)
	_ = cache.Set(ctx, "b", []byte("22"), 0)

	if err := cache.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	stats := cache.Stats()
	if stats.Items != 0 || stats.Size != 0 {
		t.Errorf("after Clear items=%d size=%d, want 0/0", stats.Items, stats.Size)
	}
}

func TestMemoryCache_MaxSizeEvicts(t *testing.T) {
	cache := newTestMemoryCache(t, MemoryCacheOptions{DefaultTTL: time.Hour, MaxSize: 2})
	ctx := context.Background()

	_ = cache.Set(ctx, "a", []byte("1"), 0)
	_ = cache.Set(ctx, "b", []byte("2"), 0)
	if _, err := cache.Get(ctx, "a"); err != nil {
		t.Fatalf("Get a: %v", err)
	}
	_ = cache.Set(ctx, "c", []byte("3"), 0)

	if got := cache.Stats().Items; got != 2 {
		t.Errorf("Items = %d, want 2", got)
	}
	if _, err := cache.Get(ctx, "b"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("least recently used key should be evicted, got %v", err)
	}
	for _, k := range []string{"a", "c"} {
		if _, err := cache.Get(ctx, k); err != nil {
			t.Errorf("%s missing: %v", k, err)
		}
	}

	// Overwriting an existing key never evicts.
	_ = cache.Set(ctx, "c", []byte("33"), 0)
	if got := cache.Stats().Items; got != 2 {
		t.Errorf("Items after overwrite = %d, want 2", got)
	}
}

func TestMemoryCache_Stats(t *testing.T) {
	cache := newTestMemoryCache(t, MemoryCacheOptions{DefaultTTL: time.Hour})
	ctx := context.Background()

	_ = cache.Set(ctx, "key1", []byte("value1"), 0)
	_ = cache.Set(ctx, "key2", []byte("value2"), 0)
	_, _ = cache.Get(ctx, "key1")
	_, _ = cache.Get(ctx, "key1")
	_, _ = cache.Get(ctx, "nonexistent")

	stats := cache.Stats()
	if stats.Hits != 2 || stats.Misses != 1 || stats.Sets != 2 || stats.Items != 2 {
		t.Errorf("unexpected stats %+v", stats)
	}
	if stats.Size != 12 {
		t.Errorf("Size = %d, want 12", stats.Size)
	}

	expected := float64(2) / float64(3) * 100
	if stats.HitRate < expected-0.01 || stats.HitRate > expected+0.01 {
		t.Errorf("HitRate = %.2f, want ~%.2f", stats.HitRate, expected)
	}

	cache.ResetStats()
	if s := cache.Stats(); s.Hits != 0 || s.Misses != 0 || s.Sets != 0 || s.Items != 2 {
		t.Errorf("after reset %+v", s)
	}
}

func TestMemoryCache_ValueCopy(t *testing.T) {
	cache := newTestMemoryCache(t, MemoryCacheOptions{DefaultTTL: time.Hour})
	ctx := context.Background()

	original := []byte("original")
	_ = cache.Set(ctx, "key", original, 0)
	original[0] = 'X'

	val, err := cache.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(val) != "original" {
		t.Errorf("cache did not copy on Set: %s", val)
	}

	val[0] = 'Y'
	val2, _ := cache.Get(ctx, "key")
	if string(val2) != "original" {
		t.Errorf("cache did not copy on Get: %s", val2)
	}
}

func TestMemoryCache_ConcurrentAccess(t *testing.T) {
	cache := newTestMemoryCache(t, MemoryCacheOptions{DefaultTTL: time.Hour})
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = cache.Set(ctx, "key", []byte("value"), 0)
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_, _ = cache.Get(ctx, "key")
			}
		}()
	}
	wg.Wait()

	if _, err := cache.Get(ctx, "key"); err != nil {
		t.Error("expected key to exist after concurrent access")
	}
	if got := cache.Stats().Items; got != 1 {
		t.Errorf("Items = %d, want 1", got)
	}
}

func TestMemoryCache_Close(t *testing.T) {
	cache := NewMemoryCache(MemoryCacheOptions{DefaultTTL: time.Hour, CleanupInterval: time.Second})
	ctx := context.Background()

	if err := cache.Ping(ctx); err != nil {
		t.Fatalf("Ping before close: %v", err)
	}
	if err := cache.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := cache.Ping(ctx); !errors.Is(err, ErrCacheClosed) {
		t.Errorf("Ping after close: %v", err)
	}

	if _, err := cache.Get(ctx, "key"); !errors.Is(err, ErrCacheClosed) {
		t.Errorf("Get after close: %v", err)
	}
	if err := cache.Set(ctx, "key", []byte("v"), 0); !errors.Is(err, ErrCacheClosed) {
		t.Errorf("Set after close: %v", err)
	}
	if err := cache.DeleteByPrefix(ctx, "k"); !errors.Is(err, ErrCacheClosed) {
		t.Errorf("DeleteByPrefix after close: %v", err)
	}
	if err := cache.Close(); err != nil {
		t.Errorf("second Close should succeed, got %v", err)
	}
}

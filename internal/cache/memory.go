// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"container/list"
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// MemoryCache is an in-process LRU cache with per-entry expiry. It is the
// backend used when no Redis URL is configured.
type MemoryCache struct {
	mu         sync.Mutex
	entries    map[string]*list.Element
	lru        *list.List // front is most recently used
	bytes      int64
	defaultTTL time.Duration
	maxSize    int // 0 = unbounded

	stopCh chan struct{}
	closed atomic.Bool

	hits   atomic.Int64
	misses atomic.Int64
	sets   atomic.Int64
}

type memoryEntry struct {
	key       string
	value     []byte
	expiresAt time.Time // zero = never
}

func (e *memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// MemoryCacheOptions configures the memory cache.
type MemoryCacheOptions struct {
	DefaultTTL      time.Duration
	MaxSize         int           // entry limit, 0 = unbounded
	CleanupInterval time.Duration // expired-entry sweep, 0 = sweep only on access
}

// NewMemoryCache creates a memory cache and starts its sweep loop when
// CleanupInterval is set. Close stops the loop.
func NewMemoryCache(opts MemoryCacheOptions) *MemoryCache {
	c := &MemoryCache{
		entries:    make(map[string]*list.Element),
		lru:        list.New(),
		defaultTTL: opts.DefaultTTL,
		maxSize:    opts.MaxSize,
		stopCh:     make(chan struct{}),
	}
	if opts.CleanupInterval > 0 {
		go c.sweepEvery(opts.CleanupInterval)
	}
	return c
}

// Get returns a copy of the value stored under key.
func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	if c.closed.Load() {
		return nil, ErrCacheClosed
	}

	c.mu.Lock()
	e, ok := c.lookup(key, time.Now())
	if !ok {
		c.mu.Unlock()
		c.misses.Add(1)
		return nil, ErrCacheMiss
	}
	out := append([]byte(nil), e.value...)
	c.mu.Unlock()

	c.hits.Add(1)
	return out, nil
}

// Set stores a copy of value. Overwriting a key never evicts; adding a key
// to a full cache evicts the least recently used entry.
func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if c.closed.Load() {
		return ErrCacheClosed
	}
	if ttl == 0 {
		ttl = c.defaultTTL
	}

	e := &memoryEntry{key: key, value: append([]byte(nil), value...)}
	if ttl > 0 {
		e.expiresAt = time.Now().Add(ttl)
	}

	c.mu.Lock()
	if el, ok := c.entries[key]; ok {
		old := el.Value.(*memoryEntry)
		c.bytes += int64(len(e.value) - len(old.value))
		el.Value = e
		c.lru.MoveToFront(el)
	} else {
		if c.maxSize > 0 && c.lru.Len() >= c.maxSize {
			c.evictOldest()
		}
		c.entries[key] = c.lru.PushFront(e)
		c.bytes += int64(len(e.value))
	}
	c.mu.Unlock()

	c.sets.Add(1)
	return nil
}

func (c *MemoryCache) Delete(_ context.Context, key string) error {
	if c.closed.Load() {
		return ErrCacheClosed
	}
	c.mu.Lock()
	if el, ok := c.entries[key]; ok {
		c.remove(el)
	}
	c.mu.Unlock()
	return nil
}

// DeleteByPrefix removes every key starting with prefix.
func (c *MemoryCache) DeleteByPrefix(_ context.Context, prefix string) error {
	if c.closed.Load() {
		return ErrCacheClosed
	}
	c.mu.Lock()
	for key, el := range c.entries {
		if strings.HasPrefix(key, prefix) {
			c.remove(el)
		}
	}
	c.mu.Unlock()
	return nil
}

func (c *MemoryCache) Clear(_ context.Context) error {
	if c.closed.Load() {
		return ErrCacheClosed
	}
	c.mu.Lock()
	clear(c.entries)
	c.lru.Init()
	c.bytes = 0
	c.mu.Unlock()
	return nil
}

// Has reports whether key holds an unexpired value. It does not touch
// the recency order or the hit counters.
func (c *MemoryCache) Has(_ context.Context, key string) (bool, error) {
	if c.closed.Load() {
		return false, ErrCacheClosed
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	if el.Value.(*memoryEntry).expired(time.Now()) {
		c.remove(el)
		return false, nil
	}
	return true, nil
}

// Close stops the sweep loop. Later calls on the cache return ErrCacheClosed.
func (c *MemoryCache) Close() error {
	if c.closed.CompareAndSwap(false, true) {
		close(c.stopCh)
	}
	return nil
}

// Ping fails only after Close.
func (c *MemoryCache) Ping(_ context.Context) error {
	if c.closed.Load() {
		return ErrCacheClosed
	}
	return nil
}

func (c *MemoryCache) Stats() Stats {
	c.mu.Lock()
	items, size := c.lru.Len(), c.bytes
	c.mu.Unlock()

	hits, misses := c.hits.Load(), c.misses.Load()
	return Stats{
		Hits:    hits,
		Misses:  misses,
		Sets:    c.sets.Load(),
		Items:   items,
		HitRate: hitRate(hits, misses),
		Size:    size,
	}
}

// ResetStats zeroes the hit, miss and set counters. Items and Size reflect
// live contents and are left alone.
func (c *MemoryCache) ResetStats() {
	c.hits.Store(0)
	c.misses.Store(0)
	c.sets.Store(0)
}

// lookup returns the live entry for key and marks it recently used.
// Expired entries are dropped. c.mu must be held.
func (c *MemoryCache) lookup(key string, now time.Time) (*memoryEntry, bool) {
	el, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	e := el.Value.(*memoryEntry)
	if e.expired(now) {
		c.remove(el)
		return nil, false
	}
	c.lru.MoveToFront(el)
	return e, true
}

// evictOldest drops an expired entry if the tail has one, else the least
// recently used entry. c.mu must be held.
func (c *MemoryCache) evictOldest() {
	if c.sweep(time.Now()) > 0 {
		return
	}
	if el := c.lru.Back(); el != nil {
		c.remove(el)
	}
}

// remove unlinks el. c.mu must be held.
func (c *MemoryCache) remove(el *list.Element) {
	e := c.lru.Remove(el).(*memoryEntry)
	delete(c.entries, e.key)
	c.bytes -= int64(len(e.value))
}

// sweep removes expired entries and returns how many went. c.mu must be held.
func (c *MemoryCache) sweep(now time.Time) int {
	n := 0
	for el := c.lru.Back(); el != nil; {
		prev := el.Prev()
		if el.Value.(*memoryEntry).expired(now) {
			c.remove(el)
			n++
		}
		el = prev
	}
	return n
}

func (c *MemoryCache) sweepEvery(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case now := <-ticker.C:
			c.mu.Lock()
			c.sweep(now)
			c.mu.Unlock()
		case <-c.stopCh:
			return
		}
	}
}

var (
	_ Cache         = (*MemoryCache)(nil)
	_ StatsProvider = (*MemoryCache)(nil)
	_ Pinger        = (*MemoryCache)(nil)
)

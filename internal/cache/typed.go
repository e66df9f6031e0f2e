// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"
)

// TypedCache stores values of one type as JSON in an underlying Cache.
type TypedCache[T any] struct {
	cache      Cache
	prefix     string
	defaultTTL time.Duration
}

// NewTypedCache creates a TypedCache whose keys all live under prefix.
func NewTypedCache[T any](cache Cache, prefix string, defaultTTL time.Duration) *TypedCache[T] {
	return &TypedCache[T]{
		cache:      cache,
		prefix:     prefix,
		defaultTTL: defaultTTL,
	}
}

// Get returns the cached value and true, or nil and false on miss or decode failure.
func (c *TypedCache[T]) Get(ctx context.Context, key string) (*T, bool) {
	data, err := c.cache.Get(ctx, c.prefix+key)
	if err != nil {
		return nil, false
	}

	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, false
	}
	return &value, true
}

// Set stores a value with the default TTL.
func (c *TypedCache[T]) Set(ctx context.Context, key string, value *T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.cache.Set(ctx, c.prefix+key, data, c.defaultTTL)
}

// GetOrSet returns the cached value or computes, stores and returns it.
// Errors from fn are returned and nothing is cached.
func (c *TypedCache[T]) GetOrSet(ctx context.Context, key string, fn func() (*T, error)) (*T, error) {
	if value, ok := c.Get(ctx, key); ok {
		return value, nil
	}

	value, err := fn()
	if err != nil {
		return nil, err
	}

	if err := c.Set(ctx, key, value); err != nil {
		slog.Debug("cache set failed", "key", c.prefix+key, "error", err)
	}
	return value, nil
}

// Invalidate drops every entry of this typed cache.
func (c *TypedCache[T]) Invalidate(ctx context.Context) {
	if err := c.cache.DeleteByPrefix(ctx, c.prefix); err != nil {
		slog.Warn("cache invalidation failed", "category", "cache", "prefix", c.prefix, "error", err)
	}
}

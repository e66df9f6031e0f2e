// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/olegiv/studio-cms/internal/cache"
)

// Cache key prefixes for public read models.
const (
	CachePrefixBlog         = "blog:"
	CachePrefixHero         = "hero:"
	CachePrefixProjects     = "projects:"
	CachePrefixClients      = "clients:"
	CachePrefixTestimonials = "testimonials:"
	CachePrefixSettings     = "settings:"
)

// invalidate drops every listed prefix. It must run after the transaction
// commits. A nil cache is a no-op.
func invalidate(ctx context.Context, c cache.Cache, prefixes ...string) {
	if c == nil {
		return
	}
	for _, prefix := range prefixes {
		if err := c.DeleteByPrefix(ctx, prefix); err != nil {
			slog.Warn("cache invalidation failed", "category", "cache", "prefix", prefix, "error", err)
		}
	}
}

// newTypedCache returns nil when c is nil so services run uncached in tests.
func newTypedCache[T any](c cache.Cache, prefix string, ttl time.Duration) *cache.TypedCache[T] {
	if c == nil {
		return nil
	}
	return cache.NewTypedCache[T](c, prefix, ttl)
}

// cached serves key from tc, falling back to load when tc is nil.
func cached[T any](ctx context.Context, tc *cache.TypedCache[T], key string, load func() (*T, error)) (*T, error) {
	if tc == nil {
		return load()
	}
	return tc.GetOrSet(ctx, key, load)
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/olegiv/studio-cms/internal/cache"
	"github.com/olegiv/studio-cms/internal/logging"
	"github.com/olegiv/studio-cms/internal/store"
)

// RecountResult reports how many counter rows were rewritten per table.
type RecountResult struct {
	BlogCategories    int64 `json:"blogCategories"`
	BlogTags          int64 `json:"blogTags"`
	ProjectCategories int64 `json:"projectCategories"`
}

// Total is the number of rows that had drifted.
func (r RecountResult) Total() int64 {
	return r.BlogCategories + r.BlogTags + r.ProjectCategories
}

// MaintenanceService runs housekeeping over the whole database.
type MaintenanceService struct {
	db      *sql.DB
	queries *store.Queries
	cache   cache.Cache
}

// NewMaintenanceService creates a MaintenanceService. c may be nil.
func NewMaintenanceService(db *sql.DB, c cache.Cache) *MaintenanceService {
	return &MaintenanceService{db: db, queries: store.New(db), cache: c}
}

// Recount rebuilds every post_count column from the rows that reference it.
// All three tables are fixed in one transaction.
func (s *MaintenanceService) Recount(ctx context.Context) (RecountResult, error) {
	var res RecountResult
	err := store.ExecTx(ctx, s.db, func(q *store.Queries) error {
		var err error
		if res.BlogCategories, err = q.RecountBlogCategoryPostCounts(ctx); err != nil {
			return fmt.Errorf("recounting blog categories: %w", err)
		}
		if res.BlogTags, err = q.RecountBlogTagPostCounts(ctx); err != nil {
			return fmt.Errorf("recounting blog tags: %w", err)
		}
		if res.ProjectCategories, err = q.RecountProjectCategoryPostCounts(ctx); err != nil {
			return fmt.Errorf("recounting project categories: %w", err)
		}
		return nil
	})
	if err != nil {
		return RecountResult{}, err
	}

	if res.Total() > 0 {
		slog.Warn("post counters drifted and were repaired",
			"category", logging.CategoryScheduler,
			"blog_categories", res.BlogCategories,
			"blog_tags", res.BlogTags,
			"project_categories", res.ProjectCategories)
		invalidate(ctx, s.cache, CachePrefixBlog, CachePrefixProjects)
	}
	return res, nil
}

// DashboardStats returns the headline counts for the admin dashboard.
func (s *MaintenanceService) DashboardStats(ctx context.Context) (store.DashboardStats, error) {
	stats, err := s.queries.GetDashboardStats(ctx)
	if err != nil {
		return store.DashboardStats{}, fmt.Errorf("loading dashboard stats: %w", err)
	}
	return stats, nil
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/studio-cms/internal/auth"
	"github.com/olegiv/studio-cms/internal/testutil"
)

func TestRecount_RepairsDrift(t *testing.T) {
	f := newBlogFixture(t)
	ctx := context.Background()

	projects := NewProjectService(f.db, nil, 0)
	svc := NewMaintenanceService(f.db, nil)

	in := f.post("Hello")
	in.NewCategories = []TaxonomyInput{{Name: "News"}}
	in.NewTags = []TaxonomyInput{{Name: "Go"}, {Name: "Web"}}
	_, err := f.svc.CreatePost(ctx, in)
	require.NoError(t, err)
	web, err := projects.CreateCategory(ctx, "Web")
	require.NoError(t, err)
	_, err = projects.CreateProject(ctx, ProjectInput{Title: "Site", CategoryID: &web.ID})
	require.NoError(t, err)

	res, err := svc.Recount(ctx)
	require.NoError(t, err)
	assert.Zero(t, res.Total(), "consistent counters must not be rewritten")

	_, err = f.db.Exec(`UPDATE blog_categories SET post_count = 7`)
	require.NoError(t, err)
	_, err = f.db.Exec(`UPDATE blog_tags SET post_count = 0`)
	require.NoError(t, err)
	_, err = f.db.Exec(`UPDATE project_categories SET post_count = 3`)
	require.NoError(t, err)

	res, err = svc.Recount(ctx)
	require.NoError(t, err)
	assert.Equal(t, RecountResult{BlogCategories: 1, BlogTags: 2, ProjectCategories: 1}, res)
	f.assertCountsMatchLinks(t)
	assert.Equal(t, int64(1), projectCategoryCount(t, f.q, web.ID))
}

func TestDashboardStats(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	ctx := context.Background()

	testutil.CreateUser(t, db, "admin@example.com", auth.RoleAdmin)
	content := NewContentService(db, nil, 0)
	_, err := content.SubmitContact(ctx, ContactInput{FirstName: "A", LastName: "B", Email: "a@example.com", Message: "Hi"})
	require.NoError(t, err)

	stats, err := NewMaintenanceService(db, nil).DashboardStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalUsers)
	assert.Equal(t, int64(1), stats.TotalSubmissions)
	assert.Equal(t, int64(1), stats.UnreadSubmissions)
	assert.Zero(t, stats.TotalPosts)
}

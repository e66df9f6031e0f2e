// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"
	"time"
)

// testDB creates a temporary test database.
func testDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()

	f, err := os.CreateTemp(t.TempDir(), "studio-test-*.db")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	dbPath := f.Name()
	_ = f.Close()

	db, err := NewDB(dbPath)
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}

	if err := Migrate(db); err != nil {
		_ = db.Close()
		t.Fatalf("Migrate: %v", err)
	}

	return db, func() { _ = db.Close() }
}

func createTestUser(t *testing.T, q *Queries, email, role string) User {
	t.Helper()
	now := time.Now().UTC()
	user, err := q.CreateUser(context.Background(), CreateUserParams{
		Email:        email,
		PasswordHash: "hash",
		Name:         "Test User",
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return user
}

func createTestPost(t *testing.T, q *Queries, authorID int64, slug string, published bool) BlogPost {
	t.Helper()
	now := time.Now().UTC()
	post, err := q.CreateBlogPost(context.Background(), CreateBlogPostParams{
		Title:       slug,
		Slug:        slug,
		Content:     "body",
		AuthorID:    authorID,
		IsPublished: published,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		t.Fatalf("CreateBlogPost: %v", err)
	}
	return post
}

func TestBuildDSN(t *testing.T) {
	tests := []struct {
		driver string
		path   string
		want   string
	}{
		{DriverModernc, "a.db", "a.db?_txlock=immediate&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"},
		{DriverCgo, "a.db", "a.db?_txlock=immediate&_foreign_keys=1&_busy_timeout=5000&_journal_mode=WAL"},
		{DriverCgo, "a.db?mode=rwc", "a.db?mode=rwc&_txlock=immediate&_foreign_keys=1&_busy_timeout=5000&_journal_mode=WAL"},
	}
	for _, tt := range tests {
		got, err := buildDSN(tt.driver, tt.path)
		if err != nil {
			t.Fatalf("buildDSN(%q): %v", tt.driver, err)
		}
		if got != tt.want {
			t.Errorf("buildDSN(%q, %q) = %q, want %q", tt.driver, tt.path, got, tt.want)
		}
	}

	if _, err := buildDSN("postgres", "x"); err == nil {
		t.Error("expected error for unsupported driver")
	}
}

func TestCreateUser(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	user := createTestUser(t, New(db), "test@example.com", "editor")

	if user.ID == 0 {
		t.Error("user.ID should not be 0")
	}
	if user.Email != "test@example.com" {
		t.Errorf("Email = %q, want %q", user.Email, "test@example.com")
	}
	if user.Role != "editor" {
		t.Errorf("Role = %q, want %q", user.Role, "editor")
	}
	if !user.IsActive {
		t.Error("IsActive = false, want true")
	}
}

func TestGetUserByEmail_CaseInsensitive(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	q := New(db)
	created := createTestUser(t, q, "find@example.com", "admin")

	found, err := q.GetUserByEmail(context.Background(), "FIND@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if found.ID != created.ID {
		t.Errorf("ID = %d, want %d", found.ID, created.ID)
	}
}

func TestGetUserByEmail_NotFound(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	_, err := New(db).GetUserByEmail(context.Background(), "nonexistent@example.com")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestCountActiveAdmins(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)
	createTestUser(t, q, "a1@example.com", "admin")
	a2 := createTestUser(t, q, "a2@example.com", "admin")
	createTestUser(t, q, "e1@example.com", "editor")

	if _, err := q.UpdateUser(ctx, UpdateUserParams{
		Email: a2.Email, Name: a2.Name, Role: "admin", IsActive: false, UpdatedAt: time.Now().UTC(), ID: a2.ID,
	}); err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}

	count, err := q.CountActiveAdmins(ctx)
	if err != nil {
		t.Fatalf("CountActiveAdmins: %v", err)
	}
	if count != 1 {
		t.Errorf("CountActiveAdmins = %d, want 1", count)
	}
}

func TestBlogCategoryCounters(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)
	now := time.Now().UTC()

	c1, err := q.CreateBlogCategory(ctx, CreateBlogCategoryParams{Name: "One", Slug: "one", CreatedAt: now, UpdatedAt: now})
	if err != nil {
		t.Fatalf("CreateBlogCategory: %v", err)
	}
	c2, err := q.CreateBlogCategory(ctx, CreateBlogCategoryParams{Name: "Two", Slug: "two", CreatedAt: now, UpdatedAt: now})
	if err != nil {
		t.Fatalf("CreateBlogCategory: %v", err)
	}

	n, err := q.IncrementBlogCategoryPostCounts(ctx, []int64{c1.ID, c2.ID})
	if err != nil {
		t.Fatalf("IncrementBlogCategoryPostCounts: %v", err)
	}
	if n != 2 {
		t.Errorf("rows affected = %d, want 2", n)
	}

	// Decrementing twice must clamp at zero.
	for range 2 {
		if _, err := q.DecrementBlogCategoryPostCounts(ctx, []int64{c1.ID}); err != nil {
			t.Fatalf("DecrementBlogCategoryPostCounts: %v", err)
		}
	}

	got1, _ := q.GetBlogCategoryByID(ctx, c1.ID)
	got2, _ := q.GetBlogCategoryByID(ctx, c2.ID)
	if got1.PostCount != 0 {
		t.Errorf("c1.PostCount = %d, want 0", got1.PostCount)
	}
	if got2.PostCount != 1 {
		t.Errorf("c2.PostCount = %d, want 1", got2.PostCount)
	}

	if n, err := q.IncrementBlogCategoryPostCounts(ctx, nil); err != nil || n != 0 {
		t.Errorf("empty increment = (%d, %v), want (0, nil)", n, err)
	}
}

func TestCountBlogCategoriesByIDs(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)
	now := time.Now().UTC()
	c1, _ := q.CreateBlogCategory(ctx, CreateBlogCategoryParams{Name: "One", Slug: "one", CreatedAt: now, UpdatedAt: now})

	count, err := q.CountBlogCategoriesByIDs(ctx, []int64{c1.ID, 9999})
	if err != nil {
		t.Fatalf("CountBlogCategoriesByIDs: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}

	count, err = q.CountBlogCategoriesByIDs(ctx, nil)
	if err != nil {
		t.Fatalf("CountBlogCategoriesByIDs(nil): %v", err)
	}
	if count != 0 {
		t.Errorf("count = %d, want 0", count)
	}
}

func TestPostTagAssociationAndRecount(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)
	now := time.Now().UTC()

	user := createTestUser(t, q, "author@example.com", "editor")
	post := createTestPost(t, q, user.ID, "tagged", true)

	tag1, _ := q.CreateBlogTag(ctx, CreateBlogTagParams{Name: "Tag 1", Slug: "tag-1", CreatedAt: now, UpdatedAt: now})
	tag2, _ := q.CreateBlogTag(ctx, CreateBlogTagParams{Name: "Tag 2", Slug: "tag-2", CreatedAt: now, UpdatedAt: now})

	for _, id := range []int64{tag1.ID, tag2.ID, tag1.ID} {
		if err := q.AddTagToPost(ctx, post.ID, id); err != nil {
			t.Fatalf("AddTagToPost: %v", err)
		}
	}

	ids, err := q.GetTagIDsForPost(ctx, post.ID)
	if err != nil {
		t.Fatalf("GetTagIDsForPost: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("len(ids) = %d, want 2", len(ids))
	}

	// Counters were never incremented, so both tags have drifted.
	drifted, err := q.RecountBlogTagPostCounts(ctx)
	if err != nil {
		t.Fatalf("RecountBlogTagPostCounts: %v", err)
	}
	if drifted != 2 {
		t.Errorf("drifted = %d, want 2", drifted)
	}

	drifted, err = q.RecountBlogTagPostCounts(ctx)
	if err != nil {
		t.Fatalf("RecountBlogTagPostCounts: %v", err)
	}
	if drifted != 0 {
		t.Errorf("second recount drifted = %d, want 0", drifted)
	}

	removed, err := q.RemoveTagsFromPost(ctx, post.ID, []int64{tag2.ID})
	if err != nil {
		t.Fatalf("RemoveTagsFromPost: %v", err)
	}
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}
}

func TestDeletePostCascadesLinks(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)
	now := time.Now().UTC()

	user := createTestUser(t, q, "author@example.com", "editor")
	post := createTestPost(t, q, user.ID, "doomed", false)
	cat, _ := q.CreateBlogCategory(ctx, CreateBlogCategoryParams{Name: "C", Slug: "c", CreatedAt: now, UpdatedAt: now})
	if err := q.AddCategoryToPost(ctx, post.ID, cat.ID); err != nil {
		t.Fatalf("AddCategoryToPost: %v", err)
	}

	if err := q.DeleteBlogPost(ctx, post.ID); err != nil {
		t.Fatalf("DeleteBlogPost: %v", err)
	}

	var links int
	if err := db.QueryRow("SELECT COUNT(*) FROM blog_post_categories").Scan(&links); err != nil {
		t.Fatalf("counting links: %v", err)
	}
	if links != 0 {
		t.Errorf("links = %d, want 0 (foreign keys should cascade)", links)
	}
}

func TestListBlogPostsFilters(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)
	now := time.Now().UTC()

	user := createTestUser(t, q, "author@example.com", "editor")
	p1 := createTestPost(t, q, user.ID, "go-tips", true)
	createTestPost(t, q, user.ID, "draft-notes", false)
	cat, _ := q.CreateBlogCategory(ctx, CreateBlogCategoryParams{Name: "Go", Slug: "go", CreatedAt: now, UpdatedAt: now})
	_ = q.AddCategoryToPost(ctx, p1.ID, cat.ID)

	tests := []struct {
		name string
		arg  ListBlogPostsParams
		want int
	}{
		{"all", ListBlogPostsParams{Limit: 10}, 2},
		{"published", ListBlogPostsParams{IsPublished: sql.NullBool{Bool: true, Valid: true}, Limit: 10}, 1},
		{"drafts", ListBlogPostsParams{IsPublished: sql.NullBool{Bool: false, Valid: true}, Limit: 10}, 1},
		{"category", ListBlogPostsParams{CategorySlug: "go", Limit: 10}, 1},
		{"search", ListBlogPostsParams{Search: "draft", Limit: 10}, 1},
		{"limit", ListBlogPostsParams{Limit: 1}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			posts, err := q.ListBlogPosts(ctx, tt.arg)
			if err != nil {
				t.Fatalf("ListBlogPosts: %v", err)
			}
			if len(posts) != tt.want {
				t.Errorf("len(posts) = %d, want %d", len(posts), tt.want)
			}
		})
	}

	count, err := q.CountBlogPosts(ctx, CountBlogPostsParams{IsPublished: sql.NullBool{Bool: true, Valid: true}})
	if err != nil {
		t.Fatalf("CountBlogPosts: %v", err)
	}
	if count != 1 {
		t.Errorf("CountBlogPosts = %d, want 1", count)
	}
}

func TestExecTxRollback(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	sentinel := errors.New("boom")

	err := ExecTx(ctx, db, func(q *Queries) error {
		createTestUser(t, q, "rolled@example.com", "editor")
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("ExecTx error = %v, want %v", err, sentinel)
	}

	count, err := New(db).CountUsers(ctx)
	if err != nil {
		t.Fatalf("CountUsers: %v", err)
	}
	if count != 0 {
		t.Errorf("CountUsers = %d, want 0 after rollback", count)
	}
}

func TestProjectCategoryNameCaseInsensitive(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)
	now := time.Now().UTC()

	web, err := q.CreateProjectCategory(ctx, CreateProjectCategoryParams{Name: "Web", CreatedAt: now, UpdatedAt: now})
	if err != nil {
		t.Fatalf("CreateProjectCategory: %v", err)
	}

	count, err := q.ProjectCategoryNameExistsExcluding(ctx, "WEB", 0)
	if err != nil {
		t.Fatalf("ProjectCategoryNameExistsExcluding: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}

	count, _ = q.ProjectCategoryNameExistsExcluding(ctx, "web", web.ID)
	if count != 0 {
		t.Errorf("count excluding self = %d, want 0", count)
	}

	byName, err := q.GetProjectCategoryByName(ctx, "wEB")
	if err != nil || byName.ID != web.ID {
		t.Errorf("GetProjectCategoryByName = %+v, %v; want id %d", byName, err, web.ID)
	}

	if _, err := q.CreateProjectCategory(ctx, CreateProjectCategoryParams{Name: "WEB", CreatedAt: now, UpdatedAt: now}); err == nil {
		t.Error("expected unique violation for a name differing only in case")
	}
}

func TestSiteSettingsDefaultRow(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	settings, err := q.GetSiteSettings(ctx)
	if err != nil {
		t.Fatalf("GetSiteSettings: %v", err)
	}
	if settings.SiteName != "Studio" {
		t.Errorf("SiteName = %q, want %q", settings.SiteName, "Studio")
	}

	updated, err := q.UpsertSiteSettings(ctx, UpsertSiteSettingsParams{
		SiteName:     "Acme",
		ContactEmail: "hi@acme.test",
		UpdatedAt:    time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("UpsertSiteSettings: %v", err)
	}
	if updated.SiteName != "Acme" || updated.ContactEmail != "hi@acme.test" {
		t.Errorf("settings = %+v", updated)
	}
}

func TestSeed(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()

	if err := Seed(ctx, db); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	// Second run is a no-op.
	if err := Seed(ctx, db); err != nil {
		t.Fatalf("Seed (second run): %v", err)
	}

	q := New(db)
	user, err := q.GetUserByEmail(ctx, DefaultAdminEmail)
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if user.Role != "admin" {
		t.Errorf("Role = %q, want admin", user.Role)
	}
	count, _ := q.CountUsers(ctx)
	if count != 1 {
		t.Errorf("CountUsers = %d, want 1", count)
	}
}

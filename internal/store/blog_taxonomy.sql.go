// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

// ---- categories ----

const blogCategoryColumns = `id, name, slug, description, post_count, created_at, updated_at`

func scanBlogCategory(row interface{ Scan(...interface{}) error }) (BlogCategory, error) {
	var i BlogCategory
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Slug,
		&i.Description,
		&i.PostCount,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

func collectBlogCategories(rows interface {
	Next() bool
	Scan(...interface{}) error
	Err() error
}) ([]BlogCategory, error) {
	items := []BlogCategory{}
	for rows.Next() {
		i, err := scanBlogCategory(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const createBlogCategory = `-- name: CreateBlogCategory :one
INSERT INTO blog_categories (name, slug, description, post_count, created_at, updated_at)
VALUES (?, ?, ?, 0, ?, ?)
RETURNING ` + blogCategoryColumns

type CreateBlogCategoryParams struct {
	Name        string
	Slug        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (q *Queries) CreateBlogCategory(ctx context.Context, arg CreateBlogCategoryParams) (BlogCategory, error) {
	row := q.db.QueryRowContext(ctx, createBlogCategory,
		arg.Name,
		arg.Slug,
		arg.Description,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return scanBlogCategory(row)
}

const getBlogCategoryByID = `-- name: GetBlogCategoryByID :one
SELECT ` + blogCategoryColumns + ` FROM blog_categories WHERE id = ?`

func (q *Queries) GetBlogCategoryByID(ctx context.Context, id int64) (BlogCategory, error) {
	return scanBlogCategory(q.db.QueryRowContext(ctx, getBlogCategoryByID, id))
}

const getBlogCategoryBySlug = `-- name: GetBlogCategoryBySlug :one
SELECT ` + blogCategoryColumns + ` FROM blog_categories WHERE slug = ?`

func (q *Queries) GetBlogCategoryBySlug(ctx context.Context, slug string) (BlogCategory, error) {
	return scanBlogCategory(q.db.QueryRowContext(ctx, getBlogCategoryBySlug, slug))
}

const listBlogCategories = `-- name: ListBlogCategories :many
SELECT ` + blogCategoryColumns + ` FROM blog_categories ORDER BY name`

func (q *Queries) ListBlogCategories(ctx context.Context) ([]BlogCategory, error) {
	rows, err := q.db.QueryContext(ctx, listBlogCategories)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	return collectBlogCategories(rows)
}

const blogCategorySlugExistsExcluding = `-- name: BlogCategorySlugExistsExcluding :one
SELECT COUNT(*) FROM blog_categories WHERE slug = ? AND id != ?`

func (q *Queries) BlogCategorySlugExistsExcluding(ctx context.Context, slug string, id int64) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, blogCategorySlugExistsExcluding, slug, id).Scan(&count)
	return count, err
}

const updateBlogCategory = `-- name: UpdateBlogCategory :one
UPDATE blog_categories SET name = ?, slug = ?, description = ?, updated_at = ?
WHERE id = ?
RETURNING ` + blogCategoryColumns

type UpdateBlogCategoryParams struct {
	Name        string
	Slug        string
	Description string
	UpdatedAt   time.Time
	ID          int64
}

func (q *Queries) UpdateBlogCategory(ctx context.Context, arg UpdateBlogCategoryParams) (BlogCategory, error) {
	row := q.db.QueryRowContext(ctx, updateBlogCategory,
		arg.Name,
		arg.Slug,
		arg.Description,
		arg.UpdatedAt,
		arg.ID,
	)
	return scanBlogCategory(row)
}

const deleteBlogCategory = `-- name: DeleteBlogCategory :exec
DELETE FROM blog_categories WHERE id = ?`

func (q *Queries) DeleteBlogCategory(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteBlogCategory, id)
	return err
}

const countBlogCategoriesByIDs = `-- name: CountBlogCategoriesByIDs :one
SELECT COUNT(*) FROM blog_categories WHERE id IN (/*SLICE:ids*/?)`

// CountBlogCategoriesByIDs reports how many of ids exist. ids must be distinct.
func (q *Queries) CountBlogCategoriesByIDs(ctx context.Context, ids []int64) (int64, error) {
	query, args := expandSlice(countBlogCategoriesByIDs, "ids", ids)
	var count int64
	err := q.db.QueryRowContext(ctx, query, args...).Scan(&count)
	return count, err
}

const incrementBlogCategoryPostCounts = `-- name: IncrementBlogCategoryPostCounts :execrows
UPDATE blog_categories SET post_count = post_count + 1 WHERE id IN (/*SLICE:ids*/?)`

// IncrementBlogCategoryPostCounts adds one to each listed category. A
// repeated id is still incremented only once.
func (q *Queries) IncrementBlogCategoryPostCounts(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	query, args := expandSlice(incrementBlogCategoryPostCounts, "ids", ids)
	return q.execAffected(ctx, query, args...)
}

const decrementBlogCategoryPostCounts = `-- name: DecrementBlogCategoryPostCounts :execrows
UPDATE blog_categories SET post_count = MAX(post_count - 1, 0) WHERE id IN (/*SLICE:ids*/?)`

func (q *Queries) DecrementBlogCategoryPostCounts(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	query, args := expandSlice(decrementBlogCategoryPostCounts, "ids", ids)
	return q.execAffected(ctx, query, args...)
}

const getCategoryIDsForPost = `-- name: GetCategoryIDsForPost :many
SELECT category_id FROM blog_post_categories WHERE post_id = ? ORDER BY category_id`

func (q *Queries) GetCategoryIDsForPost(ctx context.Context, postID int64) ([]int64, error) {
	return q.queryIDs(ctx, getCategoryIDsForPost, postID)
}

const getCategoriesForPost = `-- name: GetCategoriesForPost :many
SELECT c.id, c.name, c.slug, c.description, c.post_count, c.created_at, c.updated_at
FROM blog_categories c
JOIN blog_post_categories pc ON pc.category_id = c.id
WHERE pc.post_id = ?
ORDER BY c.name`

func (q *Queries) GetCategoriesForPost(ctx context.Context, postID int64) ([]BlogCategory, error) {
	rows, err := q.db.QueryContext(ctx, getCategoriesForPost, postID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	return collectBlogCategories(rows)
}

const addCategoryToPost = `-- name: AddCategoryToPost :exec
INSERT OR IGNORE INTO blog_post_categories (post_id, category_id) VALUES (?, ?)`

func (q *Queries) AddCategoryToPost(ctx context.Context, postID, categoryID int64) error {
	_, err := q.db.ExecContext(ctx, addCategoryToPost, postID, categoryID)
	return err
}

const removeCategoriesFromPost = `-- name: RemoveCategoriesFromPost :execrows
DELETE FROM blog_post_categories WHERE post_id = ? AND category_id IN (/*SLICE:ids*/?)`

func (q *Queries) RemoveCategoriesFromPost(ctx context.Context, postID int64, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	query, args := expandSlice(removeCategoriesFromPost, "ids", ids)
	return q.execAffected(ctx, query, append([]interface{}{postID}, args...)...)
}

const recountBlogCategoryPostCounts = `-- name: RecountBlogCategoryPostCounts :execrows
UPDATE blog_categories
SET post_count = (SELECT COUNT(*) FROM blog_post_categories pc WHERE pc.category_id = blog_categories.id)
WHERE post_count != (SELECT COUNT(*) FROM blog_post_categories pc WHERE pc.category_id = blog_categories.id)`

// RecountBlogCategoryPostCounts rewrites drifted counters and returns how
// many rows changed.
func (q *Queries) RecountBlogCategoryPostCounts(ctx context.Context) (int64, error) {
	return q.execAffected(ctx, recountBlogCategoryPostCounts)
}

// ---- tags ----

const blogTagColumns = `id, name, slug, post_count, created_at, updated_at`

func scanBlogTag(row interface{ Scan(...interface{}) error }) (BlogTag, error) {
	var i BlogTag
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Slug,
		&i.PostCount,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

func collectBlogTags(rows interface {
	Next() bool
	Scan(...interface{}) error
	Err() error
}) ([]BlogTag, error) {
	items := []BlogTag{}
	for rows.Next() {
		i, err := scanBlogTag(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const createBlogTag = `-- name: CreateBlogTag :one
INSERT INTO blog_tags (name, slug, post_count, created_at, updated_at)
VALUES (?, ?, 0, ?, ?)
RETURNING ` + blogTagColumns

type CreateBlogTagParams struct {
	Name      string
	Slug      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (q *Queries) CreateBlogTag(ctx context.Context, arg CreateBlogTagParams) (BlogTag, error) {
	row := q.db.QueryRowContext(ctx, createBlogTag,
		arg.Name,
		arg.Slug,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return scanBlogTag(row)
}

const getBlogTagByID = `-- name: GetBlogTagByID :one
SELECT ` + blogTagColumns + ` FROM blog_tags WHERE id = ?`

func (q *Queries) GetBlogTagByID(ctx context.Context, id int64) (BlogTag, error) {
	return scanBlogTag(q.db.QueryRowContext(ctx, getBlogTagByID, id))
}

const getBlogTagBySlug = `-- name: GetBlogTagBySlug :one
SELECT ` + blogTagColumns + ` FROM blog_tags WHERE slug = ?`

func (q *Queries) GetBlogTagBySlug(ctx context.Context, slug string) (BlogTag, error) {
	return scanBlogTag(q.db.QueryRowContext(ctx, getBlogTagBySlug, slug))
}

const listBlogTags = `-- name: ListBlogTags :many
SELECT ` + blogTagColumns + ` FROM blog_tags ORDER BY name`

func (q *Queries) ListBlogTags(ctx context.Context) ([]BlogTag, error) {
	rows, err := q.db.QueryContext(ctx, listBlogTags)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	return collectBlogTags(rows)
}

const blogTagSlugExistsExcluding = `-- name: BlogTagSlugExistsExcluding :one
SELECT COUNT(*) FROM blog_tags WHERE slug = ? AND id != ?`

func (q *Queries) BlogTagSlugExistsExcluding(ctx context.Context, slug string, id int64) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, blogTagSlugExistsExcluding, slug, id).Scan(&count)
	return count, err
}

const updateBlogTag = `-- name: UpdateBlogTag :one
UPDATE blog_tags SET name = ?, slug = ?, updated_at = ?
WHERE id = ?
RETURNING ` + blogTagColumns

type UpdateBlogTagParams struct {
	Name      string
	Slug      string
	UpdatedAt time.Time
	ID        int64
}

func (q *Queries) UpdateBlogTag(ctx context.Context, arg UpdateBlogTagParams) (BlogTag, error) {
	row := q.db.QueryRowContext(ctx, updateBlogTag,
		arg.Name,
		arg.Slug,
		arg.UpdatedAt,
		arg.ID,
	)
	return scanBlogTag(row)
}

const deleteBlogTag = `-- name: DeleteBlogTag :exec
DELETE FROM blog_tags WHERE id = ?`

func (q *Queries) DeleteBlogTag(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteBlogTag, id)
	return err
}

const countBlogTagsByIDs = `-- name: CountBlogTagsByIDs :one
SELECT COUNT(*) FROM blog_tags WHERE id IN (/*SLICE:ids*/?)`

func (q *Queries) CountBlogTagsByIDs(ctx context.Context, ids []int64) (int64, error) {
	query, args := expandSlice(countBlogTagsByIDs, "ids", ids)
	var count int64
	err := q.db.QueryRowContext(ctx, query, args...).Scan(&count)
	return count, err
}

const incrementBlogTagPostCounts = `-- name: IncrementBlogTagPostCounts :execrows
UPDATE blog_tags SET post_count = post_count + 1 WHERE id IN (/*SLICE:ids*/?)`

func (q *Queries) IncrementBlogTagPostCounts(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	query, args := expandSlice(incrementBlogTagPostCounts, "ids", ids)
	return q.execAffected(ctx, query, args...)
}

const decrementBlogTagPostCounts = `-- name: DecrementBlogTagPostCounts :execrows
UPDATE blog_tags SET post_count = MAX(post_count - 1, 0) WHERE id IN (/*SLICE:ids*/?)`

func (q *Queries) DecrementBlogTagPostCounts(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	query, args := expandSlice(decrementBlogTagPostCounts, "ids", ids)
	return q.execAffected(ctx, query, args...)
}

const getTagIDsForPost = `-- name: GetTagIDsForPost :many
SELECT tag_id FROM blog_post_tags WHERE post_id = ? ORDER BY tag_id`

func (q *Queries) GetTagIDsForPost(ctx context.Context, postID int64) ([]int64, error) {
	return q.queryIDs(ctx, getTagIDsForPost, postID)
}

const getTagsForPost = `-- name: GetTagsForPost :many
SELECT t.id, t.name, t.slug, t.post_count, t.created_at, t.updated_at
FROM blog_tags t
JOIN blog_post_tags pt ON pt.tag_id = t.id
WHERE pt.post_id = ?
ORDER BY t.name`

func (q *Queries) GetTagsForPost(ctx context.Context, postID int64) ([]BlogTag, error) {
	rows, err := q.db.QueryContext(ctx, getTagsForPost, postID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	return collectBlogTags(rows)
}

const addTagToPost = `-- name: AddTagToPost :exec
INSERT OR IGNORE INTO blog_post_tags (post_id, tag_id) VALUES (?, ?)`

func (q *Queries) AddTagToPost(ctx context.Context, postID, tagID int64) error {
	_, err := q.db.ExecContext(ctx, addTagToPost, postID, tagID)
	return err
}

const removeTagsFromPost = `-- name: RemoveTagsFromPost :execrows
DELETE FROM blog_post_tags WHERE post_id = ? AND tag_id IN (/*SLICE:ids*/?)`

func (q *Queries) RemoveTagsFromPost(ctx context.Context, postID int64, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	query, args := expandSlice(removeTagsFromPost, "ids", ids)
	return q.execAffected(ctx, query, append([]interface{}{postID}, args...)...)
}

const recountBlogTagPostCounts = `-- name: RecountBlogTagPostCounts :execrows
UPDATE blog_tags
SET post_count = (SELECT COUNT(*) FROM blog_post_tags pt WHERE pt.tag_id = blog_tags.id)
WHERE post_count != (SELECT COUNT(*) FROM blog_post_tags pt WHERE pt.tag_id = blog_tags.id)`

func (q *Queries) RecountBlogTagPostCounts(ctx context.Context) (int64, error) {
	return q.execAffected(ctx, recountBlogTagPostCounts)
}

func (q *Queries) queryIDs(ctx context.Context, query string, args ...interface{}) ([]int64, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

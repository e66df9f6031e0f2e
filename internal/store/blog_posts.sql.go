// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const blogPostColumns = `id, title, slug, excerpt, content, image, author_id, is_published, is_featured,
published_at, seo_title, seo_description, seo_keywords, created_at, updated_at`

func scanBlogPost(row interface{ Scan(...interface{}) error }) (BlogPost, error) {
	var i BlogPost
	err := row.Scan(
		&i.ID,
		&i.Title,
		&i.Slug,
		&i.Excerpt,
		&i.Content,
		&i.Image,
		&i.AuthorID,
		&i.IsPublished,
		&i.IsFeatured,
		&i.PublishedAt,
		&i.SeoTitle,
		&i.SeoDescription,
		&i.SeoKeywords,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const createBlogPost = `-- name: CreateBlogPost :one
INSERT INTO blog_posts (
    title, slug, excerpt, content, image, author_id, is_published, is_featured,
    published_at, seo_title, seo_description, seo_keywords, created_at, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + blogPostColumns

type CreateBlogPostParams struct {
	Title          string
	Slug           string
	Excerpt        string
	Content        string
	Image          string
	AuthorID       int64
	IsPublished    bool
	IsFeatured     bool
	PublishedAt    sql.NullTime
	SeoTitle       string
	SeoDescription string
	SeoKeywords    string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (q *Queries) CreateBlogPost(ctx context.Context, arg CreateBlogPostParams) (BlogPost, error) {
	row := q.db.QueryRowContext(ctx, createBlogPost,
		arg.Title,
		arg.Slug,
		arg.Excerpt,
		arg.Content,
		arg.Image,
		arg.AuthorID,
		arg.IsPublished,
		arg.IsFeatured,
		arg.PublishedAt,
		arg.SeoTitle,
		arg.SeoDescription,
		arg.SeoKeywords,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return scanBlogPost(row)
}

const getBlogPostByID = `-- name: GetBlogPostByID :one
SELECT ` + blogPostColumns + ` FROM blog_posts WHERE id = ?`

func (q *Queries) GetBlogPostByID(ctx context.Context, id int64) (BlogPost, error) {
	return scanBlogPost(q.db.QueryRowContext(ctx, getBlogPostByID, id))
}

const getBlogPostBySlug = `-- name: GetBlogPostBySlug :one
SELECT ` + blogPostColumns + ` FROM blog_posts WHERE slug = ?`

func (q *Queries) GetBlogPostBySlug(ctx context.Context, slug string) (BlogPost, error) {
	return scanBlogPost(q.db.QueryRowContext(ctx, getBlogPostBySlug, slug))
}

const blogPostSlugExistsExcluding = `-- name: BlogPostSlugExistsExcluding :one
SELECT COUNT(*) FROM blog_posts WHERE slug = ? AND id != ?`

// BlogPostSlugExistsExcluding counts posts using slug other than id. Pass 0
// as id when creating.
func (q *Queries) BlogPostSlugExistsExcluding(ctx context.Context, slug string, id int64) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, blogPostSlugExistsExcluding, slug, id).Scan(&count)
	return count, err
}

const updateBlogPost = `-- name: UpdateBlogPost :one
UPDATE blog_posts SET
    title = ?, slug = ?, excerpt = ?, content = ?, image = ?, author_id = ?,
    is_published = ?, is_featured = ?, published_at = ?,
    seo_title = ?, seo_description = ?, seo_keywords = ?, updated_at = ?
WHERE id = ?
RETURNING ` + blogPostColumns

type UpdateBlogPostParams struct {
	Title          string
	Slug           string
	Excerpt        string
	Content        string
	Image          string
	AuthorID       int64
	IsPublished    bool
	IsFeatured     bool
	PublishedAt    sql.NullTime
	SeoTitle       string
	SeoDescription string
	SeoKeywords    string
	UpdatedAt      time.Time
	ID             int64
}

func (q *Queries) UpdateBlogPost(ctx context.Context, arg UpdateBlogPostParams) (BlogPost, error) {
	row := q.db.QueryRowContext(ctx, updateBlogPost,
		arg.Title,
		arg.Slug,
		arg.Excerpt,
		arg.Content,
		arg.Image,
		arg.AuthorID,
		arg.IsPublished,
		arg.IsFeatured,
		arg.PublishedAt,
		arg.SeoTitle,
		arg.SeoDescription,
		arg.SeoKeywords,
		arg.UpdatedAt,
		arg.ID,
	)
	return scanBlogPost(row)
}

const deleteBlogPost = `-- name: DeleteBlogPost :exec
DELETE FROM blog_posts WHERE id = ?`

func (q *Queries) DeleteBlogPost(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteBlogPost, id)
	return err
}

// blogPostFilter is shared by ListBlogPosts and CountBlogPosts. Numbered
// parameters: ?1 published, ?2 featured, ?3 category slug, ?4 tag slug, ?5 search.
const blogPostFilter = `
WHERE (?1 IS NULL OR p.is_published = ?1)
  AND (?2 IS NULL OR p.is_featured = ?2)
  AND (?3 = '' OR EXISTS (
      SELECT 1 FROM blog_post_categories pc
      JOIN blog_categories c ON c.id = pc.category_id
      WHERE pc.post_id = p.id AND c.slug = ?3))
  AND (?4 = '' OR EXISTS (
      SELECT 1 FROM blog_post_tags pt
      JOIN blog_tags t ON t.id = pt.tag_id
      WHERE pt.post_id = p.id AND t.slug = ?4))
  AND (?5 = '' OR p.title LIKE '%' || ?5 || '%' OR p.excerpt LIKE '%' || ?5 || '%')`

const listBlogPosts = `-- name: ListBlogPosts :many
SELECT p.id, p.title, p.slug, p.excerpt, p.content, p.image, p.author_id, p.is_published, p.is_featured,
       p.published_at, p.seo_title, p.seo_description, p.seo_keywords, p.created_at, p.updated_at
FROM blog_posts p` + blogPostFilter + `
ORDER BY COALESCE(p.published_at, p.created_at) DESC, p.id DESC
LIMIT ?6 OFFSET ?7`

type ListBlogPostsParams struct {
	IsPublished  sql.NullBool
	IsFeatured   sql.NullBool
	CategorySlug string
	TagSlug      string
	Search       string
	Limit        int64
	Offset       int64
}

func (q *Queries) ListBlogPosts(ctx context.Context, arg ListBlogPostsParams) ([]BlogPost, error) {
	rows, err := q.db.QueryContext(ctx, listBlogPosts,
		arg.IsPublished,
		arg.IsFeatured,
		arg.CategorySlug,
		arg.TagSlug,
		arg.Search,
		arg.Limit,
		arg.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	items := []BlogPost{}
	for rows.Next() {
		i, err := scanBlogPost(rows)
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

const countBlogPosts = `-- name: CountBlogPosts :one
SELECT COUNT(*) FROM blog_posts p` + blogPostFilter

type CountBlogPostsParams struct {
	IsPublished  sql.NullBool
	IsFeatured   sql.NullBool
	CategorySlug string
	TagSlug      string
	Search       string
}

func (q *Queries) CountBlogPosts(ctx context.Context, arg CountBlogPostsParams) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countBlogPosts,
		arg.IsPublished,
		arg.IsFeatured,
		arg.CategorySlug,
		arg.TagSlug,
		arg.Search,
	).Scan(&count)
	return count, err
}

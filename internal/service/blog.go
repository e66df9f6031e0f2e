// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service holds the business logic behind the HTTP handlers. Every
// mutating operation runs inside a single store.ExecTx transaction.
package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/olegiv/studio-cms/internal/cache"
	"github.com/olegiv/studio-cms/internal/store"
	"github.com/olegiv/studio-cms/internal/util"
)

// TaxonomyInput names a category or tag that may not exist yet.
type TaxonomyInput struct {
	Name string
	Slug string
}

// PostInput is the editable state of a blog post together with its
// category and tag selection.
type PostInput struct {
	Title          string
	Slug           string
	Excerpt        string
	Content        string
	Image          string
	AuthorID       int64
	IsPublished    bool
	IsFeatured     bool
	SeoTitle       string
	SeoDescription string
	SeoKeywords    string

	CategoryIDs   []int64
	NewCategories []TaxonomyInput
	TagIDs        []int64
	NewTags       []TaxonomyInput
}

// Author is the public view of a post's author.
type Author struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// PostDetail is a post with its author and associations resolved.
type PostDetail struct {
	Post       store.BlogPost       `json:"post"`
	Author     Author               `json:"author"`
	Categories []store.BlogCategory `json:"categories"`
	Tags       []store.BlogTag      `json:"tags"`
}

// PostFilter narrows ListPosts. Nil pointers mean "any".
type PostFilter struct {
	Published    *bool
	Featured     *bool
	CategorySlug string
	TagSlug      string
	Search       string
	Pagination
}

// PostList is one page of posts plus the unpaged total.
type PostList struct {
	Posts []PostDetail `json:"posts"`
	Total int64        `json:"total"`
}

// CategoryInput is the editable state of a blog category.
type CategoryInput struct {
	Name        string
	Slug        string
	Description string
}

// BlogService manages posts and their category/tag associations, keeping
// the denormalized post counts equal to the number of linked posts.
type BlogService struct {
	db      *sql.DB
	queries *store.Queries
	cache   cache.Cache

	lists      *cache.TypedCache[PostList]
	posts      *cache.TypedCache[PostDetail]
	categories *cache.TypedCache[[]store.BlogCategory]
	tags       *cache.TypedCache[[]store.BlogTag]
}

// NewBlogService creates a BlogService. c may be nil to disable caching of
// public read models.
func NewBlogService(db *sql.DB, c cache.Cache, ttl time.Duration) *BlogService {
	return &BlogService{
		db:         db,
		queries:    store.New(db),
		cache:      c,
		lists:      newTypedCache[PostList](c, CachePrefixBlog+"list:", ttl),
		posts:      newTypedCache[PostDetail](c, CachePrefixBlog+"post:", ttl),
		categories: newTypedCache[[]store.BlogCategory](c, CachePrefixBlog+"categories:", ttl),
		tags:       newTypedCache[[]store.BlogTag](c, CachePrefixBlog+"tags:", ttl),
	}
}

func (in *PostInput) normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Content = strings.TrimSpace(in.Content)
	in.Excerpt = strings.TrimSpace(in.Excerpt)
	in.Slug = strings.TrimSpace(in.Slug)
	if in.Slug == "" {
		in.Slug = util.Slugify(in.Title)
	}
}

func (in *PostInput) validate() error {
	verr := &ValidationError{}
	if in.Title == "" {
		verr.Add("title", "Title is required")
	}
	if in.Content == "" {
		verr.Add("content", "Content is required")
	}
	if in.AuthorID <= 0 {
		verr.Add("authorId", "Author is required")
	}
	if in.Title != "" && !util.IsValidSlug(in.Slug) {
		verr.Add("slug", "Slug must contain only lowercase letters, digits and hyphens")
	}
	for _, c := range in.NewCategories {
		if strings.TrimSpace(c.Name) == "" {
			verr.Add("newCategories", "Category name is required")
		}
	}
	for _, t := range in.NewTags {
		if strings.TrimSpace(t.Name) == "" {
			verr.Add("newTags", "Tag name is required")
		}
	}
	return verr.OrNil()
}

// CreatePost creates a post, any brand-new categories and tags, the
// association rows and the count increments in one transaction.
func (s *BlogService) CreatePost(ctx context.Context, in PostInput) (*PostDetail, error) {
	in.normalize()
	if err := in.validate(); err != nil {
		return nil, err
	}

	var postID int64
	err := store.ExecTx(ctx, s.db, func(q *store.Queries) error {
		if err := checkPostSlug(ctx, q, in.Slug, 0); err != nil {
			return err
		}
		if err := checkAuthor(ctx, q, in.AuthorID); err != nil {
			return err
		}

		now := time.Now().UTC()
		categoryIDs, err := resolveCategories(ctx, q, in.CategoryIDs, in.NewCategories, now)
		if err != nil {
			return err
		}
		tagIDs, err := resolveTags(ctx, q, in.TagIDs, in.NewTags, now)
		if err != nil {
			return err
		}

		var publishedAt sql.NullTime
		if in.IsPublished {
			publishedAt = sql.NullTime{Time: now, Valid: true}
		}

		post, err := q.CreateBlogPost(ctx, store.CreateBlogPostParams{
			Title:          in.Title,
			Slug:           in.Slug,
			Excerpt:        in.Excerpt,
			Content:        in.Content,
			Image:          in.Image,
			AuthorID:       in.AuthorID,
			IsPublished:    in.IsPublished,
			IsFeatured:     in.IsFeatured,
			PublishedAt:    publishedAt,
			SeoTitle:       in.SeoTitle,
			SeoDescription: in.SeoDescription,
			SeoKeywords:    in.SeoKeywords,
			CreatedAt:      now,
			UpdatedAt:      now,
		})
		if err != nil {
			return fmt.Errorf("creating post: %w", err)
		}
		postID = post.ID

		return linkPost(ctx, q, post.ID, categoryIDs, tagIDs)
	})
	if err != nil {
		return nil, err
	}

	invalidate(ctx, s.cache, CachePrefixBlog)
	return s.GetPost(ctx, postID)
}

// UpdatePost replaces a post's fields and associations. Only the
// categories and tags that actually changed have their counts adjusted.
func (s *BlogService) UpdatePost(ctx context.Context, id int64, in PostInput) (*PostDetail, error) {
	in.normalize()
	if err := in.validate(); err != nil {
		return nil, err
	}

	err := store.ExecTx(ctx, s.db, func(q *store.Queries) error {
		existing, err := q.GetBlogPostByID(ctx, id)
		if err != nil {
			return lookupErr("post", err)
		}
		if err := checkPostSlug(ctx, q, in.Slug, id); err != nil {
			return err
		}
		if err := checkAuthor(ctx, q, in.AuthorID); err != nil {
			return err
		}

		now := time.Now().UTC()
		categoryIDs, err := resolveCategories(ctx, q, in.CategoryIDs, in.NewCategories, now)
		if err != nil {
			return err
		}
		tagIDs, err := resolveTags(ctx, q, in.TagIDs, in.NewTags, now)
		if err != nil {
			return err
		}

		// The first publication date survives later unpublish/republish.
		publishedAt := existing.PublishedAt
		if in.IsPublished && !publishedAt.Valid {
			publishedAt = sql.NullTime{Time: now, Valid: true}
		}

		if _, err := q.UpdateBlogPost(ctx, store.UpdateBlogPostParams{
			Title:          in.Title,
			Slug:           in.Slug,
			Excerpt:        in.Excerpt,
			Content:        in.Content,
			Image:          in.Image,
			AuthorID:       in.AuthorID,
			IsPublished:    in.IsPublished,
			IsFeatured:     in.IsFeatured,
			PublishedAt:    publishedAt,
			SeoTitle:       in.SeoTitle,
			SeoDescription: in.SeoDescription,
			SeoKeywords:    in.SeoKeywords,
			UpdatedAt:      now,
			ID:             id,
		}); err != nil {
			return fmt.Errorf("updating post: %w", err)
		}

		return relinkPost(ctx, q, id, categoryIDs, tagIDs)
	})
	if err != nil {
		return nil, err
	}

	invalidate(ctx, s.cache, CachePrefixBlog)
	return s.GetPost(ctx, id)
}

// DeletePost removes a post and decrements the counts of every category
// and tag it was linked to.
func (s *BlogService) DeletePost(ctx context.Context, id int64) error {
	err := store.ExecTx(ctx, s.db, func(q *store.Queries) error {
		if _, err := q.GetBlogPostByID(ctx, id); err != nil {
			return lookupErr("post", err)
		}
		categoryIDs, err := q.GetCategoryIDsForPost(ctx, id)
		if err != nil {
			return fmt.Errorf("loading post categories: %w", err)
		}
		tagIDs, err := q.GetTagIDsForPost(ctx, id)
		if err != nil {
			return fmt.Errorf("loading post tags: %w", err)
		}

		if err := q.DeleteBlogPost(ctx, id); err != nil {
			return fmt.Errorf("deleting post: %w", err)
		}

		if _, err := q.DecrementBlogCategoryPostCounts(ctx, categoryIDs); err != nil {
			return fmt.Errorf("decrementing category counts: %w", err)
		}
		if _, err := q.DecrementBlogTagPostCounts(ctx, tagIDs); err != nil {
			return fmt.Errorf("decrementing tag counts: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	invalidate(ctx, s.cache, CachePrefixBlog)
	return nil
}

// GetPost returns a post by id regardless of its published state.
func (s *BlogService) GetPost(ctx context.Context, id int64) (*PostDetail, error) {
	post, err := s.queries.GetBlogPostByID(ctx, id)
	if err != nil {
		return nil, lookupErr("post", err)
	}
	return s.detail(ctx, post)
}

// GetPublishedPostBySlug returns a published post. Drafts are reported as
// not found.
func (s *BlogService) GetPublishedPostBySlug(ctx context.Context, slug string) (*PostDetail, error) {
	return cached(ctx, s.posts, slug, func() (*PostDetail, error) {
		post, err := s.queries.GetBlogPostBySlug(ctx, slug)
		if err != nil {
			return nil, lookupErr("post", err)
		}
		if !post.IsPublished {
			return nil, notFound("post")
		}
		return s.detail(ctx, post)
	})
}

// ListPosts returns one page of posts matching f.
func (s *BlogService) ListPosts(ctx context.Context, f PostFilter) (*PostList, error) {
	f.Pagination = f.Pagination.Normalize()
	f.Search = strings.TrimSpace(f.Search)

	published := util.NullBoolFromPtr(f.Published)
	featured := util.NullBoolFromPtr(f.Featured)

	total, err := s.queries.CountBlogPosts(ctx, store.CountBlogPostsParams{
		IsPublished:  published,
		IsFeatured:   featured,
		CategorySlug: f.CategorySlug,
		TagSlug:      f.TagSlug,
		Search:       f.Search,
	})
	if err != nil {
		return nil, fmt.Errorf("counting posts: %w", err)
	}

	posts, err := s.queries.ListBlogPosts(ctx, store.ListBlogPostsParams{
		IsPublished:  published,
		IsFeatured:   featured,
		CategorySlug: f.CategorySlug,
		TagSlug:      f.TagSlug,
		Search:       f.Search,
		Limit:        f.Limit(),
		Offset:       f.Offset(),
	})
	if err != nil {
		return nil, fmt.Errorf("listing posts: %w", err)
	}

	list := &PostList{Posts: make([]PostDetail, 0, len(posts)), Total: total}
	for _, p := range posts {
		d, err := s.detail(ctx, p)
		if err != nil {
			return nil, err
		}
		list.Posts = append(list.Posts, *d)
	}
	return list, nil
}

// ListPublishedPosts is ListPosts restricted to published posts, served
// from the cache when one is configured.
func (s *BlogService) ListPublishedPosts(ctx context.Context, f PostFilter) (*PostList, error) {
	published := true
	f.Published = &published
	f.Pagination = f.Pagination.Normalize()

	featured := "any"
	if f.Featured != nil {
		featured = fmt.Sprint(*f.Featured)
	}
	key := fmt.Sprintf("%s|%s|%s|%s|%d|%d", featured, f.CategorySlug, f.TagSlug,
		strings.TrimSpace(f.Search), f.Page, f.PerPage)

	return cached(ctx, s.lists, key, func() (*PostList, error) {
		return s.ListPosts(ctx, f)
	})
}

func (s *BlogService) detail(ctx context.Context, post store.BlogPost) (*PostDetail, error) {
	author, err := s.queries.GetUserByID(ctx, post.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("loading author of post %d: %w", post.ID, err)
	}
	categories, err := s.queries.GetCategoriesForPost(ctx, post.ID)
	if err != nil {
		return nil, fmt.Errorf("loading categories of post %d: %w", post.ID, err)
	}
	tags, err := s.queries.GetTagsForPost(ctx, post.ID)
	if err != nil {
		return nil, fmt.Errorf("loading tags of post %d: %w", post.ID, err)
	}
	return &PostDetail{
		Post:       post,
		Author:     Author{ID: author.ID, Name: author.Name, Email: author.Email},
		Categories: categories,
		Tags:       tags,
	}, nil
}

func checkPostSlug(ctx context.Context, q *store.Queries, slug string, excludeID int64) error {
	n, err := q.BlogPostSlugExistsExcluding(ctx, slug, excludeID)
	if err != nil {
		return fmt.Errorf("checking slug: %w", err)
	}
	if n > 0 {
		return NewValidationError("slug", "Slug already exists")
	}
	return nil
}

func checkAuthor(ctx context.Context, q *store.Queries, authorID int64) error {
	if _, err := q.GetUserByID(ctx, authorID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return NewValidationError("authorId", "Author does not exist")
		}
		return fmt.Errorf("loading author: %w", err)
	}
	return nil
}

// resolveCategories returns the de-duplicated union of the submitted ids and
// the ids of the new categories. A new category whose slug already exists
// resolves to the existing row.
func resolveCategories(ctx context.Context, q *store.Queries, ids []int64, fresh []TaxonomyInput, now time.Time) ([]int64, error) {
	ids = uniqueIDs(ids)
	if len(ids) > 0 {
		n, err := q.CountBlogCategoriesByIDs(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("checking categories: %w", err)
		}
		if n != int64(len(ids)) {
			return nil, NewValidationError("categoryIds", "Unknown category id")
		}
	}

	for _, in := range fresh {
		name, slug, err := taxonomyNameSlug(in, "newCategories")
		if err != nil {
			return nil, err
		}
		existing, err := q.GetBlogCategoryBySlug(ctx, slug)
		switch {
		case err == nil:
			ids = append(ids, existing.ID)
			continue
		case !errors.Is(err, sql.ErrNoRows):
			return nil, fmt.Errorf("looking up category %q: %w", slug, err)
		}
		created, err := q.CreateBlogCategory(ctx, store.CreateBlogCategoryParams{
			Name:      name,
			Slug:      slug,
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			return nil, fmt.Errorf("creating category %q: %w", slug, err)
		}
		ids = append(ids, created.ID)
	}
	return uniqueIDs(ids), nil
}

// resolveTags is resolveCategories for tags.
func resolveTags(ctx context.Context, q *store.Queries, ids []int64, fresh []TaxonomyInput, now time.Time) ([]int64, error) {
	ids = uniqueIDs(ids)
	if len(ids) > 0 {
		n, err := q.CountBlogTagsByIDs(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("checking tags: %w", err)
		}
		if n != int64(len(ids)) {
			return nil, NewValidationError("tagIds", "Unknown tag id")
		}
	}

	for _, in := range fresh {
		name, slug, err := taxonomyNameSlug(in, "newTags")
		if err != nil {
			return nil, err
		}
		existing, err := q.GetBlogTagBySlug(ctx, slug)
		switch {
		case err == nil:
			ids = append(ids, existing.ID)
			continue
		case !errors.Is(err, sql.ErrNoRows):
			return nil, fmt.Errorf("looking up tag %q: %w", slug, err)
		}
		created, err := q.CreateBlogTag(ctx, store.CreateBlogTagParams{
			Name:      name,
			Slug:      slug,
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			return nil, fmt.Errorf("creating tag %q: %w", slug, err)
		}
		ids = append(ids, created.ID)
	}
	return uniqueIDs(ids), nil
}

func taxonomyNameSlug(in TaxonomyInput, field string) (string, string, error) {
	name := strings.TrimSpace(in.Name)
	slug := strings.TrimSpace(in.Slug)
	if slug == "" {
		slug = util.Slugify(name)
	}
	if name == "" || !util.IsValidSlug(slug) {
		return "", "", NewValidationError(field, fmt.Sprintf("Invalid name or slug %q", in.Name))
	}
	return name, slug, nil
}

// linkPost connects a new post and increments every linked counter once.
func linkPost(ctx context.Context, q *store.Queries, postID int64, categoryIDs, tagIDs []int64) error {
	for _, id := range categoryIDs {
		if err := q.AddCategoryToPost(ctx, postID, id); err != nil {
			return fmt.Errorf("linking category %d: %w", id, err)
		}
	}
	for _, id := range tagIDs {
		if err := q.AddTagToPost(ctx, postID, id); err != nil {
			return fmt.Errorf("linking tag %d: %w", id, err)
		}
	}
	if _, err := q.IncrementBlogCategoryPostCounts(ctx, categoryIDs); err != nil {
		return fmt.Errorf("incrementing category counts: %w", err)
	}
	if _, err := q.IncrementBlogTagPostCounts(ctx, tagIDs); err != nil {
		return fmt.Errorf("incrementing tag counts: %w", err)
	}
	return nil
}

// relinkPost moves a post's associations to the given sets. The result is
// the same as clearing and relinking; only the difference is written.
func relinkPost(ctx context.Context, q *store.Queries, postID int64, categoryIDs, tagIDs []int64) error {
	currentCategories, err := q.GetCategoryIDsForPost(ctx, postID)
	if err != nil {
		return fmt.Errorf("loading post categories: %w", err)
	}
	currentTags, err := q.GetTagIDsForPost(ctx, postID)
	if err != nil {
		return fmt.Errorf("loading post tags: %w", err)
	}

	addedCategories, removedCategories := DiffIDs(currentCategories, categoryIDs)
	addedTags, removedTags := DiffIDs(currentTags, tagIDs)

	if _, err := q.RemoveCategoriesFromPost(ctx, postID, removedCategories); err != nil {
		return fmt.Errorf("unlinking categories: %w", err)
	}
	if _, err := q.RemoveTagsFromPost(ctx, postID, removedTags); err != nil {
		return fmt.Errorf("unlinking tags: %w", err)
	}
	if _, err := q.DecrementBlogCategoryPostCounts(ctx, removedCategories); err != nil {
		return fmt.Errorf("decrementing category counts: %w", err)
	}
	if _, err := q.DecrementBlogTagPostCounts(ctx, removedTags); err != nil {
		return fmt.Errorf("decrementing tag counts: %w", err)
	}
	return linkPost(ctx, q, postID, addedCategories, addedTags)
}

// ---- categories ----

// ListCategories returns every blog category ordered by name.
func (s *BlogService) ListCategories(ctx context.Context) ([]store.BlogCategory, error) {
	list, err := cached(ctx, s.categories, "all", func() (*[]store.BlogCategory, error) {
		cats, err := s.queries.ListBlogCategories(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing categories: %w", err)
		}
		return &cats, nil
	})
	if err != nil {
		return nil, err
	}
	return *list, nil
}

// CreateCategory creates an empty blog category.
func (s *BlogService) CreateCategory(ctx context.Context, in CategoryInput) (store.BlogCategory, error) {
	name, slug, err := taxonomyNameSlug(TaxonomyInput{Name: in.Name, Slug: in.Slug}, "name")
	if err != nil {
		return store.BlogCategory{}, err
	}

	var created store.BlogCategory
	err = store.ExecTx(ctx, s.db, func(q *store.Queries) error {
		n, err := q.BlogCategorySlugExistsExcluding(ctx, slug, 0)
		if err != nil {
			return fmt.Errorf("checking slug: %w", err)
		}
		if n > 0 {
			return NewValidationError("slug", "Slug already exists")
		}
		now := time.Now().UTC()
		created, err = q.CreateBlogCategory(ctx, store.CreateBlogCategoryParams{
			Name:        name,
			Slug:        slug,
			Description: strings.TrimSpace(in.Description),
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		return err
	})
	if err != nil {
		return store.BlogCategory{}, err
	}

	invalidate(ctx, s.cache, CachePrefixBlog)
	return created, nil
}

// UpdateCategory renames a blog category. Its post count is untouched.
func (s *BlogService) UpdateCategory(ctx context.Context, id int64, in CategoryInput) (store.BlogCategory, error) {
	name, slug, err := taxonomyNameSlug(TaxonomyInput{Name: in.Name, Slug: in.Slug}, "name")
	if err != nil {
		return store.BlogCategory{}, err
	}

	var updated store.BlogCategory
	err = store.ExecTx(ctx, s.db, func(q *store.Queries) error {
		if _, err := q.GetBlogCategoryByID(ctx, id); err != nil {
			return lookupErr("category", err)
		}
		n, err := q.BlogCategorySlugExistsExcluding(ctx, slug, id)
		if err != nil {
			return fmt.Errorf("checking slug: %w", err)
		}
		if n > 0 {
			return NewValidationError("slug", "Slug already exists")
		}
		updated, err = q.UpdateBlogCategory(ctx, store.UpdateBlogCategoryParams{
			Name:        name,
			Slug:        slug,
			Description: strings.TrimSpace(in.Description),
			UpdatedAt:   time.Now().UTC(),
			ID:          id,
		})
		return err
	})
	if err != nil {
		return store.BlogCategory{}, err
	}

	invalidate(ctx, s.cache, CachePrefixBlog)
	return updated, nil
}

// DeleteCategory removes a category. Posts lose the association.
func (s *BlogService) DeleteCategory(ctx context.Context, id int64) error {
	err := store.ExecTx(ctx, s.db, func(q *store.Queries) error {
		if _, err := q.GetBlogCategoryByID(ctx, id); err != nil {
			return lookupErr("category", err)
		}
		return q.DeleteBlogCategory(ctx, id)
	})
	if err != nil {
		return err
	}

	invalidate(ctx, s.cache, CachePrefixBlog)
	return nil
}

// ---- tags ----

// ListTags returns every blog tag ordered by name.
func (s *BlogService) ListTags(ctx context.Context) ([]store.BlogTag, error) {
	list, err := cached(ctx, s.tags, "all", func() (*[]store.BlogTag, error) {
		tags, err := s.queries.ListBlogTags(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing tags: %w", err)
		}
		return &tags, nil
	})
	if err != nil {
		return nil, err
	}
	return *list, nil
}

// CreateTag creates an unused blog tag.
func (s *BlogService) CreateTag(ctx context.Context, in TaxonomyInput) (store.BlogTag, error) {
	name, slug, err := taxonomyNameSlug(in, "name")
	if err != nil {
		return store.BlogTag{}, err
	}

	var created store.BlogTag
	err = store.ExecTx(ctx, s.db, func(q *store.Queries) error {
		n, err := q.BlogTagSlugExistsExcluding(ctx, slug, 0)
		if err != nil {
			return fmt.Errorf("checking slug: %w", err)
		}
		if n > 0 {
			return NewValidationError("slug", "Slug already exists")
		}
		now := time.Now().UTC()
		created, err = q.CreateBlogTag(ctx, store.CreateBlogTagParams{
			Name:      name,
			Slug:      slug,
			CreatedAt: now,
			UpdatedAt: now,
		})
		return err
	})
	if err != nil {
		return store.BlogTag{}, err
	}

	invalidate(ctx, s.cache, CachePrefixBlog)
	return created, nil
}

// UpdateTag renames a blog tag.
func (s *BlogService) UpdateTag(ctx context.Context, id int64, in TaxonomyInput) (store.BlogTag, error) {
	name, slug, err := taxonomyNameSlug(in, "name")
	if err != nil {
		return store.BlogTag{}, err
	}

	var updated store.BlogTag
	err = store.ExecTx(ctx, s.db, func(q *store.Queries) error {
		if _, err := q.GetBlogTagByID(ctx, id); err != nil {
			return lookupErr("tag", err)
		}
		n, err := q.BlogTagSlugExistsExcluding(ctx, slug, id)
		if err != nil {
			return fmt.Errorf("checking slug: %w", err)
		}
		if n > 0 {
			return NewValidationError("slug", "Slug already exists")
		}
		updated, err = q.UpdateBlogTag(ctx, store.UpdateBlogTagParams{
			Name:      name,
			Slug:      slug,
			UpdatedAt: time.Now().UTC(),
			ID:        id,
		})
		return err
	})
	if err != nil {
		return store.BlogTag{}, err
	}

	invalidate(ctx, s.cache, CachePrefixBlog)
	return updated, nil
}

// DeleteTag removes a tag. Posts lose the association.
func (s *BlogService) DeleteTag(ctx context.Context, id int64) error {
	err := store.ExecTx(ctx, s.db, func(q *store.Queries) error {
		if _, err := q.GetBlogTagByID(ctx, id); err != nil {
			return lookupErr("tag", err)
		}
		return q.DeleteBlogTag(ctx, id)
	})
	if err != nil {
		return err
	}

	invalidate(ctx, s.cache, CachePrefixBlog)
	return nil
}

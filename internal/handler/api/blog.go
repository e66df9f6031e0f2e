// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/studio-cms/internal/logging"
	"github.com/olegiv/studio-cms/internal/service"
)

// TaxonomyRequest names a category or tag to create while saving a post.
type TaxonomyRequest struct {
	Name string `json:"name" validate:"required,max=100"`
	Slug string `json:"slug" validate:"max=100"`
}

// PostRequest is the body of POST and PUT /api/admin/blog/posts.
type PostRequest struct {
	Title          string            `json:"title" validate:"required,max=200"`
	Slug           string            `json:"slug" validate:"max=200"`
	Excerpt        string            `json:"excerpt"`
	Content        string            `json:"content" validate:"required"`
	Image          string            `json:"image"`
	AuthorID       int64             `json:"authorId" validate:"required,gt=0"`
	IsPublished    bool              `json:"isPublished"`
	IsFeatured     bool              `json:"isFeatured"`
	SeoTitle       string            `json:"seoTitle" validate:"max=200"`
	SeoDescription string            `json:"seoDescription" validate:"max=500"`
	SeoKeywords    string            `json:"seoKeywords" validate:"max=500"`
	CategoryIDs    []int64           `json:"categoryIds" validate:"dive,gt=0"`
	NewCategories  []TaxonomyRequest `json:"newCategories" validate:"dive"`
	TagIDs         []int64           `json:"tagIds" validate:"dive,gt=0"`
	NewTags        []TaxonomyRequest `json:"newTags" validate:"dive"`
}

func (req PostRequest) input() service.PostInput {
	in := service.PostInput{
		Title:          req.Title,
		Slug:           req.Slug,
		Excerpt:        req.Excerpt,
		Content:        req.Content,
		Image:          req.Image,
		AuthorID:       req.AuthorID,
		IsPublished:    req.IsPublished,
		IsFeatured:     req.IsFeatured,
		SeoTitle:       req.SeoTitle,
		SeoDescription: req.SeoDescription,
		SeoKeywords:    req.SeoKeywords,
		CategoryIDs:    req.CategoryIDs,
		TagIDs:         req.TagIDs,
	}
	for _, c := range req.NewCategories {
		in.NewCategories = append(in.NewCategories, service.TaxonomyInput{Name: c.Name, Slug: c.Slug})
	}
	for _, t := range req.NewTags {
		in.NewTags = append(in.NewTags, service.TaxonomyInput{Name: t.Name, Slug: t.Slug})
	}
	return in
}

// BlogCategoryRequest is the body of the blog category endpoints.
type BlogCategoryRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Slug        string `json:"slug" validate:"max=100"`
	Description string `json:"description" validate:"max=1000"`
}

// postFilter reads the shared list filters from the query string.
func postFilter(w http.ResponseWriter, r *http.Request) (service.PostFilter, bool) {
	featured, ok := queryBool(w, r, "featured")
	if !ok {
		return service.PostFilter{}, false
	}
	q := r.URL.Query()
	return service.PostFilter{
		Featured:     featured,
		CategorySlug: q.Get("category"),
		TagSlug:      q.Get("tag"),
		Search:       q.Get("search"),
		Pagination:   parsePagination(r),
	}, true
}

func postResponses(posts []service.PostDetail) []PostResponse {
	out := make([]PostResponse, 0, len(posts))
	for i := range posts {
		out = append(out, postResponse(&posts[i]))
	}
	return out
}

// ============================================================================
// Public endpoints
// ============================================================================

// ListPublishedPosts handles GET /api/blog/posts.
func (h *Handler) ListPublishedPosts(w http.ResponseWriter, r *http.Request) {
	f, ok := postFilter(w, r)
	if !ok {
		return
	}
	list, err := h.blog.ListPublishedPosts(r.Context(), f)
	if err != nil {
		writeServiceError(w, r, err, "failed to list published posts")
		return
	}
	posts := postResponses(list.Posts)
	for i := range posts {
		posts[i].Author.Email = ""
	}
	WriteSuccess(w, posts, pageMeta(f.Pagination, list.Total))
}

// GetPublishedPost handles GET /api/blog/posts/{slug}.
func (h *Handler) GetPublishedPost(w http.ResponseWriter, r *http.Request) {
	detail, err := h.blog.GetPublishedPostBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeServiceError(w, r, err, "failed to get published post")
		return
	}
	resp, err := publicPostResponse(detail)
	if err != nil {
		WriteInternalError(w, r, "failed to render post content", err)
		return
	}
	WriteSuccess(w, resp, nil)
}

// ListBlogCategories handles GET /api/blog/categories and its admin twin.
func (h *Handler) ListBlogCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.blog.ListCategories(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "failed to list blog categories")
		return
	}
	out := make([]BlogCategoryResponse, 0, len(cats))
	for _, c := range cats {
		out = append(out, blogCategoryResponse(c))
	}
	WriteSuccess(w, out, nil)
}

// ListBlogTags handles GET /api/blog/tags and its admin twin.
func (h *Handler) ListBlogTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.blog.ListTags(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "failed to list blog tags")
		return
	}
	out := make([]BlogTagResponse, 0, len(tags))
	for _, t := range tags {
		out = append(out, blogTagResponse(t))
	}
	WriteSuccess(w, out, nil)
}

// ============================================================================
// Admin endpoints
// ============================================================================

// ListPosts handles GET /api/admin/blog/posts. Drafts are included unless
// ?published=true is given.
func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	f, ok := postFilter(w, r)
	if !ok {
		return
	}
	if f.Published, ok = queryBool(w, r, "published"); !ok {
		return
	}
	list, err := h.blog.ListPosts(r.Context(), f)
	if err != nil {
		writeServiceError(w, r, err, "failed to list posts")
		return
	}
	WriteSuccess(w, postResponses(list.Posts), pageMeta(f.Pagination, list.Total))
}

// GetPost handles GET /api/admin/blog/posts/{id}.
func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}
	detail, err := h.blog.GetPost(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, "failed to get post")
		return
	}
	WriteSuccess(w, postResponse(detail), nil)
}

// CreatePost handles POST /api/admin/blog/posts.
func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req PostRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	detail, err := h.blog.CreatePost(r.Context(), req.input())
	if err != nil {
		writeServiceError(w, r, err, "failed to create post")
		return
	}
	h.audit(r, logging.CategoryBlog, "Blog post created: "+detail.Post.Title, map[string]any{"post_id": detail.Post.ID})
	WriteCreated(w, postResponse(detail))
}

// UpdatePost handles PUT /api/admin/blog/posts/{id}.
func (h *Handler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}
	var req PostRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	detail, err := h.blog.UpdatePost(r.Context(), id, req.input())
	if err != nil {
		writeServiceError(w, r, err, "failed to update post")
		return
	}
	h.audit(r, logging.CategoryBlog, "Blog post updated: "+detail.Post.Title, map[string]any{"post_id": id})
	WriteSuccess(w, postResponse(detail), nil)
}

// DeletePost handles DELETE /api/admin/blog/posts/{id}.
func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}
	if err := h.blog.DeletePost(r.Context(), id); err != nil {
		writeServiceError(w, r, err, "failed to delete post")
		return
	}
	h.audit(r, logging.CategoryBlog, "Blog post deleted", map[string]any{"post_id": id})
	WriteNoContent(w)
}

// CreateBlogCategory handles POST /api/admin/blog/categories.
func (h *Handler) CreateBlogCategory(w http.ResponseWriter, r *http.Request) {
	var req BlogCategoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	cat, err := h.blog.CreateCategory(r.Context(), service.CategoryInput{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
	})
	if err != nil {
		writeServiceError(w, r, err, "failed to create blog category")
		return
	}
	WriteCreated(w, blogCategoryResponse(cat))
}

// UpdateBlogCategory handles PUT /api/admin/blog/categories/{id}.
func (h *Handler) UpdateBlogCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}
	var req BlogCategoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	cat, err := h.blog.UpdateCategory(r.Context(), id, service.CategoryInput{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
	})
	if err != nil {
		writeServiceError(w, r, err, "failed to update blog category")
		return
	}
	WriteSuccess(w, blogCategoryResponse(cat), nil)
}

// DeleteBlogCategory handles DELETE /api/admin/blog/categories/{id}.
func (h *Handler) DeleteBlogCategory(w http.ResponseWriter, r *http.Request) {
	deleteByID(w, r, h.blog.DeleteCategory, "failed to delete blog category")
}

// CreateBlogTag handles POST /api/admin/blog/tags.
func (h *Handler) CreateBlogTag(w http.ResponseWriter, r *http.Request) {
	var req TaxonomyRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	tag, err := h.blog.CreateTag(r.Context(), service.TaxonomyInput{Name: req.Name, Slug: req.Slug})
	if err != nil {
		writeServiceError(w, r, err, "failed to create blog tag")
		return
	}
	WriteCreated(w, blogTagResponse(tag))
}

// UpdateBlogTag handles PUT /api/admin/blog/tags/{id}.
func (h *Handler) UpdateBlogTag(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}
	var req TaxonomyRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	tag, err := h.blog.UpdateTag(r.Context(), id, service.TaxonomyInput{Name: req.Name, Slug: req.Slug})
	if err != nil {
		writeServiceError(w, r, err, "failed to update blog tag")
		return
	}
	WriteSuccess(w, blogTagResponse(tag), nil)
}

// DeleteBlogTag handles DELETE /api/admin/blog/tags/{id}.
func (h *Handler) DeleteBlogTag(w http.ResponseWriter, r *http.Request) {
	deleteByID(w, r, h.blog.DeleteTag, "failed to delete blog tag")
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/studio-cms/internal/logging"
	"github.com/olegiv/studio-cms/internal/service"
)

// ProjectRequest is the body of POST and PUT /api/admin/projects.
type ProjectRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Slug        string `json:"slug" validate:"max=200"`
	Description string `json:"description"`
	Content     string `json:"content"`
	Image       string `json:"image"`
	Link        string `json:"link" validate:"omitempty,url"`
	Client      string `json:"client" validate:"max=200"`
	Role        string `json:"role" validate:"max=200"`
	Year        string `json:"year" validate:"max=10"`
	CategoryID  *int64 `json:"categoryId" validate:"omitempty,gt=0"`
	IsActive    *bool  `json:"isActive"`
	IsFeatured  bool   `json:"isFeatured"`
	SortOrder   int64  `json:"sortOrder"`
}

func (req ProjectRequest) input() service.ProjectInput {
	return service.ProjectInput{
		Title:       req.Title,
		Slug:        req.Slug,
		Description: req.Description,
		Content:     req.Content,
		Image:       req.Image,
		Link:        req.Link,
		Client:      req.Client,
		Role:        req.Role,
		Year:        req.Year,
		CategoryID:  req.CategoryID,
		IsActive:    boolValue(req.IsActive, true),
		IsFeatured:  req.IsFeatured,
		SortOrder:   req.SortOrder,
	}
}

// ProjectCategoryRequest is the body of POST /api/admin/categories.
type ProjectCategoryRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// RenameCategoryRequest is the body of PATCH /api/admin/categories/{id}.
type RenameCategoryRequest struct {
	OldName string `json:"oldName" validate:"required"`
	NewName string `json:"newName" validate:"required,max=100"`
}

// CategoryDeleteResponse reports what happened to the deleted category's
// projects.
type CategoryDeleteResponse struct {
	Deleted         bool  `json:"deleted"`
	Reassigned      int64 `json:"reassigned"`
	ReassignedTo    int64 `json:"reassignedTo,omitempty"`
	CreatedFallback bool  `json:"createdFallback"`
}

// projectFilter reads ?featured and ?category.
func projectFilter(w http.ResponseWriter, r *http.Request) (service.ProjectFilter, bool) {
	featured, ok := queryBool(w, r, "featured")
	if !ok {
		return service.ProjectFilter{}, false
	}
	f := service.ProjectFilter{Featured: featured, Pagination: parsePagination(r)}
	if raw := r.URL.Query().Get("category"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			WriteBadRequest(w, "Invalid category", map[string]string{"category": "Must be a category id"})
			return service.ProjectFilter{}, false
		}
		f.CategoryID = id
	}
	return f, true
}

// ============================================================================
// Public endpoints
// ============================================================================

// ListActiveProjects handles GET /api/projects.
func (h *Handler) ListActiveProjects(w http.ResponseWriter, r *http.Request) {
	f, ok := projectFilter(w, r)
	if !ok {
		return
	}
	list, err := h.projects.ListActiveProjects(r.Context(), f)
	if err != nil {
		writeServiceError(w, r, err, "failed to list projects")
		return
	}
	WriteSuccess(w, projectResponses(list.Projects), pageMeta(f.Pagination, list.Total))
}

// GetActiveProject handles GET /api/projects/{slug}.
func (h *Handler) GetActiveProject(w http.ResponseWriter, r *http.Request) {
	p, err := h.projects.GetActiveProjectBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeServiceError(w, r, err, "failed to get project")
		return
	}
	WriteSuccess(w, projectResponse(*p), nil)
}

// ============================================================================
// Admin endpoints
// ============================================================================

// ListProjects handles GET /api/admin/projects.
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	f, ok := projectFilter(w, r)
	if !ok {
		return
	}
	if f.Active, ok = queryBool(w, r, "active"); !ok {
		return
	}
	list, err := h.projects.ListProjects(r.Context(), f)
	if err != nil {
		writeServiceError(w, r, err, "failed to list projects")
		return
	}
	WriteSuccess(w, projectResponses(list.Projects), pageMeta(f.Pagination, list.Total))
}

// GetProject handles GET /api/admin/projects/{id}.
func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}
	p, err := h.projects.GetProject(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, "failed to get project")
		return
	}
	WriteSuccess(w, projectResponse(p), nil)
}

// CreateProject handles POST /api/admin/projects.
func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req ProjectRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	p, err := h.projects.CreateProject(r.Context(), req.input())
	if err != nil {
		writeServiceError(w, r, err, "failed to create project")
		return
	}
	h.audit(r, logging.CategoryProject, "Project created: "+p.Title, map[string]any{"project_id": p.ID})
	WriteCreated(w, projectResponse(p))
}

// UpdateProject handles PUT /api/admin/projects/{id}.
func (h *Handler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}
	var req ProjectRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	p, err := h.projects.UpdateProject(r.Context(), id, req.input())
	if err != nil {
		writeServiceError(w, r, err, "failed to update project")
		return
	}
	h.audit(r, logging.CategoryProject, "Project updated: "+p.Title, map[string]any{"project_id": id})
	WriteSuccess(w, projectResponse(p), nil)
}

// DeleteProject handles DELETE /api/admin/projects/{id}.
func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	deleteByID(w, r, h.projects.DeleteProject, "failed to delete project")
}

// ListProjectCategories handles GET /api/admin/categories.
func (h *Handler) ListProjectCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.projects.ListCategories(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "failed to list project categories")
		return
	}
	out := make([]ProjectCategoryResponse, 0, len(cats))
	for _, c := range cats {
		out = append(out, projectCategoryResponse(c))
	}
	WriteSuccess(w, out, nil)
}

// CreateProjectCategory handles POST /api/admin/categories.
func (h *Handler) CreateProjectCategory(w http.ResponseWriter, r *http.Request) {
	var req ProjectCategoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	cat, err := h.projects.CreateCategory(r.Context(), req.Name)
	if err != nil {
		writeServiceError(w, r, err, "failed to create project category")
		return
	}
	WriteCreated(w, projectCategoryResponse(cat))
}

// RenameProjectCategory handles PATCH /api/admin/categories/{id}. The
// stored name must equal oldName exactly.
func (h *Handler) RenameProjectCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}
	var req RenameCategoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	cat, err := h.projects.RenameCategory(r.Context(), id, req.OldName, req.NewName)
	if err != nil {
		writeServiceError(w, r, err, "failed to rename project category")
		return
	}
	h.audit(r, logging.CategoryProject, "Project category renamed", map[string]any{
		"category_id": id,
		"old_name":    req.OldName,
		"new_name":    cat.Name,
	})
	WriteSuccess(w, projectCategoryResponse(cat), nil)
}

// DeleteProjectCategory handles DELETE /api/admin/categories/{id}. A
// category still used by projects is only deleted with
// ?moveToUncategorized=true; otherwise the response is 409.
func (h *Handler) DeleteProjectCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}
	move, ok := queryBool(w, r, "moveToUncategorized")
	if !ok {
		return
	}
	res, err := h.projects.DeleteCategory(r.Context(), id, boolValue(move, false))
	if err != nil {
		writeServiceError(w, r, err, "failed to delete project category")
		return
	}
	h.audit(r, logging.CategoryProject, "Project category deleted", map[string]any{
		"category_id": id,
		"reassigned":  res.Reassigned,
	})
	WriteSuccess(w, CategoryDeleteResponse{
		Deleted:         true,
		Reassigned:      res.Reassigned,
		ReassignedTo:    res.ReassignedTo,
		CreatedFallback: res.CreatedFallback,
	}, nil)
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/olegiv/studio-cms/internal/logging"
	"github.com/olegiv/studio-cms/internal/middleware"
	"github.com/olegiv/studio-cms/internal/service"
)

// CreateUserRequest is the body of POST /api/admin/users.
type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Name     string `json:"name" validate:"required,max=100"`
	Role     string `json:"role" validate:"required,oneof=admin editor"`
	Password string `json:"password" validate:"required"`
	IsActive *bool  `json:"isActive"`
}

// UpdateUserRequest is the body of PUT /api/admin/users/{id}. An empty
// password keeps the current one.
type UpdateUserRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Name     string `json:"name" validate:"required,max=100"`
	Role     string `json:"role" validate:"required,oneof=admin editor"`
	Password string `json:"password"`
	IsActive *bool  `json:"isActive"`
}

// ListUsers handles GET /api/admin/users.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	p := parsePagination(r)
	list, err := h.users.ListUsers(r.Context(), p)
	if err != nil {
		writeServiceError(w, r, err, "failed to list users")
		return
	}
	out := make([]UserResponse, 0, len(list.Users))
	for _, u := range list.Users {
		out = append(out, userResponse(u))
	}
	WriteSuccess(w, out, pageMeta(p, list.Total))
}

// GetUser handles GET /api/admin/users/{id}.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}
	u, err := h.users.GetUser(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, "failed to get user")
		return
	}
	WriteSuccess(w, userResponse(u), nil)
}

// CreateUser handles POST /api/admin/users.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	u, err := h.users.CreateUser(r.Context(), service.UserInput{
		Email:    req.Email,
		Name:     req.Name,
		Role:     req.Role,
		IsActive: boolValue(req.IsActive, true),
		Password: req.Password,
	})
	if err != nil {
		writeServiceError(w, r, err, "failed to create user")
		return
	}
	h.audit(r, logging.CategoryUser, "User created: "+u.Email, map[string]any{"target_user_id": u.ID, "role": u.Role})
	WriteCreated(w, userResponse(u))
}

// UpdateUser handles PUT /api/admin/users/{id}.
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}
	var req UpdateUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	u, err := h.users.UpdateUser(r.Context(), id, service.UserInput{
		Email:    req.Email,
		Name:     req.Name,
		Role:     req.Role,
		IsActive: boolValue(req.IsActive, true),
		Password: req.Password,
	})
	if err != nil {
		writeServiceError(w, r, err, "failed to update user")
		return
	}
	h.audit(r, logging.CategoryUser, "User updated: "+u.Email, map[string]any{"target_user_id": id, "role": u.Role})
	WriteSuccess(w, userResponse(u), nil)
}

// DeleteUser handles DELETE /api/admin/users/{id}.
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}
	if err := h.users.DeleteUser(r.Context(), middleware.GetUserID(r), id); err != nil {
		writeServiceError(w, r, err, "failed to delete user")
		return
	}
	h.audit(r, logging.CategoryUser, "User deleted", map[string]any{"target_user_id": id})
	WriteNoContent(w)
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api provides the JSON HTTP handlers for the public site and the
// admin panel.
package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/google/uuid"

	"github.com/olegiv/studio-cms/internal/auth"
	"github.com/olegiv/studio-cms/internal/cache"
	"github.com/olegiv/studio-cms/internal/middleware"
	"github.com/olegiv/studio-cms/internal/scheduler"
	"github.com/olegiv/studio-cms/internal/service"
	"github.com/olegiv/studio-cms/internal/version"
)

// JobRunner lists and triggers background jobs.
type JobRunner interface {
	Jobs() []scheduler.JobInfo
	Trigger(name string) error
}

// Config holds the dependencies shared by all handlers. Cache, Tokens,
// LoginProtection and Jobs may be nil.
type Config struct {
	DB              *sql.DB
	Sessions        *scs.SessionManager
	Tokens          *auth.TokenIssuer
	LoginProtection *middleware.LoginProtection
	Cache           cache.Cache
	CacheTTL        time.Duration
	Jobs            JobRunner
	Version         version.Info
}

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	db              *sql.DB
	sessions        *scs.SessionManager
	tokens          *auth.TokenIssuer
	loginProtection *middleware.LoginProtection
	cache           cache.Cache
	jobs            JobRunner
	version         version.Info
	startTime       time.Time

	blog        *service.BlogService
	sliders     *service.HeroSliderService
	projects    *service.ProjectService
	content     *service.ContentService
	users       *service.UserService
	events      *service.EventService
	maintenance *service.MaintenanceService
}

// NewHandler creates a new API handler.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		db:              cfg.DB,
		sessions:        cfg.Sessions,
		tokens:          cfg.Tokens,
		loginProtection: cfg.LoginProtection,
		cache:           cfg.Cache,
		jobs:            cfg.Jobs,
		version:         cfg.Version,
		startTime:       time.Now(),

		blog:        service.NewBlogService(cfg.DB, cfg.Cache, cfg.CacheTTL),
		sliders:     service.NewHeroSliderService(cfg.DB, cfg.Cache, cfg.CacheTTL),
		projects:    service.NewProjectService(cfg.DB, cfg.Cache, cfg.CacheTTL),
		content:     service.NewContentService(cfg.DB, cfg.Cache, cfg.CacheTTL),
		users:       service.NewUserService(cfg.DB, cfg.Cache),
		events:      service.NewEventService(cfg.DB),
		maintenance: service.NewMaintenanceService(cfg.DB, cfg.Cache),
	}
}

// Maintenance exposes the maintenance service so the scheduler can share it.
func (h *Handler) Maintenance() *service.MaintenanceService {
	return h.maintenance
}

// Events exposes the event service so the scheduler can share it.
func (h *Handler) Events() *service.EventService {
	return h.events
}

// SetJobs attaches the job runner once the scheduler has been built from
// the services above.
func (h *Handler) SetJobs(jobs JobRunner) {
	h.jobs = jobs
}

// Response is the standard API response wrapper.
type Response struct {
	Data any   `json:"data"`
	Meta *Meta `json:"meta,omitempty"`
}

// Meta contains pagination metadata.
type Meta struct {
	Total   int64 `json:"total"`
	Page    int   `json:"page"`
	PerPage int   `json:"perPage"`
	Pages   int   `json:"pages"`
}

func pageMeta(p service.Pagination, total int64) *Meta {
	p = p.Normalize()
	return &Meta{
		Total:   total,
		Page:    p.Page,
		PerPage: p.PerPage,
		Pages:   p.Pages(total),
	}
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// WriteSuccess writes a 200 response.
func WriteSuccess(w http.ResponseWriter, data any, meta *Meta) {
	WriteJSON(w, http.StatusOK, Response{Data: data, Meta: meta})
}

// WriteCreated writes a 201 Created response.
func WriteCreated(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusCreated, Response{Data: data})
}

// WriteNoContent writes a 204 response.
func WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// WriteBadRequest writes a 400 response.
func WriteBadRequest(w http.ResponseWriter, message string, details map[string]string) {
	middleware.WriteAPIError(w, http.StatusBadRequest, middleware.CodeValidation, message, details)
}

// WriteNotFound writes a 404 response.
func WriteNotFound(w http.ResponseWriter, message string) {
	middleware.WriteAPIError(w, http.StatusNotFound, middleware.CodeNotFound, message, nil)
}

// WriteUnauthorized writes a 401 response.
func WriteUnauthorized(w http.ResponseWriter, message string) {
	middleware.WriteAPIError(w, http.StatusUnauthorized, middleware.CodeUnauthorized, message, nil)
}

// WriteInternalError logs err under a fresh reference id and writes a 500
// response carrying only that id.
func WriteInternalError(w http.ResponseWriter, r *http.Request, logMsg string, err error) {
	ref := uuid.NewString()
	slog.Error(logMsg, "error", err, "ref", ref, "method", r.Method, "path", r.URL.Path)
	middleware.WriteAPIError(w, http.StatusInternalServerError, middleware.CodeInternal,
		"Internal server error", map[string]string{"reference": ref})
}

// writeServiceError maps a service error onto its HTTP status.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, logMsg string) {
	var verr *service.ValidationError
	var conflict *service.ConflictError
	switch {
	case errors.As(err, &verr):
		WriteBadRequest(w, verr.Error(), verr.Fields)
	case errors.Is(err, service.ErrNotFound):
		WriteNotFound(w, capitalizeFirst(err.Error()))
	case errors.As(err, &conflict):
		middleware.WriteAPIError(w, http.StatusConflict, middleware.CodeConflict, conflict.Message, conflict.Details)
	case errors.Is(err, service.ErrInvalidCredentials):
		WriteUnauthorized(w, "Invalid email or password")
	case errors.Is(err, context.DeadlineExceeded):
		middleware.WriteAPIError(w, http.StatusServiceUnavailable, middleware.CodeTimeout, "Request timed out", nil)
	default:
		WriteInternalError(w, r, logMsg, err)
	}
}

// capitalizeFirst returns s with the first letter capitalized.
func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/studio-cms/internal/cache"
	"github.com/olegiv/studio-cms/internal/logging"
	"github.com/olegiv/studio-cms/internal/middleware"
	"github.com/olegiv/studio-cms/internal/scheduler"
	"github.com/olegiv/studio-cms/internal/service"
)

// healthCheckTimeout bounds the database ping in GET /health.
const healthCheckTimeout = 2 * time.Second

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status    string            `json:"status"`
	Version   string            `json:"version"`
	Commit    string            `json:"commit"`
	Uptime    string            `json:"uptime"`
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
	Cache     *cache.Stats      `json:"cache,omitempty"`
}

// Health handles GET /health. A failed database ping reports "degraded"
// with 503.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	resp := HealthResponse{
		Status:    "healthy",
		Version:   h.version.Version,
		Commit:    h.version.GitCommit,
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Timestamp: time.Now().UTC(),
		Checks:    map[string]string{"database": "healthy"},
	}
	status := http.StatusOK
	if err := h.db.PingContext(ctx); err != nil {
		slog.Error("health check database ping failed", "error", err)
		resp.Status = "degraded"
		resp.Checks["database"] = "unhealthy"
		status = http.StatusServiceUnavailable
	}

	// Cache failures are reported but do not degrade the status.
	if p, ok := h.cache.(cache.Pinger); ok {
		resp.Checks["cache"] = "healthy"
		if err := p.Ping(ctx); err != nil {
			slog.Warn("health check cache ping failed", "category", logging.CategoryCache, "error", err)
			resp.Checks["cache"] = "unhealthy"
		}
	}
	if sp, ok := h.cache.(cache.StatsProvider); ok {
		stats := sp.Stats()
		resp.Cache = &stats
	}
	WriteJSON(w, status, resp)
}

// DashboardStats handles GET /api/admin/dashboard.
func (h *Handler) DashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.maintenance.DashboardStats(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "failed to load dashboard stats")
		return
	}
	WriteSuccess(w, DashboardResponse{
		TotalPosts:        stats.TotalPosts,
		PublishedPosts:    stats.PublishedPosts,
		TotalProjects:     stats.TotalProjects,
		TotalClients:      stats.TotalClients,
		TotalTestimonials: stats.TotalTestimonials,
		TotalSubmissions:  stats.TotalSubmissions,
		UnreadSubmissions: stats.UnreadSubmissions,
		TotalUsers:        stats.TotalUsers,
	}, nil)
}

// ListEvents handles GET /api/admin/events with optional ?level and
// ?category filters.
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	level := q.Get("level")
	switch level {
	case "", logging.EventLevelInfo, logging.EventLevelWarning, logging.EventLevelError:
	default:
		WriteBadRequest(w, "Invalid level", map[string]string{"level": "Must be one of: info warning error"})
		return
	}

	f := service.EventFilter{Level: level, Category: q.Get("category"), Pagination: parsePagination(r)}
	list, err := h.events.ListEvents(r.Context(), f)
	if err != nil {
		writeServiceError(w, r, err, "failed to list events")
		return
	}
	out := make([]EventResponse, 0, len(list.Events))
	for _, e := range list.Events {
		out = append(out, eventResponse(e))
	}
	WriteSuccess(w, out, pageMeta(f.Pagination, list.Total))
}

// Recount handles POST /api/admin/maintenance/recount.
func (h *Handler) Recount(w http.ResponseWriter, r *http.Request) {
	res, err := h.maintenance.Recount(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "failed to recount counters")
		return
	}
	h.audit(r, logging.CategorySystem, "Counters recounted", map[string]any{"repaired": res.Total()})
	WriteSuccess(w, res, nil)
}

// ListJobs handles GET /api/admin/jobs.
func (h *Handler) ListJobs(w http.ResponseWriter, _ *http.Request) {
	if h.jobs == nil {
		WriteNotFound(w, "Scheduler is disabled")
		return
	}
	WriteSuccess(w, h.jobs.Jobs(), nil)
}

// RunJob handles POST /api/admin/jobs/{name}/run. The job runs before the
// response is written.
func (h *Handler) RunJob(w http.ResponseWriter, r *http.Request) {
	if h.jobs == nil {
		WriteNotFound(w, "Scheduler is disabled")
		return
	}
	name := chi.URLParam(r, "name")
	err := h.jobs.Trigger(name)
	if errors.Is(err, scheduler.ErrJobNotFound) {
		WriteNotFound(w, "Job not found")
		return
	}

	meta := map[string]any{"job": name}
	if err != nil {
		meta["error"] = err.Error()
	}
	h.audit(r, logging.CategoryScheduler, "Job triggered manually", meta)

	if err != nil {
		middleware.WriteAPIError(w, http.StatusInternalServerError, middleware.CodeInternal,
			"Job failed", map[string]string{"job": name, "reason": err.Error()})
		return
	}
	for _, j := range h.jobs.Jobs() {
		if j.Name == name {
			WriteSuccess(w, j, nil)
			return
		}
	}
	WriteNoContent(w)
}

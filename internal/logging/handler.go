// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package logging provides a slog handler that mirrors warnings and errors
// into the events table, where admins can read them through the API.
package logging

import (
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/olegiv/studio-cms/internal/store"
)

// Event levels as stored in the events table.
const (
	EventLevelInfo    = "info"
	EventLevelWarning = "warning"
	EventLevelError   = "error"
)

// Event categories.
const (
	CategoryAuth       = "auth"
	CategoryBlog       = "blog"
	CategoryProject    = "project"
	CategoryHeroSlider = "hero_slider"
	CategoryUser       = "user"
	CategorySettings   = "settings"
	CategoryCache      = "cache"
	CategoryScheduler  = "scheduler"
	CategorySystem     = "system"
)

// writeTimeout bounds how long a log call may block on the database.
const writeTimeout = 2 * time.Second

// NewLogger builds the process logger: a text handler on w at level, with
// records at WARN and above also persisted through db when db is non-nil.
func NewLogger(w io.Writer, level slog.Level, db *sql.DB) *slog.Logger {
	var h slog.Handler = slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	if db != nil {
		h = NewEventLogHandler(h, db)
	}
	return slog.New(h)
}

// EventLogHandler is a slog.Handler that wraps another handler and also writes
// records at or above its level to the events table.
type EventLogHandler struct {
	inner   slog.Handler
	queries *store.Queries
	level   slog.Level
	attrs   []slog.Attr
}

// NewEventLogHandler creates a handler that persists WARN and above.
func NewEventLogHandler(inner slog.Handler, db *sql.DB) *EventLogHandler {
	return NewEventLogHandlerWithLevel(inner, db, slog.LevelWarn)
}

// NewEventLogHandlerWithLevel creates a handler with a custom minimum level.
func NewEventLogHandlerWithLevel(inner slog.Handler, db *sql.DB, level slog.Level) *EventLogHandler {
	return &EventLogHandler{
		inner:   inner,
		queries: store.New(db),
		level:   level,
	}
}

// Enabled implements slog.Handler.
func (h *EventLogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *EventLogHandler) Handle(ctx context.Context, r slog.Record) error {
	if err := h.inner.Handle(ctx, r); err != nil {
		return err
	}

	if r.Level >= h.level {
		h.writeToEventLog(r)
	}

	return nil
}

// WithAttrs implements slog.Handler.
func (h *EventLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &EventLogHandler{
		inner:   h.inner.WithAttrs(attrs),
		queries: h.queries,
		level:   h.level,
		attrs:   merged,
	}
}

// WithGroup implements slog.Handler.
func (h *EventLogHandler) WithGroup(name string) slog.Handler {
	return &EventLogHandler{
		inner:   h.inner.WithGroup(name),
		queries: h.queries,
		level:   h.level,
		attrs:   h.attrs,
	}
}

// writeToEventLog persists r. It uses its own context so that a cancelled
// request still gets its failure recorded.
func (h *EventLogHandler) writeToEventLog(r slog.Record) {
	all := h.collectAttrs(r)

	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	createdAt := r.Time
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, _ = h.queries.CreateEvent(ctx, store.CreateEventParams{
		Level:     eventLevel(r.Level),
		Category:  extractCategory(r.Message, all),
		Message:   r.Message,
		Metadata:  extractMetadata(all),
		CreatedAt: createdAt.UTC(),
	})
}

func (h *EventLogHandler) collectAttrs(r slog.Record) []slog.Attr {
	all := make([]slog.Attr, 0, len(h.attrs)+r.NumAttrs())
	all = append(all, h.attrs...)
	r.Attrs(func(a slog.Attr) bool {
		all = append(all, a)
		return true
	})
	return all
}

func eventLevel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return EventLevelError
	case level >= slog.LevelWarn:
		return EventLevelWarning
	default:
		return EventLevelInfo
	}
}

// extractCategory uses an explicit "category" attribute when present and
// otherwise infers one from the message.
func extractCategory(message string, attrs []slog.Attr) string {
	for _, a := range attrs {
		if a.Key == "category" {
			if c := a.Value.String(); c != "" {
				return c
			}
		}
	}

	msg := strings.ToLower(message)
	switch {
	case strings.Contains(msg, "auth") || strings.Contains(msg, "login") ||
		strings.Contains(msg, "logout") || strings.Contains(msg, "access denied"):
		return CategoryAuth
	case strings.Contains(msg, "hero"):
		return CategoryHeroSlider
	case strings.Contains(msg, "post") || strings.Contains(msg, "blog"):
		return CategoryBlog
	case strings.Contains(msg, "project"):
		return CategoryProject
	case strings.Contains(msg, "user"):
		return CategoryUser
	case strings.Contains(msg, "setting") || strings.Contains(msg, "config"):
		return CategorySettings
	case strings.Contains(msg, "cache"):
		return CategoryCache
	case strings.Contains(msg, "job") || strings.Contains(msg, "recount"):
		return CategoryScheduler
	default:
		return CategorySystem
	}
}

// extractMetadata renders every attribute except category as a flat JSON
// object of strings.
func extractMetadata(attrs []slog.Attr) string {
	m := make(map[string]string, len(attrs))
	for _, a := range attrs {
		if a.Key == "category" || a.Key == "" {
			continue
		}
		m[a.Key] = a.Value.Resolve().String()
	}
	if len(m) == 0 {
		return "{}"
	}
	b, err := json.Marshal(m)
	if err != nil {
		return "{}"
	}
	return string(b)
}

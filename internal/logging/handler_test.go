// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package logging

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/olegiv/studio-cms/internal/store"
	"github.com/olegiv/studio-cms/internal/testutil"
)

// discardHandler is a slog.Handler that discards all logs.
type discardHandler struct{}

func (h discardHandler) Enabled(context.Context, slog.Level) bool  { return true }
func (h discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (h discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return h }
func (h discardHandler) WithGroup(string) slog.Handler             { return h }

func listEvents(t *testing.T, db *sql.DB) []store.Event {
	t.Helper()
	events, err := store.New(db).ListEvents(context.Background(), store.ListEventsParams{Limit: 10})
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	return events
}

func TestEventLogHandler_Levels(t *testing.T) {
	tests := []struct {
		name      string
		log       func(*slog.Logger)
		wantLevel string
	}{
		{"error", func(l *slog.Logger) { l.Error("database connection failed", "host", "localhost") }, EventLevelError},
		{"warn", func(l *slog.Logger) { l.Warn("slow query detected", "duration_ms", 5000) }, EventLevelWarning},
		{"info", func(l *slog.Logger) { l.Info("server started", "port", 8080) }, ""},
		{"debug", func(l *slog.Logger) { l.Debug("processing request") }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, cleanup := testutil.TestDB(t)
			defer cleanup()

			tt.log(slog.New(NewEventLogHandler(discardHandler{}, db)))

			events := listEvents(t, db)
			if tt.wantLevel == "" {
				if len(events) != 0 {
					t.Errorf("expected 0 events, got %d", len(events))
				}
				return
			}
			if len(events) != 1 {
				t.Fatalf("expected 1 event, got %d", len(events))
			}
			if events[0].Level != tt.wantLevel {
				t.Errorf("Level = %q, want %q", events[0].Level, tt.wantLevel)
			}
		})
	}
}

func TestEventLogHandler_CustomLevel(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	logger := slog.New(NewEventLogHandlerWithLevel(discardHandler{}, db, slog.LevelInfo))
	logger.Info("server started", "port", 8080)

	if events := listEvents(t, db); len(events) != 1 {
		t.Errorf("expected 1 event with custom INFO level, got %d", len(events))
	}
}

func TestEventLogHandler_MetadataIncludesBoundAttrs(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	logger := slog.New(NewEventLogHandler(discardHandler{}, db)).With("request_id", "abc123")
	logger.Error("failed to save post", "category", CategoryBlog, "post_id", 7)

	events := listEvents(t, db)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Category != CategoryBlog {
		t.Errorf("Category = %q, want %q", events[0].Category, CategoryBlog)
	}

	var meta map[string]string
	if err := json.Unmarshal([]byte(events[0].Metadata), &meta); err != nil {
		t.Fatalf("metadata is not JSON: %v (%s)", err, events[0].Metadata)
	}
	if meta["request_id"] != "abc123" {
		t.Errorf("request_id = %q, want abc123", meta["request_id"])
	}
	if meta["post_id"] != "7" {
		t.Errorf("post_id = %q, want 7", meta["post_id"])
	}
	if _, ok := meta["category"]; ok {
		t.Error("category should not be duplicated into metadata")
	}
}

func TestExtractCategory(t *testing.T) {
	tests := []struct {
		message string
		attrs   []slog.Attr
		want    string
	}{
		{"login attempt blocked", nil, CategoryAuth},
		{"access denied", nil, CategoryAuth},
		{"failed to replace hero slider", nil, CategoryHeroSlider},
		{"failed to create post", nil, CategoryBlog},
		{"project category delete refused", nil, CategoryProject},
		{"user deleted", nil, CategoryUser},
		{"settings updated", nil, CategorySettings},
		{"cache unavailable", nil, CategoryCache},
		{"recount job finished", nil, CategoryScheduler},
		{"disk nearly full", nil, CategorySystem},
		{"anything", []slog.Attr{slog.String("category", "custom")}, "custom"},
	}
	for _, tt := range tests {
		if got := extractCategory(tt.message, tt.attrs); got != tt.want {
			t.Errorf("extractCategory(%q) = %q, want %q", tt.message, got, tt.want)
		}
	}
}

func TestExtractMetadata_Escaping(t *testing.T) {
	got := extractMetadata([]slog.Attr{slog.String("q", "say \"hi\"\n")})

	var meta map[string]string
	if err := json.Unmarshal([]byte(got), &meta); err != nil {
		t.Fatalf("invalid JSON %q: %v", got, err)
	}
	if meta["q"] != "say \"hi\"\n" {
		t.Errorf("q = %q", meta["q"])
	}
	if extractMetadata(nil) != "{}" {
		t.Errorf("empty metadata = %q, want {}", extractMetadata(nil))
	}
}

func TestNewLogger_WithoutDB(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelInfo, nil)
	logger.Debug("hidden")
	logger.Info("visible", "k", "v")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug record should be filtered")
	}
	if !strings.Contains(out, "msg=visible") || !strings.Contains(out, "k=v") {
		t.Errorf("unexpected output: %s", out)
	}
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/olegiv/studio-cms/internal/logging"
	"github.com/olegiv/studio-cms/internal/store"
	"github.com/olegiv/studio-cms/internal/testutil"
)

func TestLogEvent(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	svc := NewEventService(db)
	ctx := context.Background()

	err := svc.LogEvent(ctx, logging.EventLevelInfo, logging.CategoryBlog, "Post created", 123, "192.168.1.100", map[string]any{
		"post_id": 7,
	})
	if err != nil {
		t.Fatalf("LogEvent failed: %v", err)
	}

	var level, category, message, metadata string
	err = db.QueryRow("SELECT level, category, message, metadata FROM events").Scan(&level, &category, &message, &metadata)
	if err != nil {
		t.Fatalf("failed to read event: %v", err)
	}

	if level != "info" {
		t.Errorf("level = %q, want %q", level, "info")
	}
	if category != "blog" {
		t.Errorf("category = %q, want %q", category, "blog")
	}
	if message != "Post created" {
		t.Errorf("message = %q, want %q", message, "Post created")
	}
	want := `{"ip":"192.168.1.100","post_id":7,"user_id":123}`
	if metadata != want {
		t.Errorf("metadata = %q, want %q", metadata, want)
	}
}

func TestLogEvent_NoMetadata(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	svc := NewEventService(db)
	if err := svc.LogEvent(context.Background(), logging.EventLevelInfo, logging.CategoryAuth, "Test", 0, "", nil); err != nil {
		t.Fatalf("LogEvent failed: %v", err)
	}

	var metadata string
	if err := db.QueryRow("SELECT metadata FROM events").Scan(&metadata); err != nil {
		t.Fatalf("failed to read event: %v", err)
	}
	if metadata != "{}" {
		t.Errorf("metadata = %q, want %q", metadata, "{}")
	}
}

// testEventField checks the value a logging function stores in one column.
func testEventField(t *testing.T, db *sql.DB, logFn func(*EventService, context.Context) error, fieldName, expected string) {
	t.Helper()
	svc := NewEventService(db)

	if err := logFn(svc, context.Background()); err != nil {
		t.Fatalf("Log function failed: %v", err)
	}

	var got string
	if err := db.QueryRow("SELECT " + fieldName + " FROM events").Scan(&got); err != nil {
		t.Fatalf("failed to read event: %v", err)
	}
	if got != expected {
		t.Errorf("%s = %q, want %q", fieldName, got, expected)
	}
}

func TestLogLevels(t *testing.T) {
	tests := []struct {
		name     string
		logFn    func(*EventService, context.Context) error
		field    string
		expected string
	}{
		{"info", func(svc *EventService, ctx context.Context) error {
			return svc.LogInfo(ctx, logging.CategoryProject, "Project created", 0, "", nil)
		}, "level", "info"},
		{"warning", func(svc *EventService, ctx context.Context) error {
			return svc.LogWarning(ctx, logging.CategorySystem, "Counters drifted", 0, "", nil)
		}, "level", "warning"},
		{"auth category", func(svc *EventService, ctx context.Context) error {
			return svc.LogAuthEvent(ctx, logging.EventLevelInfo, "User logged in", 1, "", nil)
		}, "category", "auth"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, cleanup := testutil.TestDB(t)
			defer cleanup()
			testEventField(t, db, tt.logFn, tt.field, tt.expected)
		})
	}
}

func TestListEvents(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	svc := NewEventService(db)
	ctx := context.Background()

	for i := range 5 {
		level := logging.EventLevelInfo
		if i%2 == 0 {
			level = logging.EventLevelWarning
		}
		if err := svc.LogEvent(ctx, level, logging.CategorySystem, "event", 0, "", nil); err != nil {
			t.Fatalf("LogEvent failed: %v", err)
		}
	}

	list, err := svc.ListEvents(ctx, EventFilter{Level: logging.EventLevelWarning})
	if err != nil {
		t.Fatalf("ListEvents failed: %v", err)
	}
	if list.Total != 3 || len(list.Events) != 3 {
		t.Errorf("warnings = %d/%d, want 3/3", len(list.Events), list.Total)
	}

	list, err = svc.ListEvents(ctx, EventFilter{Pagination: Pagination{Page: 2, PerPage: 2}})
	if err != nil {
		t.Fatalf("ListEvents failed: %v", err)
	}
	if list.Total != 5 || len(list.Events) != 2 {
		t.Errorf("page 2 = %d/%d, want 2/5", len(list.Events), list.Total)
	}
}

func TestDeleteOldEvents(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	svc := NewEventService(db)
	ctx := context.Background()
	q := store.New(db)

	old := time.Now().UTC().Add(-60 * 24 * time.Hour)
	if _, err := q.CreateEvent(ctx, store.CreateEventParams{Level: "info", Category: "system", Message: "old", Metadata: "{}", CreatedAt: old}); err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}
	if err := svc.LogInfo(ctx, logging.CategorySystem, "new", 0, "", nil); err != nil {
		t.Fatalf("LogInfo failed: %v", err)
	}

	n, err := svc.DeleteOldEvents(ctx, 30*24*time.Hour)
	if err != nil {
		t.Fatalf("DeleteOldEvents failed: %v", err)
	}
	if n != 1 {
		t.Errorf("deleted = %d, want 1", n)
	}
}

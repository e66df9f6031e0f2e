// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/olegiv/studio-cms/internal/logging"
	"github.com/olegiv/studio-cms/internal/store"
)

// EventService writes audit entries to the event log and reads them back
// for the admin panel.
type EventService struct {
	queries *store.Queries
}

// EventFilter narrows ListEvents. Empty strings match everything.
type EventFilter struct {
	Level    string
	Category string
	Pagination
}

// EventList is one page of events plus the unpaged total.
type EventList struct {
	Events []store.Event
	Total  int64
}

// NewEventService creates a new EventService.
func NewEventService(db *sql.DB) *EventService {
	return &EventService{
		queries: store.New(db),
	}
}

// LogEvent creates a new event log entry. A non-zero userID and a non-empty
// ipAddress are stored in the metadata.
func (s *EventService) LogEvent(ctx context.Context, level, category, message string, userID int64, ipAddress string, metadata map[string]any) error {
	meta := make(map[string]any, len(metadata)+2)
	for k, v := range metadata {
		meta[k] = v
	}
	if userID != 0 {
		meta["user_id"] = userID
	}
	if ipAddress != "" {
		meta["ip"] = ipAddress
	}

	metadataJSON := "{}"
	if len(meta) > 0 {
		if b, err := json.Marshal(meta); err == nil {
			metadataJSON = string(b)
		}
	}

	_, err := s.queries.CreateEvent(ctx, store.CreateEventParams{
		Level:     level,
		Category:  category,
		Message:   message,
		Metadata:  metadataJSON,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		// Debug only: a warning here would be mirrored back into the event log.
		slog.Debug("failed to log event", "error", err, "message", message)
		return err
	}
	return nil
}

// LogInfo logs an info-level event.
func (s *EventService) LogInfo(ctx context.Context, category, message string, userID int64, ipAddress string, metadata map[string]any) error {
	return s.LogEvent(ctx, logging.EventLevelInfo, category, message, userID, ipAddress, metadata)
}

// LogWarning logs a warning-level event.
func (s *EventService) LogWarning(ctx context.Context, category, message string, userID int64, ipAddress string, metadata map[string]any) error {
	return s.LogEvent(ctx, logging.EventLevelWarning, category, message, userID, ipAddress, metadata)
}

// LogAuthEvent logs an authentication-related event.
func (s *EventService) LogAuthEvent(ctx context.Context, level, message string, userID int64, ipAddress string, metadata map[string]any) error {
	return s.LogEvent(ctx, level, logging.CategoryAuth, message, userID, ipAddress, metadata)
}

// ListEvents returns one page of events, newest first.
func (s *EventService) ListEvents(ctx context.Context, f EventFilter) (*EventList, error) {
	f.Pagination = f.Pagination.Normalize()
	total, err := s.queries.CountEvents(ctx, f.Level, f.Category)
	if err != nil {
		return nil, fmt.Errorf("counting events: %w", err)
	}
	events, err := s.queries.ListEvents(ctx, store.ListEventsParams{
		Level:    f.Level,
		Category: f.Category,
		Limit:    f.Limit(),
		Offset:   f.Offset(),
	})
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	return &EventList{Events: events, Total: total}, nil
}

// DeleteOldEvents removes events older than the specified duration.
func (s *EventService) DeleteOldEvents(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-olderThan)
	return s.queries.DeleteEventsBefore(ctx, cutoff)
}

// DeleteExpiredSessions removes session rows past their expiry.
func (s *EventService) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	return s.queries.DeleteExpiredSessions(ctx)
}

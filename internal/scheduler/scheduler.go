// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs the periodic housekeeping jobs: counter
// reconciliation and purging of expired sessions and old events.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/olegiv/studio-cms/internal/logging"
	"github.com/olegiv/studio-cms/internal/service"
)

// Job names.
const (
	JobRecount = "recount"
	JobPurge   = "purge"
)

// Defaults used when Options leaves a field empty.
const (
	DefaultRecountSchedule = "@hourly"
	DefaultPurgeSchedule   = "@daily"
	DefaultEventRetention  = 30 * 24 * time.Hour
	DefaultJobTimeout      = 5 * time.Minute
)

// Recounter rebuilds denormalized counters.
type Recounter interface {
	Recount(ctx context.Context) (service.RecountResult, error)
}

// Purger removes expired rows.
type Purger interface {
	DeleteExpiredSessions(ctx context.Context) (int64, error)
	DeleteOldEvents(ctx context.Context, olderThan time.Duration) (int64, error)
}

// Options configures the scheduler.
type Options struct {
	RecountSchedule string
	PurgeSchedule   string
	EventRetention  time.Duration
	JobTimeout      time.Duration
}

// Scheduler handles the background jobs.
type Scheduler struct {
	cron      *cron.Cron
	logger    *slog.Logger
	registry  *registry
	recounter Recounter
	purger    Purger
	retention time.Duration
}

// New creates a scheduler and registers its jobs. It does not start them.
func New(logger *slog.Logger, recounter Recounter, purger Purger, opts Options) (*Scheduler, error) {
	if opts.RecountSchedule == "" {
		opts.RecountSchedule = DefaultRecountSchedule
	}
	if opts.PurgeSchedule == "" {
		opts.PurgeSchedule = DefaultPurgeSchedule
	}
	if opts.EventRetention <= 0 {
		opts.EventRetention = DefaultEventRetention
	}
	if opts.JobTimeout <= 0 {
		opts.JobTimeout = DefaultJobTimeout
	}

	c := cron.New(cron.WithLocation(time.UTC))
	s := &Scheduler{
		cron:      c,
		logger:    logger,
		registry:  newRegistry(c, logger, opts.JobTimeout),
		recounter: recounter,
		purger:    purger,
		retention: opts.EventRetention,
	}

	if err := s.registry.add(JobRecount, "Rebuild blog and project category counters", opts.RecountSchedule, s.recount); err != nil {
		return nil, err
	}
	if err := s.registry.add(JobPurge, "Delete expired sessions and old events", opts.PurgeSchedule, s.purge); err != nil {
		return nil, err
	}
	return s, nil
}

// Start begins running jobs on their schedules.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
}

// Stop waits for running jobs to finish and stops the scheduler.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// Jobs lists the registered jobs with their last and next run times.
func (s *Scheduler) Jobs() []JobInfo {
	return s.registry.List()
}

// Trigger runs a job now and returns its error.
func (s *Scheduler) Trigger(name string) error {
	return s.registry.TriggerNow(name)
}

func (s *Scheduler) recount(ctx context.Context) error {
	res, err := s.recounter.Recount(ctx)
	if err != nil {
		return fmt.Errorf("recount: %w", err)
	}
	s.logger.Debug("counters reconciled", "category", logging.CategoryScheduler, "rewritten", res.Total())
	return nil
}

func (s *Scheduler) purge(ctx context.Context) error {
	sessions, err := s.purger.DeleteExpiredSessions(ctx)
	if err != nil {
		return fmt.Errorf("purging sessions: %w", err)
	}
	events, err := s.purger.DeleteOldEvents(ctx, s.retention)
	if err != nil {
		return fmt.Errorf("purging events: %w", err)
	}
	if sessions > 0 || events > 0 {
		s.logger.Info("purged expired rows",
			"category", logging.CategoryScheduler,
			"sessions", sessions,
			"events", events)
	}
	return nil
}

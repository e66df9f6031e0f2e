// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// cronParser accepts the standard five fields plus @descriptors.
var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// ErrJobNotFound is returned when triggering a name that was never registered.
var ErrJobNotFound = errors.New("job not found")

// JobFunc is the body of a scheduled job.
type JobFunc func(ctx context.Context) error

type registeredJob struct {
	name        string
	description string
	schedule    string
	entryID     cron.EntryID
	run         JobFunc
	lastRun     time.Time
	lastErr     error
	running     sync.Mutex
}

// JobInfo is the public view of a registered job.
type JobInfo struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Schedule    string     `json:"schedule"`
	LastRun     *time.Time `json:"lastRun"`
	NextRun     time.Time  `json:"nextRun"`
	LastError   string     `json:"lastError,omitempty"`
}

// registry tracks the jobs added to one cron instance.
type registry struct {
	cron    *cron.Cron
	logger  *slog.Logger
	timeout time.Duration
	mu      sync.RWMutex
	jobs    map[string]*registeredJob
}

func newRegistry(c *cron.Cron, logger *slog.Logger, timeout time.Duration) *registry {
	return &registry{
		cron:    c,
		logger:  logger,
		timeout: timeout,
		jobs:    make(map[string]*registeredJob),
	}
}

// add validates the schedule and adds the job to cron.
func (r *registry) add(name, description, schedule string, run JobFunc) error {
	sched, err := cronParser.Parse(schedule)
	if err != nil {
		return fmt.Errorf("invalid cron expression %q for job %s: %w", schedule, name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.jobs[name]; ok {
		return fmt.Errorf("job already registered: %s", name)
	}
	job := &registeredJob{
		name:        name,
		description: description,
		schedule:    schedule,
		run:         run,
	}
	job.entryID = r.cron.Schedule(sched, cron.FuncJob(func() { r.execute(job) }))
	r.jobs[name] = job

	r.logger.Debug("registered scheduled job", "name", name, "schedule", schedule)
	return nil
}

// execute runs a job under a timeout. Overlapping runs of the same job are
// skipped.
func (r *registry) execute(job *registeredJob) {
	if !job.running.TryLock() {
		r.logger.Warn("skipping job run, previous run still active", "job", job.name)
		return
	}
	defer job.running.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	start := time.Now()
	err := job.run(ctx)

	r.mu.Lock()
	job.lastRun = start
	job.lastErr = err
	r.mu.Unlock()

	if err != nil {
		r.logger.Error("scheduled job failed", "job", job.name, "error", err)
		return
	}
	r.logger.Debug("scheduled job finished", "job", job.name, "duration", time.Since(start))
}

// List returns all registered jobs sorted by name.
func (r *registry) List() []JobInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]JobInfo, 0, len(r.jobs))
	for _, job := range r.jobs {
		entry := r.cron.Entry(job.entryID)
		info := JobInfo{
			Name:        job.name,
			Description: job.description,
			Schedule:    job.schedule,
			NextRun:     entry.Next,
		}
		if !job.lastRun.IsZero() {
			lastRun := job.lastRun
			info.LastRun = &lastRun
		}
		if job.lastErr != nil {
			info.LastError = job.lastErr.Error()
		}
		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

// TriggerNow runs a job immediately on the caller's goroutine.
func (r *registry) TriggerNow(name string) error {
	r.mu.RLock()
	job, ok := r.jobs[name]
	r.mu.RUnlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrJobNotFound, name)
	}

	r.logger.Info("manually triggering job", "name", name)
	r.execute(job)

	r.mu.RLock()
	defer r.mu.RUnlock()
	return job.lastErr
}

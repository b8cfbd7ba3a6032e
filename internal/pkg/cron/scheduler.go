package cron

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Job represents a scheduled job
type Job struct {
	Name     string
	Interval time.Duration
	Fn       func(ctx context.Context) error
}

// JobObserver is notified after every job run.
type JobObserver interface {
	ObserveJob(name string, err error, elapsed time.Duration)
}

type Option func(*Scheduler)

// WithJobTimeout bounds a single run of any job.
func WithJobTimeout(d time.Duration) Option {
	return func(s *Scheduler) {
		s.jobTimeout = d
	}
}

func WithObserver(o JobObserver) Option {
	return func(s *Scheduler) {
		s.observer = o
	}
}

// Scheduler manages scheduled jobs
type Scheduler struct {
	jobs       []Job
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
	mu         sync.Mutex
	started    bool
	jobTimeout time.Duration
	observer   JobObserver
}

// NewScheduler creates a new cron scheduler
func NewScheduler(opts ...Option) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		jobs:       make([]Job, 0),
		ctx:        ctx,
		cancel:     cancel,
		jobTimeout: 5 * time.Minute,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddJob adds a job to the scheduler. Jobs added after Start are ignored.
func (s *Scheduler) AddJob(name string, interval time.Duration, fn func(ctx context.Context) error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		slog.Warn("Cron job registered after start, ignoring", "name", name)
		return
	}
	if interval <= 0 {
		slog.Warn("Cron job has no interval, ignoring", "name", name)
		return
	}

	s.jobs = append(s.jobs, Job{
		Name:     name,
		Interval: interval,
		Fn:       fn,
	})
	slog.Info("Cron job registered", "name", name, "interval", interval)
}

// Start begins running all scheduled jobs
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return
	}
	s.started = true

	for _, job := range s.jobs {
		s.wg.Add(1)
		go s.runJob(job)
	}

	slog.Info("Cron scheduler started", "job_count", len(s.jobs))
}

// Stop cancels running jobs and waits for them to return.
func (s *Scheduler) Stop() {
	slog.Info("Stopping cron scheduler...")
	s.cancel()
	s.wg.Wait()
	slog.Info("Cron scheduler stopped")
}

// runJob runs a single job on its schedule
func (s *Scheduler) runJob(job Job) {
	defer s.wg.Done()

	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()

	// Run immediately on start
	s.executeJob(s.ctx, job)

	for {
		select {
		case <-s.ctx.Done():
			slog.Info("Cron job stopping", "name", job.Name)
			return
		case <-ticker.C:
			s.executeJob(s.ctx, job)
		}
	}
}

// executeJob executes a job and logs results. A panicking job is reported as failed.
func (s *Scheduler) executeJob(parent context.Context, job Job) (err error) {
	ctx, cancel := context.WithTimeout(parent, s.jobTimeout)
	defer cancel()

	start := time.Now()
	slog.Debug("Cron job starting", "name", job.Name)

	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("job panicked: %v", p)
		}
		elapsed := time.Since(start)
		if err != nil {
			slog.Error("Cron job failed", "name", job.Name, "error", err, "duration", elapsed)
		} else {
			slog.Debug("Cron job completed", "name", job.Name, "duration", elapsed)
		}
		if s.observer != nil {
			s.observer.ObserveJob(job.Name, err, elapsed)
		}
	}()

	return job.Fn(ctx)
}

// RunOnce runs all jobs once and returns how many failed.
func (s *Scheduler) RunOnce(ctx context.Context) int {
	s.mu.Lock()
	jobs := append([]Job(nil), s.jobs...)
	s.mu.Unlock()

	failed := 0
	for _, job := range jobs {
		if err := s.executeJob(ctx, job); err != nil {
			failed++
		}
	}
	return failed
}

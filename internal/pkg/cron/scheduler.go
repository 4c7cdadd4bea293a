package cron

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Job is a named function run on a fixed interval.
type Job struct {
	Name     string
	Interval time.Duration
	Fn       func(ctx context.Context) error
}

// Scheduler runs each registered job on its own ticker goroutine.
type Scheduler struct {
	jobs   []Job
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.Mutex
}

func NewScheduler() *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{ctx: ctx, cancel: cancel}
}

func (s *Scheduler) AddJob(name string, interval time.Duration, fn func(ctx context.Context) error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.jobs = append(s.jobs, Job{Name: name, Interval: interval, Fn: fn})
	slog.Info("Cron job registered", "name", name, "interval", interval)
}

// Start launches one goroutine per job. Each job also runs immediately, so a
// restart never waits a full interval to catch up on missed sweeps.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, job := range s.jobs {
		s.wg.Add(1)
		go s.runJob(job)
	}

	slog.Info("Cron scheduler started", "job_count", len(s.jobs))
}

// Stop cancels all jobs and waits for in-flight runs to finish.
func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
	slog.Info("Cron scheduler stopped")
}

func (s *Scheduler) runJob(job Job) {
	defer s.wg.Done()

	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()

	s.executeJob(s.ctx, job)

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.executeJob(s.ctx, job)
		}
	}
}

func (s *Scheduler) executeJob(ctx context.Context, job Job) {
	start := time.Now()

	if err := job.Fn(ctx); err != nil {
		slog.Error("Cron job failed", "name", job.Name, "error", err, "duration", time.Since(start))
		return
	}
	slog.Debug("Cron job completed", "name", job.Name, "duration", time.Since(start))
}

// RunOnce runs every registered job once, synchronously. One-shot maintenance
// runs and the sweep tests use it instead of Start.
func (s *Scheduler) RunOnce(ctx context.Context) {
	s.mu.Lock()
	jobs := make([]Job, len(s.jobs))
	copy(jobs, s.jobs)
	s.mu.Unlock()

	for _, job := range jobs {
		s.executeJob(ctx, job)
	}
}

// Package scheduler runs the ledger's periodic jobs: payment locking and
// execution, nightly interest and the approval sweep.
//
// Jobs are driven by Tick, which the server calls from a ticker and tests call
// directly with a chosen time. A job never overlaps with itself.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"ledger-engine/internal/clock"
)

var (
	ErrUnknownJob = errors.New("unknown job")
	ErrJobRunning = errors.New("job is already running")
)

// RunFunc performs one pass of a job. at is the time the pass was scheduled
// for, which is earlier than the wall clock when a missed pass is caught up.
type RunFunc func(ctx context.Context, at time.Time) error

type Job struct {
	Name    string
	Trigger Trigger
	Run     RunFunc
	// CatchUp makes the first tick after start run the most recent missed
	// pass. Only idempotent jobs should set it.
	CatchUp bool
}

// Metrics is the subset of the metrics recorder used by the scheduler.
type Metrics interface {
	IncrementCounter(name string, tags map[string]string)
	RecordProcessingTime(name string, duration time.Duration)
}

type entry struct {
	job     Job
	next    time.Time
	running atomic.Bool
}

// Status describes a registered job.
type Status struct {
	Name    string    `json:"name"`
	NextRun time.Time `json:"next_run"`
	Running bool      `json:"running"`
}

type Scheduler struct {
	clock    clock.Clock
	metrics  Metrics
	logger   *slog.Logger
	interval time.Duration

	mu      sync.Mutex
	entries []*entry
}

func New(clk clock.Clock, metrics Metrics, interval time.Duration, logger *slog.Logger) *Scheduler {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		clock:    clk,
		metrics:  metrics,
		logger:   logger,
		interval: interval,
	}
}

func (s *Scheduler) Register(job Job) error {
	if job.Name == "" || job.Trigger == nil || job.Run == nil {
		return fmt.Errorf("job %q needs a name, a trigger and a run function", job.Name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.entries {
		if e.job.Name == job.Name {
			return fmt.Errorf("job %q is already registered", job.Name)
		}
	}

	now := s.clock.Now()
	next := job.Trigger.Next(now)
	if job.CatchUp {
		next = job.Trigger.Previous(now)
	}
	s.entries = append(s.entries, &entry{job: job, next: next})
	return nil
}

// Tick runs every job due at now and waits for them. It returns the names of
// the jobs that ran.
func (s *Scheduler) Tick(ctx context.Context, now time.Time) []string {
	var wg sync.WaitGroup
	ran := s.dispatch(ctx, now, &wg)
	wg.Wait()
	return ran
}

// Start ticks until ctx is cancelled, then waits for running jobs.
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("starting scheduler", slog.Int("jobs", len(s.Statuses())), slog.Duration("tick", s.interval))

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	var wg sync.WaitGroup
	s.dispatch(ctx, s.clock.Now(), &wg)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler shutting down, waiting for running jobs")
			wg.Wait()
			s.logger.Info("scheduler stopped")
			return

		case <-ticker.C:
			s.dispatch(ctx, s.clock.Now(), &wg)
		}
	}
}

// RunNow runs a job immediately for the current time, outside its schedule.
func (s *Scheduler) RunNow(ctx context.Context, name string) error {
	e := s.find(name)
	if e == nil {
		return fmt.Errorf("%w: %s", ErrUnknownJob, name)
	}
	if !e.running.CompareAndSwap(false, true) {
		return ErrJobRunning
	}
	return s.run(ctx, e, s.clock.Now())
}

func (s *Scheduler) Statuses() []Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	statuses := make([]Status, 0, len(s.entries))
	for _, e := range s.entries {
		statuses = append(statuses, Status{
			Name:    e.job.Name,
			NextRun: e.next,
			Running: e.running.Load(),
		})
	}
	return statuses
}

func (s *Scheduler) dispatch(ctx context.Context, now time.Time, wg *sync.WaitGroup) []string {
	type due struct {
		entry *entry
		at    time.Time
	}

	s.mu.Lock()
	var jobs []due
	for _, e := range s.entries {
		if now.Before(e.next) {
			continue
		}
		if !e.running.CompareAndSwap(false, true) {
			s.logger.Warn("skipping job, previous run still active", slog.String("job", e.job.Name))
			s.metrics.IncrementCounter("job.run", map[string]string{"job": e.job.Name, "status": "skipped"})
			continue
		}
		jobs = append(jobs, due{entry: e, at: e.next})
		e.next = e.job.Trigger.Next(now)
	}
	s.mu.Unlock()

	names := make([]string, 0, len(jobs))
	for _, j := range jobs {
		names = append(names, j.entry.job.Name)
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.run(ctx, j.entry, j.at)
		}()
	}
	return names
}

// run executes one pass. The caller must have set e.running.
func (s *Scheduler) run(ctx context.Context, e *entry, at time.Time) (err error) {
	defer e.running.Store(false)

	name := e.job.Name
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("job %s panicked: %v", name, r)
		}

		s.metrics.RecordProcessingTime(name, time.Since(start))
		status := "success"
		if err != nil {
			status = "error"
			s.logger.Error("job failed",
				slog.String("job", name),
				slog.Time("scheduled_at", at),
				slog.String("error", err.Error()),
			)
		} else {
			s.logger.Info("job finished",
				slog.String("job", name),
				slog.Time("scheduled_at", at),
				slog.Duration("duration", time.Since(start)),
			)
		}
		s.metrics.IncrementCounter("job.run", map[string]string{"job": name, "status": status})
	}()

	return e.job.Run(ctx, at)
}

func (s *Scheduler) find(name string) *entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.entries {
		if e.job.Name == name {
			return e
		}
	}
	return nil
}

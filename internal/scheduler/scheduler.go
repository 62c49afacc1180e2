package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// Jobs are the operations the scheduler triggers. Implementations serialize
// them against message handling.
type Jobs interface {
	Export(ctx context.Context) (string, error)
	ResetAndExport(ctx context.Context) (string, error)
}

// IntervalFunc returns the current auto-export interval. It is consulted
// before every wait so a changed setting applies to the next cycle.
type IntervalFunc func(ctx context.Context) time.Duration

// Config controls the schedule.
type Config struct {
	Now              func() time.Time
	After            func(time.Duration) <-chan time.Time
	Interval         IntervalFunc
	Logger           *slog.Logger
	TimezoneOffset   int
	ResetHour        int
	ExportRetryDelay time.Duration
	ResetRetryDelay  time.Duration
}

// DefaultConfig returns the production schedule: hourly export and a reset
// at 01:00 UTC+1.
func DefaultConfig() Config {
	return Config{
		Now:              time.Now,
		After:            time.After,
		Interval:         func(context.Context) time.Duration { return DefaultExportInterval },
		Logger:           slog.Default(),
		TimezoneOffset:   1,
		ResetHour:        1,
		ExportRetryDelay: ExportRetryDelay,
		ResetRetryDelay:  ResetRetryDelay,
	}
}

// Scheduler drives the auto-export and daily reset loops.
type Scheduler struct {
	jobs   Jobs
	config Config
}

// New creates a scheduler. Zero fields of config take their defaults.
func New(jobs Jobs, config Config) *Scheduler {
	defaults := DefaultConfig()
	if config.Now == nil {
		config.Now = defaults.Now
	}
	if config.After == nil {
		config.After = defaults.After
	}
	if config.Interval == nil {
		config.Interval = defaults.Interval
	}
	if config.Logger == nil {
		config.Logger = defaults.Logger
	}
	if config.ExportRetryDelay <= 0 {
		config.ExportRetryDelay = defaults.ExportRetryDelay
	}
	if config.ResetRetryDelay <= 0 {
		config.ResetRetryDelay = defaults.ResetRetryDelay
	}
	if config.ResetHour < 0 || config.ResetHour > 23 {
		config.ResetHour = defaults.ResetHour
	}
	return &Scheduler{jobs: jobs, config: config}
}

// Run blocks until ctx is canceled. Job failures are logged and retried;
// they never stop the loops.
func (s *Scheduler) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.exportLoop(gctx) })
	g.Go(func() error { return s.resetLoop(gctx) })

	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (s *Scheduler) exportLoop(ctx context.Context) error {
	wait := s.config.Interval(ctx)
	for {
		s.config.Logger.Debug("Next auto export scheduled", "in", wait)
		if err := s.sleep(ctx, wait); err != nil {
			return err
		}

		locator, err := s.jobs.Export(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			s.config.Logger.Error("Auto export failed", "error", err, "retry_in", s.config.ExportRetryDelay)
			wait = s.config.ExportRetryDelay
			continue
		}

		wait = s.config.Interval(ctx)
		s.config.Logger.Info("Auto export completed", "locator", locator, "next_in", wait)
	}
}

func (s *Scheduler) resetLoop(ctx context.Context) error {
	var last time.Time
	for {
		now := s.config.Now()
		next := NextReset(now, s.config.TimezoneOffset, s.config.ResetHour)
		// A timer that fires slightly early must not reset the same day twice.
		if !next.After(last) {
			next = next.AddDate(0, 0, 1)
		}
		s.config.Logger.Info("Next daily reset scheduled",
			"at", next.Format(time.RFC3339),
			"in_hours", next.Sub(now).Hours())

		if err := s.sleep(ctx, next.Sub(now)); err != nil {
			return err
		}

		for {
			locator, err := s.jobs.ResetAndExport(ctx)
			if err == nil {
				s.config.Logger.Info("Daily reset completed", "locator", locator)
				last = next
				break
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			s.config.Logger.Error("Daily reset failed", "error", err, "retry_in", s.config.ResetRetryDelay)
			if err := s.sleep(ctx, s.config.ResetRetryDelay); err != nil {
				return err
			}
		}
	}
}

func (s *Scheduler) sleep(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.config.After(d):
		return nil
	}
}

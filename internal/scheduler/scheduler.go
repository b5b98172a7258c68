// Package scheduler runs periodic background jobs inside the API process.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

// Refresher recomputes cached slot availability for every tournament.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Scheduler wraps a gocron scheduler with the slot refresh job.
type Scheduler struct {
	sched  gocron.Scheduler
	cancel context.CancelFunc
	logger *zap.Logger
}

// New registers the slot refresh job to run every interval. Runs never overlap;
// a run that overlaps the next tick is rescheduled. Call Start to begin.
func New(refresher Refresher, every time.Duration, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if every <= 0 {
		return nil, fmt.Errorf("scheduler: interval must be positive, got %s", every)
	}
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("scheduler: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	_, err = sched.NewJob(
		gocron.DurationJob(every),
		gocron.NewTask(func() {
			runCtx, done := context.WithTimeout(ctx, every)
			defer done()
			if err := refresher.Refresh(runCtx); err != nil {
				logger.Warn("slot refresh failed", zap.Error(err))
			}
		}),
		gocron.WithName("slot-refresh"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		cancel()
		_ = sched.Shutdown()
		return nil, fmt.Errorf("scheduler: register slot refresh: %w", err)
	}
	return &Scheduler{sched: sched, cancel: cancel, logger: logger}, nil
}

// Start begins running jobs in the background.
func (s *Scheduler) Start() {
	s.sched.Start()
	s.logger.Info("scheduler started")
}

// Shutdown stops the scheduler and waits for running jobs.
func (s *Scheduler) Shutdown() error {
	s.cancel()
	if err := s.sched.Shutdown(); err != nil {
		return fmt.Errorf("scheduler shutdown: %w", err)
	}
	s.logger.Info("scheduler stopped")
	return nil
}

package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/alutalk/channel/internal/biz/domain"
)

// Sweeper evicts expired messages from the store
type Sweeper interface {
	Sweep(ctx context.Context) ([]domain.Message, error)
}

// RetentionScheduler sweeps the store periodically so expired messages
// leave the file even when nobody reads the channel
type RetentionScheduler struct {
	sweeper  Sweeper
	interval time.Duration
	logger   *slog.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewRetentionScheduler creates a new retention scheduler
func NewRetentionScheduler(sweeper Sweeper, interval time.Duration, logger *slog.Logger) *RetentionScheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &RetentionScheduler{
		sweeper:  sweeper,
		interval: interval,
		logger:   logger.With("component", "retention-scheduler"),
	}
}

// Start starts the sweep loop. A non-positive interval disables it.
func (s *RetentionScheduler) Start(ctx context.Context) {
	if s.interval <= 0 {
		s.logger.Info("periodic retention sweep disabled")
		return
	}

	ctx, s.cancel = context.WithCancel(ctx)

	s.wg.Add(1)
	go s.sweepLoop(ctx)

	s.logger.Info("started", "interval", s.interval)
}

// Stop stops the scheduler and waits for a running sweep to finish
func (s *RetentionScheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

func (s *RetentionScheduler) sweepLoop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *RetentionScheduler) sweep(ctx context.Context) {
	kept, err := s.sweeper.Sweep(ctx)
	if err != nil {
		if ctx.Err() == nil {
			s.logger.Error("retention sweep failed", "error", err)
		}
		return
	}
	s.logger.Debug("retention sweep done", "kept", len(kept))
}

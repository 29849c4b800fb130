package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/alutalk/channel/internal/biz/domain"
)

type countingSweeper struct {
	calls atomic.Int32
	err   error
}

func (c *countingSweeper) Sweep(ctx context.Context) ([]domain.Message, error) {
	c.calls.Add(1)
	return nil, c.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRetentionScheduler_SweepsPeriodically(t *testing.T) {
	sweeper := &countingSweeper{}
	s := NewRetentionScheduler(sweeper, 5*time.Millisecond, discardLogger())

	s.Start(context.Background())
	require.Eventually(t, func() bool { return sweeper.calls.Load() >= 2 }, 2*time.Second, 5*time.Millisecond)
	s.Stop()

	after := sweeper.calls.Load()
	time.Sleep(20 * time.Millisecond)
	require.Equal(t, after, sweeper.calls.Load())
}

func TestRetentionScheduler_KeepsRunningAfterError(t *testing.T) {
	sweeper := &countingSweeper{err: errors.New("disk full")}
	s := NewRetentionScheduler(sweeper, 5*time.Millisecond, discardLogger())

	s.Start(context.Background())
	defer s.Stop()
	require.Eventually(t, func() bool { return sweeper.calls.Load() >= 3 }, 2*time.Second, 5*time.Millisecond)
}

func TestRetentionScheduler_Disabled(t *testing.T) {
	sweeper := &countingSweeper{}
	s := NewRetentionScheduler(sweeper, 0, discardLogger())

	s.Start(context.Background())
	time.Sleep(20 * time.Millisecond)
	s.Stop()

	require.Zero(t, sweeper.calls.Load())
}

func TestRetentionScheduler_StopsWithParentContext(t *testing.T) {
	sweeper := &countingSweeper{}
	s := NewRetentionScheduler(sweeper, 5*time.Millisecond, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)
	cancel()

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
}

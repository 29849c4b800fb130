package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alutalk/channel/internal/biz/domain"
	"github.com/alutalk/channel/internal/biz/repo"
)

// RetentionUsecase evicts expired messages before they are read
type RetentionUsecase struct {
	messageRepo repo.MessageRepo
	window      time.Duration
	logger      *slog.Logger

	now func() time.Time
}

// NewRetentionUsecase creates a new retention usecase
func NewRetentionUsecase(messageRepo repo.MessageRepo, window time.Duration, logger *slog.Logger) *RetentionUsecase {
	if window <= 0 {
		window = domain.DefaultRetentionWindow
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RetentionUsecase{
		messageRepo: messageRepo,
		window:      window,
		logger:      logger,
		now:         time.Now,
	}
}

// Sweep removes messages older than the retention window, persists the rest
// and returns them in order. Reading always rewrites the store.
func (uc *RetentionUsecase) Sweep(ctx context.Context) ([]domain.Message, error) {
	var kept []domain.Message

	err := uc.messageRepo.Update(ctx, func(messages []domain.Message) ([]domain.Message, error) {
		res := domain.ApplyRetention(messages, uc.now(), uc.window)
		for _, m := range res.Unparseable {
			uc.logger.Warn("stored message has unparseable timestamp, keeping it",
				"sender", m.Sender, "timestamp", m.Timestamp)
		}
		if res.Evicted > 0 {
			uc.logger.Info("evicted expired messages", "count", res.Evicted, "kept", len(res.Kept))
		}
		kept = res.Kept
		return kept, nil
	})
	if err != nil {
		return nil, fmt.Errorf("retention sweep: %w", err)
	}
	return kept, nil
}

// Window returns the retention window
func (uc *RetentionUsecase) Window() time.Duration {
	return uc.window
}

package repo

import (
	"context"

	"github.com/alutalk/channel/internal/biz/domain"
)

// AuditRepo records moderation decisions
type AuditRepo interface {
	Record(ctx context.Context, event domain.ModerationEvent) error
	List(ctx context.Context, limit int) ([]domain.ModerationEvent, error)
	Close() error
}

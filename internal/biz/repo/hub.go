package repo

import (
	"context"

	"github.com/alutalk/channel/internal/biz/domain"
)

// HubRepo is the directory service channels register with
type HubRepo interface {
	Register(ctx context.Context, channel domain.ChannelInfo) error
}

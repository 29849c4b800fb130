package repo

import (
	"context"

	"github.com/alutalk/channel/internal/biz/domain"
)

// MessageRepo is the message store interface
// The store is one ordered collection that is replaced wholesale on every write
type MessageRepo interface {
	// Load returns all stored messages in insertion order
	Load(ctx context.Context) ([]domain.Message, error)

	// Update runs a load-modify-save cycle as one critical section
	// fn receives the current messages and returns the collection to persist
	Update(ctx context.Context, fn func([]domain.Message) ([]domain.Message, error)) error
}

package repo

import (
	"context"

	"github.com/alutalk/channel/internal/biz/domain"
)

// OracleRepo is the text-generation oracle used for moderation and assistant replies
// Every call is a single prompt with no conversation state
type OracleRepo interface {
	// Classify sends the prompt once and reads a Yes/No verdict from the answer
	Classify(ctx context.Context, prompt string) (domain.Verdict, error)

	// Complete sends the prompt once and returns the first answer
	Complete(ctx context.Context, prompt string) (string, error)
}

package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alutalk/channel/internal/biz/domain"
	"github.com/alutalk/channel/internal/biz/repo"
)

// DefaultClassifierAttempts is how often the oracle is asked before giving up
const DefaultClassifierAttempts = 5

// Classification is the collapsed result of a topic check
type Classification struct {
	OnTopic  bool
	Verdict  domain.Verdict // last verdict seen
	Attempts int
	Fallback bool // no clear verdict, accepted by default
}

// ClassifierUsecase decides whether a message belongs to the channel topic
type ClassifierUsecase struct {
	oracle      repo.OracleRepo
	instruction string
	maxAttempts int
	logger      *slog.Logger
}

// NewClassifierUsecase creates a new topic classifier
func NewClassifierUsecase(oracle repo.OracleRepo, instruction string, maxAttempts int, logger *slog.Logger) *ClassifierUsecase {
	if maxAttempts <= 0 {
		maxAttempts = DefaultClassifierAttempts
	}
	if instruction == "" {
		instruction = DefaultPromptConfig.TopicInstruction
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ClassifierUsecase{
		oracle:      oracle,
		instruction: instruction,
		maxAttempts: maxAttempts,
		logger:      logger,
	}
}

// Classify asks the oracle until it answers Yes or No, at most maxAttempts times.
// Without a clear answer the message is treated as on-topic.
func (uc *ClassifierUsecase) Classify(ctx context.Context, text string) (Classification, error) {
	prompt := text + uc.instruction

	var result Classification
	for result.Attempts < uc.maxAttempts {
		verdict, err := uc.oracle.Classify(ctx, prompt)
		result.Attempts++
		if err != nil {
			return result, fmt.Errorf("classify attempt %d: %w", result.Attempts, err)
		}
		result.Verdict = verdict

		switch verdict {
		case domain.VerdictYes:
			result.OnTopic = true
			return result, nil
		case domain.VerdictNo:
			result.OnTopic = false
			return result, nil
		}
	}

	uc.logger.Warn("no clear topic verdict, accepting message", "attempts", result.Attempts)
	result.OnTopic = true
	result.Fallback = true
	return result, nil
}

// IsOnTopic reports whether text belongs to the channel topic
func (uc *ClassifierUsecase) IsOnTopic(ctx context.Context, text string) (bool, error) {
	res, err := uc.Classify(ctx, text)
	if err != nil {
		return false, err
	}
	return res.OnTopic, nil
}

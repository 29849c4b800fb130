package biz

import (
	"log/slog"
	"time"

	"github.com/alutalk/channel/internal/biz/repo"
	"github.com/alutalk/channel/internal/biz/usecase"
)

// Repos are the repositories the usecases depend on
type Repos struct {
	Message  repo.MessageRepo
	Oracle   repo.OracleRepo
	WordList repo.WordListRepo
	Audit    repo.AuditRepo // optional
}

// Settings tunes the usecases
type Settings struct {
	Prompts         usecase.PromptConfig
	MaxAttempts     int
	MaskChar        rune
	RetentionWindow time.Duration
}

// Usecases contains all usecases
type Usecases struct {
	Classifier *usecase.ClassifierUsecase
	Profanity  *usecase.ProfanityUsecase
	Moderation *usecase.ModerationUsecase
	Retention  *usecase.RetentionUsecase
}

// NewUsecases wires the usecase layer
func NewUsecases(repos Repos, settings Settings, logger *slog.Logger) *Usecases {
	if logger == nil {
		logger = slog.Default()
	}

	classifier := usecase.NewClassifierUsecase(repos.Oracle, settings.Prompts.TopicInstruction, settings.MaxAttempts, logger.With("component", "classifier"))
	profanity := usecase.NewProfanityUsecase(repos.WordList, settings.MaskChar, logger.With("component", "profanity"))

	return &Usecases{
		Classifier: classifier,
		Profanity:  profanity,
		Moderation: usecase.NewModerationUsecase(classifier, profanity, repos.Oracle, repos.Message, repos.Audit, settings.Prompts, logger.With("component", "moderation")),
		Retention:  usecase.NewRetentionUsecase(repos.Message, settings.RetentionWindow, logger.With("component", "retention")),
	}
}

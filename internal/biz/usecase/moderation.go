package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/alutalk/channel/internal/biz/domain"
	"github.com/alutalk/channel/internal/biz/repo"
)

// ModerationUsecase runs inbound messages through the moderation pipeline and stores them
type ModerationUsecase struct {
	classifier  *ClassifierUsecase
	profanity   *ProfanityUsecase
	oracle      repo.OracleRepo
	messageRepo repo.MessageRepo
	auditRepo   repo.AuditRepo // optional
	prompts     PromptConfig
	logger      *slog.Logger

	now func() time.Time
}

// NewModerationUsecase creates a new moderation usecase
func NewModerationUsecase(
	classifier *ClassifierUsecase,
	profanity *ProfanityUsecase,
	oracle repo.OracleRepo,
	messageRepo repo.MessageRepo,
	auditRepo repo.AuditRepo,
	prompts PromptConfig,
	logger *slog.Logger,
) *ModerationUsecase {
	if logger == nil {
		logger = slog.Default()
	}
	return &ModerationUsecase{
		classifier:  classifier,
		profanity:   profanity,
		oracle:      oracle,
		messageRepo: messageRepo,
		auditRepo:   auditRepo,
		prompts:     prompts,
		logger:      logger,
		now:         time.Now,
	}
}

// Post moderates msg and appends the result to the store.
// It returns the messages that were stored: one, or two for an assistant command.
func (uc *ModerationUsecase) Post(ctx context.Context, msg domain.Message) ([]domain.Message, error) {
	var (
		stored []domain.Message
		event  domain.ModerationEvent
		err    error
	)

	if msg.IsAssistantCommand(uc.prompts.AssistantPrefix) {
		stored, event, err = uc.assistant(ctx, msg)
	} else {
		stored, event, err = uc.moderate(ctx, msg)
	}
	if err != nil {
		return nil, err
	}

	err = uc.messageRepo.Update(ctx, func(messages []domain.Message) ([]domain.Message, error) {
		return append(messages, stored...), nil
	})
	if err != nil {
		return nil, fmt.Errorf("store message: %w", err)
	}

	uc.audit(ctx, event)
	return stored, nil
}

// assistant keeps the command verbatim and adds a generated reply
func (uc *ModerationUsecase) assistant(ctx context.Context, msg domain.Message) ([]domain.Message, domain.ModerationEvent, error) {
	answer, err := uc.oracle.Complete(ctx, msg.Content+uc.prompts.AssistantPersona)
	if err != nil {
		return nil, domain.ModerationEvent{}, fmt.Errorf("generate assistant reply: %w", err)
	}

	now := uc.now()
	reply := domain.Message{
		Content:   answer,
		Sender:    domain.AssistantSender,
		Timestamp: domain.FormatTimestamp(now),
		Extra:     json.RawMessage(`""`),
	}

	uc.logger.Info("assistant reply generated", "sender", msg.Sender)
	return []domain.Message{msg, reply}, domain.ModerationEvent{
		CreatedAt: now,
		Sender:    msg.Sender,
		Action:    domain.ActionAssistant,
	}, nil
}

// moderate rejects off-topic messages and masks profanity in the rest
func (uc *ModerationUsecase) moderate(ctx context.Context, msg domain.Message) ([]domain.Message, domain.ModerationEvent, error) {
	res, err := uc.classifier.Classify(ctx, msg.Content)
	if err != nil {
		return nil, domain.ModerationEvent{}, fmt.Errorf("classify message: %w", err)
	}

	event := domain.ModerationEvent{
		CreatedAt: uc.now(),
		Sender:    msg.Sender,
		Attempts:  res.Attempts,
		Fallback:  res.Fallback,
	}

	if !res.OnTopic {
		uc.logger.Info("off-topic message rejected", "sender", msg.Sender, "attempts", res.Attempts)
		event.Action = domain.ActionRejected
		msg.Content = strings.ReplaceAll(uc.prompts.RejectionTemplate, SenderPlaceholder, msg.Sender)
		msg.Sender = domain.AssistantSender
		return []domain.Message{msg}, event, nil
	}

	event.Action = domain.ActionAccepted
	msg.Content, event.MaskedTokens = uc.profanity.Mask(ctx, msg.Content)
	if event.MaskedTokens > 0 {
		uc.logger.Info("profanity masked", "sender", msg.Sender, "tokens", event.MaskedTokens)
	}
	return []domain.Message{msg}, event, nil
}

func (uc *ModerationUsecase) audit(ctx context.Context, event domain.ModerationEvent) {
	if uc.auditRepo == nil {
		return
	}
	if err := uc.auditRepo.Record(ctx, event); err != nil {
		uc.logger.Error("failed to record moderation event", "error", err, "action", event.Action)
	}
}

// ListModerationEvents returns the latest audit records
func (uc *ModerationUsecase) ListModerationEvents(ctx context.Context, limit int) ([]domain.ModerationEvent, error) {
	if uc.auditRepo == nil {
		return nil, ErrAuditDisabled
	}
	return uc.auditRepo.List(ctx, limit)
}

// AuditEnabled returns whether moderation decisions are recorded
func (uc *ModerationUsecase) AuditEnabled() bool {
	return uc.auditRepo != nil
}

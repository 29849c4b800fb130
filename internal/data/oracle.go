package data

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/alutalk/channel/internal/biz/domain"
	"github.com/alutalk/channel/internal/biz/repo"
)

const (
	defaultOracleModel   = "gpt-4o-mini"
	defaultOracleTimeout = 30 * time.Second
)

// OracleConfig contains the OpenAI-compatible endpoint settings
type OracleConfig struct {
	APIKey  string
	Model   string
	BaseURL string // optional, defaults to the OpenAI API
	Timeout time.Duration
}

// oracleRepo implements the oracle repository with an OpenAI-compatible chat API
type oracleRepo struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

// NewOracleRepo creates an oracle repository
func NewOracleRepo(cfg OracleConfig) repo.OracleRepo {
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = defaultOracleModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultOracleTimeout
	}

	return &oracleRepo{
		client:  openai.NewClientWithConfig(config),
		model:   model,
		timeout: timeout,
	}
}

// Classify sends the prompt and parses a Yes/No verdict from the first word of the answer
func (r *oracleRepo) Classify(ctx context.Context, prompt string) (domain.Verdict, error) {
	answer, err := r.chat(ctx, prompt, 10)
	if err != nil {
		return domain.VerdictUndetermined, err
	}
	return domain.ParseVerdict(answer), nil
}

// Complete sends the prompt and returns the first answer
func (r *oracleRepo) Complete(ctx context.Context, prompt string) (string, error) {
	return r.chat(ctx, prompt, 0)
}

func (r *oracleRepo) chat(ctx context.Context, prompt string, maxTokens int) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	resp, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: r.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens: maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response choices")
	}

	return resp.Choices[0].Message.Content, nil
}

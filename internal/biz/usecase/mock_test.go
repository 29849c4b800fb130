package usecase

import (
	"context"
	"errors"
	"sync"

	"github.com/alutalk/channel/internal/biz/domain"
)

// Mock implementations

type stubOracle struct {
	answers     []string // consumed in order, the last one repeats
	completion  string
	completeErr error
	classifyErr error

	classifyCalls int
	prompts       []string
}

func (s *stubOracle) Classify(ctx context.Context, prompt string) (domain.Verdict, error) {
	s.classifyCalls++
	s.prompts = append(s.prompts, prompt)
	if s.classifyErr != nil {
		return domain.VerdictUndetermined, s.classifyErr
	}
	if len(s.answers) == 0 {
		return domain.VerdictUndetermined, nil
	}
	i := s.classifyCalls - 1
	if i >= len(s.answers) {
		i = len(s.answers) - 1
	}
	return domain.ParseVerdict(s.answers[i]), nil
}

func (s *stubOracle) Complete(ctx context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if s.completeErr != nil {
		return "", s.completeErr
	}
	return s.completion, nil
}

type memoryMessageRepo struct {
	mu       sync.Mutex
	messages []domain.Message
	saves    int
	err      error
}

func (m *memoryMessageRepo) Load(ctx context.Context) ([]domain.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Message(nil), m.messages...), nil
}

func (m *memoryMessageRepo) Update(ctx context.Context, fn func([]domain.Message) ([]domain.Message, error)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	next, err := fn(append([]domain.Message(nil), m.messages...))
	if err != nil {
		return err
	}
	m.messages = next
	m.saves++
	return nil
}

type stubWordList struct {
	words map[string]struct{}
	err   error
	calls int
}

func (s *stubWordList) BadWords(ctx context.Context) (map[string]struct{}, error) {
	s.calls++
	return s.words, s.err
}

func wordSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

type memoryAuditRepo struct {
	events []domain.ModerationEvent
	err    error
}

func (m *memoryAuditRepo) Record(ctx context.Context, event domain.ModerationEvent) error {
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, event)
	return nil
}

func (m *memoryAuditRepo) List(ctx context.Context, limit int) ([]domain.ModerationEvent, error) {
	return m.events, nil
}

func (m *memoryAuditRepo) Close() error { return nil }

var errOracleDown = errors.New("oracle unreachable")

package data

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/alutalk/channel/internal/biz/domain"
	"github.com/alutalk/channel/internal/biz/repo"
)

// fileStore implements the message repository on a single JSON file
type fileStore struct {
	path   string
	logger *slog.Logger

	// Serializes every load-modify-save in this process
	mu sync.Mutex
}

// NewFileStore creates a message repository backed by the JSON file at path
func NewFileStore(path string, logger *slog.Logger) (repo.MessageRepo, error) {
	if path == "" {
		return nil, fmt.Errorf("message file path is empty")
	}
	if logger == nil {
		logger = slog.Default()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	return &fileStore{path: path, logger: logger}, nil
}

// Load returns all stored messages
func (s *fileStore) Load(ctx context.Context) ([]domain.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

// Update loads the store, applies fn and rewrites the whole file
func (s *fileStore) Update(ctx context.Context, fn func([]domain.Message) ([]domain.Message, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	messages, err := s.read()
	if err != nil {
		return err
	}

	next, err := fn(messages)
	if err != nil {
		return err
	}
	return s.write(next)
}

// read treats a missing file as empty. A file that cannot be parsed is
// moved aside so its content survives, and the store starts over empty.
func (s *fileStore) read() ([]domain.Message, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []domain.Message{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read messages: %w", err)
	}

	var messages []domain.Message
	if err := json.Unmarshal(raw, &messages); err != nil {
		backup := fmt.Sprintf("%s.corrupt-%d", s.path, time.Now().UnixNano())
		if renameErr := os.Rename(s.path, backup); renameErr != nil {
			return nil, fmt.Errorf("message file is corrupt and could not be moved aside: %w", renameErr)
		}
		s.logger.Error("message file is corrupt, starting with an empty store",
			"path", s.path, "backup", backup, "error", err)
		return []domain.Message{}, nil
	}
	if messages == nil {
		messages = []domain.Message{}
	}
	return messages, nil
}

// write replaces the file atomically
func (s *fileStore) write(messages []domain.Message) error {
	if messages == nil {
		messages = []domain.Message{}
	}

	raw, err := json.Marshal(messages)
	if err != nil {
		return fmt.Errorf("failed to encode messages: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write messages: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace message file: %w", err)
	}
	return nil
}

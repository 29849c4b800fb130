package data

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/alutalk/channel/internal/biz/repo"
)

// DefaultProfanityURL is the remote newline-delimited bad-word list
const DefaultProfanityURL = "https://raw.githubusercontent.com/censor-text/profanity-list/refs/heads/main/list/en.txt"

// wordListRepo implements the word list repository.
// The remote list is fetched once and kept in a local cache file with no expiry.
type wordListRepo struct {
	url        string
	cachePath  string
	httpClient *http.Client
	logger     *slog.Logger

	mu    sync.Mutex
	words map[string]struct{}
}

// NewWordListRepo creates a word list repository
func NewWordListRepo(url, cachePath string, logger *slog.Logger) repo.WordListRepo {
	if url == "" {
		url = DefaultProfanityURL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &wordListRepo{
		url:       url,
		cachePath: cachePath,
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
		logger: logger,
	}
}

// BadWords returns the bad-word set, loading it from the cache file or the remote list on first use
func (r *wordListRepo) BadWords(ctx context.Context) (map[string]struct{}, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.words != nil {
		return r.words, nil
	}

	if raw, err := r.readCache(); err == nil {
		r.words = parseWordList(raw)
		r.logger.Info("bad-word list loaded from cache", "path", r.cachePath, "words", len(r.words))
		return r.words, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		r.logger.Warn("bad-word cache unreadable, fetching list", "path", r.cachePath, "error", err)
	}

	raw, err := r.fetch(ctx)
	if err != nil {
		return nil, err
	}

	if err := r.writeCache(raw); err != nil {
		r.logger.Warn("failed to cache bad-word list", "path", r.cachePath, "error", err)
	}

	r.words = parseWordList(raw)
	r.logger.Info("bad-word list fetched", "url", r.url, "words", len(r.words))
	return r.words, nil
}

func (r *wordListRepo) fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.url, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch bad-word list: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch bad-word list: unexpected status %s", resp.Status)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read bad-word list: %w", err)
	}
	return raw, nil
}

func (r *wordListRepo) readCache() ([]byte, error) {
	if r.cachePath == "" {
		return nil, fs.ErrNotExist
	}
	return os.ReadFile(r.cachePath)
}

func (r *wordListRepo) writeCache(raw []byte) error {
	if r.cachePath == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(r.cachePath), 0755); err != nil {
		return err
	}
	return os.WriteFile(r.cachePath, raw, 0644)
}

// parseWordList splits a newline-delimited list, dropping blank lines
func parseWordList(raw []byte) map[string]struct{} {
	lines := strings.Split(string(raw), "\n")
	words := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		word := strings.TrimSpace(line)
		if word == "" {
			continue
		}
		words[word] = struct{}{}
	}
	return words
}

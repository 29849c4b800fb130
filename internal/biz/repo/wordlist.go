package repo

import "context"

// WordListRepo provides the bad-word set used by the profanity masker
type WordListRepo interface {
	// BadWords returns the case-sensitive bad-word set
	// An error means the list is unavailable and filtering should be skipped
	BadWords(ctx context.Context) (map[string]struct{}, error)
}

package usecase

import (
	"context"
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/alutalk/channel/internal/biz/repo"
)

// DefaultMaskChar replaces every character of a bad word
const DefaultMaskChar = '*'

// ProfanityUsecase masks bad words with a run of mask characters of the same length
type ProfanityUsecase struct {
	wordList repo.WordListRepo
	maskChar rune
	logger   *slog.Logger
}

// NewProfanityUsecase creates a new profanity masker
func NewProfanityUsecase(wordList repo.WordListRepo, maskChar rune, logger *slog.Logger) *ProfanityUsecase {
	if maskChar == 0 {
		maskChar = DefaultMaskChar
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ProfanityUsecase{
		wordList: wordList,
		maskChar: maskChar,
		logger:   logger,
	}
}

// Mask replaces every whitespace-delimited token that exactly matches a bad word.
// Whitespace is kept as is. If the word list is unavailable the text is returned unchanged.
func (uc *ProfanityUsecase) Mask(ctx context.Context, text string) (string, int) {
	if uc.wordList == nil || text == "" {
		return text, 0
	}

	words, err := uc.wordList.BadWords(ctx)
	if err != nil {
		uc.logger.Warn("bad-word list unavailable, skipping profanity filter", "error", err)
		return text, 0
	}
	if len(words) == 0 {
		return text, 0
	}

	var b strings.Builder
	b.Grow(len(text))

	masked := 0
	start := -1
	flush := func(end int) {
		token := text[start:end]
		if uc.isBadWord(words, token) {
			b.WriteString(strings.Repeat(string(uc.maskChar), utf8.RuneCountInString(token)))
			masked++
		} else {
			b.WriteString(token)
		}
		start = -1
	}

	for i, r := range text {
		if unicode.IsSpace(r) {
			if start >= 0 {
				flush(i)
			}
			b.WriteRune(r)
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		flush(len(text))
	}

	return b.String(), masked
}

// isBadWord ignores entries made only of mask characters so masking stays idempotent
func (uc *ProfanityUsecase) isBadWord(words map[string]struct{}, token string) bool {
	if _, ok := words[token]; !ok {
		return false
	}
	return strings.Trim(token, string(uc.maskChar)) != ""
}

package domain

import (
	"strings"
	"unicode"
)

// Verdict is the outcome of a single topic classification attempt
type Verdict int

const (
	VerdictUndetermined Verdict = iota
	VerdictYes
	VerdictNo
)

func (v Verdict) String() string {
	switch v {
	case VerdictYes:
		return "yes"
	case VerdictNo:
		return "no"
	default:
		return "undetermined"
	}
}

// ParseVerdict reads the first word of an oracle response, ignoring case and punctuation
func ParseVerdict(response string) Verdict {
	fields := strings.Fields(response)
	if len(fields) == 0 {
		return VerdictUndetermined
	}

	word := strings.TrimFunc(fields[0], func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	switch strings.ToLower(word) {
	case "yes":
		return VerdictYes
	case "no":
		return VerdictNo
	default:
		return VerdictUndetermined
	}
}

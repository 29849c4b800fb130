package domain

import (
	"time"

	"github.com/samber/lo"
)

// DefaultRetentionWindow is how long a message stays in the channel
const DefaultRetentionWindow = 25 * time.Hour

// RetentionResult describes one retention pass
type RetentionResult struct {
	Kept        []Message
	Evicted     int
	Unparseable []Message // kept, their age is unknown
}

// ApplyRetention drops messages older than window relative to now, keeping order.
// Messages whose timestamp cannot be parsed are kept and reported.
func ApplyRetention(messages []Message, now time.Time, window time.Duration) RetentionResult {
	var result RetentionResult

	result.Kept = lo.Filter(messages, func(m Message, _ int) bool {
		t, err := m.Time(now.Location())
		if err != nil {
			result.Unparseable = append(result.Unparseable, m)
			return true
		}
		if now.Sub(t) > window {
			result.Evicted++
			return false
		}
		return true
	})

	return result
}

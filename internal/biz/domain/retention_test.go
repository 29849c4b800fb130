package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestApplyRetention(t *testing.T) {
	req := require.New(t)
	now := time.Date(2024, 5, 2, 12, 0, 0, 0, time.UTC)
	at := func(d time.Duration) string { return FormatTimestamp(now.Add(-d)) }

	messages := []Message{
		{Content: "old", Sender: "a", Timestamp: at(30 * time.Hour)},
		{Content: "fresh", Sender: "b", Timestamp: at(time.Hour)},
		{Content: "edge", Sender: "c", Timestamp: at(25 * time.Hour)},
		{Content: "just past", Sender: "d", Timestamp: at(25*time.Hour + time.Second)},
		{Content: "newer", Sender: "e", Timestamp: at(0)},
	}

	res := ApplyRetention(messages, now, DefaultRetentionWindow)

	req.Equal(2, res.Evicted)
	req.Empty(res.Unparseable)
	req.Equal([]string{"fresh", "edge", "newer"}, contents(res.Kept))
}

func TestApplyRetention_KeepsUnparseable(t *testing.T) {
	req := require.New(t)
	now := time.Date(2024, 5, 2, 12, 0, 0, 0, time.UTC)

	messages := []Message{
		{Content: "broken", Sender: "a", Timestamp: "last tuesday"},
		{Content: "old", Sender: "b", Timestamp: "2024-04-01T00:00:00Z"},
	}

	res := ApplyRetention(messages, now, DefaultRetentionWindow)

	req.Equal(1, res.Evicted)
	req.Len(res.Unparseable, 1)
	req.Equal([]string{"broken"}, contents(res.Kept))
}

func TestApplyRetention_Empty(t *testing.T) {
	res := ApplyRetention(nil, time.Now(), DefaultRetentionWindow)
	require.NotNil(t, res.Kept)
	require.Empty(t, res.Kept)
}

func contents(messages []Message) []string {
	out := make([]string, len(messages))
	for i, m := range messages {
		out[i] = m.Content
	}
	return out
}

package domain

import "time"

// ModerationAction is what the pipeline did with an inbound message
type ModerationAction string

const (
	ActionAssistant ModerationAction = "assistant"
	ActionAccepted  ModerationAction = "accepted"
	ActionRejected  ModerationAction = "rejected"
)

// ModerationEvent is one audit record of a moderation decision
type ModerationEvent struct {
	ID           int64            `json:"id"`
	CreatedAt    time.Time        `json:"created_at"`
	Sender       string           `json:"sender"`
	Action       ModerationAction `json:"action"`
	MaskedTokens int              `json:"masked_tokens"`
	Attempts     int              `json:"attempts"`
	Fallback     bool             `json:"fallback"`
}

// ChannelInfo is what a channel announces to the hub
type ChannelInfo struct {
	Name          string `json:"name"`
	Endpoint      string `json:"endpoint"`
	AuthKey       string `json:"authkey"`
	TypeOfService string `json:"type_of_service"`
}

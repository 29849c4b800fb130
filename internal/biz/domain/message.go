package domain

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// AssistantSender is the sender of replies and notices produced by the channel itself
const AssistantSender = "Assistant"

// ServerSender is the sender of the welcome message prepended to listings
const ServerSender = "Server"

// Ingestion errors
var (
	ErrMissingContent   = errors.New("no content")
	ErrMissingSender    = errors.New("no sender")
	ErrMissingTimestamp = errors.New("no timestamp")
	ErrInvalidTimestamp = errors.New("invalid timestamp")
)

// Message represents a message posted to the channel
type Message struct {
	Content   string          `json:"content" validate:"required"`
	Sender    string          `json:"sender" validate:"required"`
	Timestamp string          `json:"timestamp" validate:"required,iso8601"`
	Extra     json.RawMessage `json:"extra"`
}

// IsAssistantCommand checks if the content starts with the given command prefix, ignoring case
func (m *Message) IsAssistantCommand(prefix string) bool {
	if prefix == "" {
		return false
	}
	return strings.HasPrefix(strings.ToLower(m.Content), strings.ToLower(prefix))
}

// Time parses the message timestamp, reading naive values in loc
func (m *Message) Time(loc *time.Location) (time.Time, error) {
	return ParseTimestamp(m.Timestamp, loc)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("iso8601", func(fl validator.FieldLevel) bool {
		_, err := ParseTimestamp(fl.Field().String(), time.Local)
		return err == nil
	})
	return v
}

// ValidateMessage checks the ingestion invariants of an inbound message.
// The first failing field wins, in content, sender, timestamp order.
func ValidateMessage(m Message) error {
	err := validate.Struct(m)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}

	fe := fieldErrs[0]
	switch fe.Field() {
	case "Content":
		return ErrMissingContent
	case "Sender":
		return ErrMissingSender
	case "Timestamp":
		if fe.Tag() == "iso8601" {
			return ErrInvalidTimestamp
		}
		return ErrMissingTimestamp
	}
	return err
}

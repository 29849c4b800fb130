package usecase

import "errors"

// ErrAuditDisabled is returned when no audit log is configured
var ErrAuditDisabled = errors.New("moderation audit log disabled")

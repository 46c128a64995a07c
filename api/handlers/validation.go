package handlers

import (
	"fmt"
	"strings"
	"time"

	"github.com/mergington-high/school-api/models"
)

// ValidationKind enumerates the categories of payload validation failure
type ValidationKind string

// The validation failure kinds surfaced as client errors
const (
	MissingField   ValidationKind = "missing_field"
	InvalidDate    ValidationKind = "invalid_date"
	InvalidRange   ValidationKind = "invalid_range"
	EmptyMessage   ValidationKind = "empty_message"
	MessageTooLong ValidationKind = "message_too_long"
)

// ValidationError reports a rejected field along with the kind of failure so
// the boundary layer can surface a descriptive message
type ValidationError struct {
	Kind  ValidationKind
	Field string
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case MissingField:
		return fmt.Sprintf("%s is required", e.Field)
	case InvalidDate:
		return fmt.Sprintf("%s must be a valid ISO date", e.Field)
	case InvalidRange:
		return "start_date must be before expiration_date"
	case EmptyMessage:
		return "message must not be empty or contain only whitespace"
	case MessageTooLong:
		return fmt.Sprintf("message must be at most %d characters", maxMessageLength)
	}
	return fmt.Sprintf("invalid %s", e.Field)
}

// maxMessageLength bounds the announcement message after trimming
const maxMessageLength = 500

// isoDateLayouts are tried in order; offset-less layouts are read as UTC. A
// trailing "Z" parses the same as an explicit "+00:00" offset.
var isoDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseDate parses an optional ISO-8601 date string. A nil value is fine
// unless required is set, in which case it fails with MissingField.
func ParseDate(value *string, field string, required bool) (*time.Time, error) {
	if value == nil {
		if required {
			return nil, &ValidationError{Kind: MissingField, Field: field}
		}
		return nil, nil
	}
	for _, layout := range isoDateLayouts {
		t, err := time.ParseInLocation(layout, *value, time.UTC)
		if err == nil {
			return &t, nil
		}
	}
	return nil, &ValidationError{Kind: InvalidDate, Field: field}
}

// NormalizeMessage trims surrounding whitespace and rejects blank or
// oversized messages
func NormalizeMessage(message string) (string, error) {
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return "", &ValidationError{Kind: EmptyMessage, Field: "message"}
	}
	if len([]rune(trimmed)) > maxMessageLength {
		return "", &ValidationError{Kind: MessageTooLong, Field: "message"}
	}
	return trimmed, nil
}

// upsertFields holds a validated create/update payload
type upsertFields struct {
	message        string
	startDate      *time.Time
	expirationDate time.Time
}

// validateUpsert applies the full payload contract shared by create and
// update: optional start_date, required expiration_date, the strict
// start < expiration window, and the message rules.
func validateUpsert(payload models.AnnouncementUpsert) (*upsertFields, error) {
	startDate, err := ParseDate(payload.StartDate, "start_date", false)
	if err != nil {
		return nil, err
	}
	expirationDate, err := ParseDate(payload.ExpirationDate, "expiration_date", true)
	if err != nil {
		return nil, err
	}
	if startDate != nil && !startDate.Before(*expirationDate) {
		return nil, &ValidationError{Kind: InvalidRange, Field: "start_date"}
	}
	message, err := NormalizeMessage(payload.Message)
	if err != nil {
		return nil, err
	}
	return &upsertFields{
		message:        message,
		startDate:      startDate,
		expirationDate: *expirationDate,
	}, nil
}

// Package reminder contains the reminder creation validator and the
// delivery dispatcher. The validator is shared by every creation path
// (web form, JSON API, chat command) so all of them reject input the
// same way.
package reminder

import (
	"errors"
	"strings"
	"time"
)

// Date and time layouts accepted from users, combined into a single
// timestamp. These match the /remind command format advertised by the bot:
// YYYY-MM-DD HH:MM.
const (
	DateLayout     = "2006-01-02"
	TimeLayout     = "15:04"
	DateTimeLayout = DateLayout + " " + TimeLayout
)

// Validation errors surfaced to callers as a rejected creation with a
// human-readable reason.
var (
	// ErrMalformedInput indicates the date/time could not be parsed or the
	// recipient identifier is missing.
	ErrMalformedInput = errors.New("malformed reminder input")

	// ErrPastDue indicates the reminder's due time is not strictly in the
	// future.
	ErrPastDue = errors.New("reminder date must be in the future")

	// ErrEmptyMessage indicates the reminder message is blank after trimming.
	ErrEmptyMessage = errors.New("reminder message is empty")
)

// Draft is a validated reminder-to-be, ready for persistence.
type Draft struct {
	ChatID  string
	Message string
	DueAt   time.Time
}

// ParseDraft validates raw reminder input and produces a Draft. It is a
// pure function of its inputs and the supplied current time: the combined
// date and time must parse with DateTimeLayout (interpreted in now's
// location), the result must be strictly after now, and the message must
// be non-blank.
func ParseDraft(chatID, message, dateStr, timeStr string, now time.Time) (Draft, error) {
	if strings.TrimSpace(chatID) == "" {
		return Draft{}, ErrMalformedInput
	}

	dueAt, err := time.ParseInLocation(DateTimeLayout,
		strings.TrimSpace(dateStr)+" "+strings.TrimSpace(timeStr), now.Location())
	if err != nil {
		return Draft{}, ErrMalformedInput
	}

	if !dueAt.After(now) {
		return Draft{}, ErrPastDue
	}

	message = strings.TrimSpace(message)
	if message == "" {
		return Draft{}, ErrEmptyMessage
	}

	return Draft{
		ChatID:  strings.TrimSpace(chatID),
		Message: message,
		DueAt:   dueAt,
	}, nil
}

package reminder_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"remindbot/internal/reminder"
)

func TestParseDraft(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 12, 24, 10, 0, 0, 0, time.UTC)

	testCases := []struct {
		name    string
		chatID  string
		message string
		date    string
		timeStr string
		wantErr error
		wantDue time.Time
	}{
		{
			name:    "valid future reminder",
			chatID:  "12345",
			message: "Merry Christmas!",
			date:    "2024-12-25",
			timeStr: "10:00",
			wantDue: time.Date(2024, 12, 25, 10, 0, 0, 0, time.UTC),
		},
		{
			name:    "valid one minute ahead",
			chatID:  "12345",
			message: "soon",
			date:    "2024-12-24",
			timeStr: "10:01",
			wantDue: time.Date(2024, 12, 24, 10, 1, 0, 0, time.UTC),
		},
		{
			name:    "message surrounded by whitespace",
			chatID:  "12345",
			message: "  trimmed  ",
			date:    "2024-12-25",
			timeStr: "10:00",
			wantDue: time.Date(2024, 12, 25, 10, 0, 0, 0, time.UTC),
		},
		{
			name:    "unparsable date",
			chatID:  "12345",
			message: "hello",
			date:    "25-12-2024",
			timeStr: "10:00",
			wantErr: reminder.ErrMalformedInput,
		},
		{
			name:    "unparsable time",
			chatID:  "12345",
			message: "hello",
			date:    "2024-12-25",
			timeStr: "10am",
			wantErr: reminder.ErrMalformedInput,
		},
		{
			name:    "empty chat id",
			chatID:  "   ",
			message: "hello",
			date:    "2024-12-25",
			timeStr: "10:00",
			wantErr: reminder.ErrMalformedInput,
		},
		{
			name:    "due time in the past",
			chatID:  "12345",
			message: "too late",
			date:    "2024-12-23",
			timeStr: "10:00",
			wantErr: reminder.ErrPastDue,
		},
		{
			name:    "due time equal to now is rejected",
			chatID:  "12345",
			message: "right now",
			date:    "2024-12-24",
			timeStr: "10:00",
			wantErr: reminder.ErrPastDue,
		},
		{
			name:    "empty message",
			chatID:  "12345",
			message: "",
			date:    "2024-12-25",
			timeStr: "10:00",
			wantErr: reminder.ErrEmptyMessage,
		},
		{
			name:    "whitespace-only message",
			chatID:  "12345",
			message: "   \t  ",
			date:    "2024-12-25",
			timeStr: "10:00",
			wantErr: reminder.ErrEmptyMessage,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			draft, err := reminder.ParseDraft(tc.chatID, tc.message, tc.date, tc.timeStr, now)

			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("ParseDraft() error = %v, want %v", err, tc.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("ParseDraft() unexpected error: %v", err)
			}
			if !draft.DueAt.Equal(tc.wantDue) {
				t.Errorf("DueAt = %v, want %v", draft.DueAt, tc.wantDue)
			}
			if draft.ChatID != "12345" {
				t.Errorf("ChatID = %q, want %q", draft.ChatID, "12345")
			}
			if want := strings.TrimSpace(tc.message); draft.Message != want {
				t.Errorf("Message = %q, want trimmed input %q", draft.Message, want)
			}
		})
	}
}

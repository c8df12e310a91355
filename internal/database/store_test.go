package database_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"remindbot/internal/database"
)

// newTestStore opens a fresh SQLite database in a temp directory and runs
// the production migrations against it.
func newTestStore(t *testing.T) database.Store {
	t.Helper()

	db, err := database.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewDB() failed: %v", err)
	}
	t.Cleanup(func() { database.CloseDB(db) })

	return database.NewStore(db, nil)
}

func TestCreateReminderAndListByRecipient(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	due := time.Date(2030, 12, 25, 10, 0, 0, 0, time.UTC)
	rec := &database.Reminder{
		ChatID:  "12345",
		Message: "Merry Christmas!",
		DueAt:   due,
	}
	if err := store.CreateReminder(ctx, rec); err != nil {
		t.Fatalf("CreateReminder() failed: %v", err)
	}
	if rec.ID == 0 {
		t.Fatal("CreateReminder() did not assign an ID")
	}

	reminders, err := store.ListByRecipient(ctx, "12345")
	if err != nil {
		t.Fatalf("ListByRecipient() failed: %v", err)
	}
	if len(reminders) != 1 {
		t.Fatalf("ListByRecipient() returned %d reminders, want 1", len(reminders))
	}

	got := reminders[0]
	if got.ID != rec.ID {
		t.Errorf("ID = %d, want %d", got.ID, rec.ID)
	}
	if got.ChatID != "12345" {
		t.Errorf("ChatID = %q, want %q", got.ChatID, "12345")
	}
	if got.Message != "Merry Christmas!" {
		t.Errorf("Message = %q, want %q", got.Message, "Merry Christmas!")
	}
	if !got.DueAt.Equal(due) {
		t.Errorf("DueAt = %v, want %v", got.DueAt, due)
	}
	if got.Sent {
		t.Error("new reminder must have Sent=false")
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt was not set")
	}
}

func TestCreateReminderRejectsInvalidInput(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()
	due := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	testCases := []struct {
		name string
		rec  *database.Reminder
	}{
		{name: "nil reminder", rec: nil},
		{name: "missing chat id", rec: &database.Reminder{Message: "hi", DueAt: due}},
		{name: "missing message", rec: &database.Reminder{ChatID: "1", DueAt: due}},
		{name: "zero due time", rec: &database.Reminder{ChatID: "1", Message: "hi"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if err := store.CreateReminder(ctx, tc.rec); err == nil {
				t.Error("CreateReminder() succeeded, want error")
			}
		})
	}
}

func TestListByRecipientOrdersByDueTime(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	// Insert out of order; listing must come back due_at ascending.
	times := []time.Time{
		time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC),
		time.Date(2030, 1, 1, 9, 0, 0, 0, time.UTC),
		time.Date(2030, 3, 15, 18, 30, 0, 0, time.UTC),
	}
	for i, due := range times {
		rec := &database.Reminder{ChatID: "42", Message: "m", DueAt: due}
		if err := store.CreateReminder(ctx, rec); err != nil {
			t.Fatalf("CreateReminder(%d) failed: %v", i, err)
		}
	}
	// A reminder for another chat must not appear.
	other := &database.Reminder{ChatID: "99", Message: "other", DueAt: times[0]}
	if err := store.CreateReminder(ctx, other); err != nil {
		t.Fatalf("CreateReminder(other) failed: %v", err)
	}

	reminders, err := store.ListByRecipient(ctx, "42")
	if err != nil {
		t.Fatalf("ListByRecipient() failed: %v", err)
	}
	if len(reminders) != 3 {
		t.Fatalf("got %d reminders, want 3", len(reminders))
	}
	for i := 1; i < len(reminders); i++ {
		if reminders[i].DueAt.Before(reminders[i-1].DueAt) {
			t.Errorf("reminders out of order at index %d: %v before %v",
				i, reminders[i].DueAt, reminders[i-1].DueAt)
		}
	}
}

func TestListDueUnsentFiltersByDueTimeAndSentFlag(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	asOf := time.Date(2030, 6, 15, 12, 0, 0, 0, time.UTC)

	pastDue := &database.Reminder{ChatID: "1", Message: "past due", DueAt: asOf.Add(-time.Hour)}
	exactlyDue := &database.Reminder{ChatID: "1", Message: "exactly due", DueAt: asOf}
	future := &database.Reminder{ChatID: "1", Message: "future", DueAt: asOf.Add(time.Hour)}
	alreadySent := &database.Reminder{ChatID: "1", Message: "already sent", DueAt: asOf.Add(-2 * time.Hour)}

	for _, rec := range []*database.Reminder{pastDue, exactlyDue, future, alreadySent} {
		if err := store.CreateReminder(ctx, rec); err != nil {
			t.Fatalf("CreateReminder(%q) failed: %v", rec.Message, err)
		}
	}
	if err := store.MarkSent(ctx, alreadySent.ID); err != nil {
		t.Fatalf("MarkSent() failed: %v", err)
	}

	due, err := store.ListDueUnsent(ctx, asOf)
	if err != nil {
		t.Fatalf("ListDueUnsent() failed: %v", err)
	}

	got := make(map[int64]bool, len(due))
	for _, r := range due {
		got[r.ID] = true
		if r.Sent {
			t.Errorf("ListDueUnsent() returned sent reminder %d", r.ID)
		}
	}

	if len(due) != 2 {
		t.Fatalf("ListDueUnsent() returned %d reminders, want 2", len(due))
	}
	if !got[pastDue.ID] {
		t.Error("past-due reminder missing from result")
	}
	if !got[exactlyDue.ID] {
		t.Error("exactly-due reminder missing from result")
	}
	if got[future.ID] {
		t.Error("future reminder must not be returned")
	}
	if got[alreadySent.ID] {
		t.Error("sent reminder must not be returned")
	}
}

func TestMarkSentIsIdempotent(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	rec := &database.Reminder{
		ChatID:  "7",
		Message: "once",
		DueAt:   time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := store.CreateReminder(ctx, rec); err != nil {
		t.Fatalf("CreateReminder() failed: %v", err)
	}

	if err := store.MarkSent(ctx, rec.ID); err != nil {
		t.Fatalf("first MarkSent() failed: %v", err)
	}
	if err := store.MarkSent(ctx, rec.ID); err != nil {
		t.Fatalf("second MarkSent() failed: %v", err)
	}

	reminders, err := store.ListByRecipient(ctx, "7")
	if err != nil {
		t.Fatalf("ListByRecipient() failed: %v", err)
	}
	if len(reminders) != 1 || !reminders[0].Sent {
		t.Fatalf("reminder not in sent state after double MarkSent: %+v", reminders)
	}
}

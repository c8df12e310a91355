package database

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
)

// Store defines the interface for reminder persistence. Methods accept a
// context.Context for cancellation and timeouts.
type Store interface {
	// Ping checks the database connection.
	Ping(ctx context.Context) error

	// CreateReminder inserts a new reminder record with Sent=false and
	// assigns its generated ID.
	CreateReminder(ctx context.Context, reminder *Reminder) error

	// ListByRecipient retrieves all reminders for a chat, ordered by due
	// time ascending (ties broken by id ascending).
	ListByRecipient(ctx context.Context, chatID string) ([]Reminder, error)

	// ListDueUnsent retrieves every unsent reminder whose due time is at or
	// before asOf, ordered by due time then id for determinism.
	ListDueUnsent(ctx context.Context, asOf time.Time) ([]Reminder, error)

	// MarkSent flips a reminder's sent flag. Marking an already-sent
	// reminder is a no-op, not an error.
	MarkSent(ctx context.Context, id int64) error
}

// sqlxStore provides an implementation of the Store interface using sqlx.
type sqlxStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStore creates a new Store implementation backed by sqlx.
// It requires a connected sqlx.DB instance and a logger.
func NewStore(db *sqlx.DB, logger *slog.Logger) Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &sqlxStore{
		db:     db,
		logger: logger.With("component", "store"),
	}
}

// Ping checks the database connection.
func (s *sqlxStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// CreateReminder inserts a new reminder record.
func (s *sqlxStore) CreateReminder(ctx context.Context, reminder *Reminder) error {
	if reminder == nil {
		return fmt.Errorf("cannot save nil reminder")
	}
	if reminder.ChatID == "" {
		return fmt.Errorf("reminder must have a non-empty chat_id")
	}
	if reminder.Message == "" {
		return fmt.Errorf("reminder must have a non-empty message")
	}
	if reminder.DueAt.IsZero() {
		return fmt.Errorf("reminder must have a non-zero due time")
	}

	if reminder.CreatedAt.IsZero() {
		reminder.CreatedAt = time.Now().UTC()
	}
	// Timestamps are stored in UTC so due-time comparisons in SQL are
	// consistent regardless of the server's local zone.
	reminder.DueAt = reminder.DueAt.UTC()
	reminder.CreatedAt = reminder.CreatedAt.UTC()
	reminder.Sent = false

	query := `
        INSERT INTO reminders (chat_id, message, due_at, sent, created_at)
        VALUES (:chat_id, :message, :due_at, :sent, :created_at);
    `

	result, err := s.db.NamedExecContext(ctx, query, reminder)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error saving reminder", "chat_id", reminder.ChatID, "error", err)
		return fmt.Errorf("failed to save reminder for chat %s: %w", reminder.ChatID, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		// Log if getting LastInsertId fails, but don't fail the operation
		s.logger.WarnContext(ctx, "Could not retrieve last insert ID after saving reminder",
			"chat_id", reminder.ChatID, "error", err)
	} else {
		reminder.ID = id
	}

	s.logger.DebugContext(ctx, "Reminder saved successfully",
		"chat_id", reminder.ChatID, "reminder_id", reminder.ID, "due_at", reminder.DueAt)
	return nil
}

// ListByRecipient retrieves all reminders for a chat. Ordering is by due_at
// ascending, then id ascending, so repeated calls return the same sequence.
func (s *sqlxStore) ListByRecipient(ctx context.Context, chatID string) ([]Reminder, error) {
	if chatID == "" {
		return nil, fmt.Errorf("chat_id cannot be empty")
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	reminders := []Reminder{}
	query := `
        SELECT id, chat_id, message, due_at, sent, created_at
        FROM reminders
        WHERE chat_id = ?
        ORDER BY due_at ASC, id ASC;
    `

	if err := s.db.SelectContext(ctx, &reminders, query, chatID); err != nil {
		s.logger.ErrorContext(ctx, "Error listing reminders", "chat_id", chatID, "error", err)
		return nil, fmt.Errorf("failed to list reminders for chat %s: %w", chatID, err)
	}

	s.logger.DebugContext(ctx, "Fetched reminders successfully", "chat_id", chatID, "count", len(reminders))
	return reminders, nil
}

// ListDueUnsent retrieves every reminder with sent=false and due_at <= asOf.
func (s *sqlxStore) ListDueUnsent(ctx context.Context, asOf time.Time) ([]Reminder, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	reminders := []Reminder{}
	query := `
        SELECT id, chat_id, message, due_at, sent, created_at
        FROM reminders
        WHERE sent = 0 AND due_at <= ?
        ORDER BY due_at ASC, id ASC;
    `

	if err := s.db.SelectContext(ctx, &reminders, query, asOf.UTC()); err != nil {
		s.logger.ErrorContext(ctx, "Error listing due reminders", "as_of", asOf, "error", err)
		return nil, fmt.Errorf("failed to list due reminders: %w", err)
	}

	s.logger.DebugContext(ctx, "Fetched due reminders", "as_of", asOf, "count", len(reminders))
	return reminders, nil
}

// MarkSent sets a reminder's sent flag. The update is idempotent: marking a
// reminder that is already sent affects no rows and returns nil.
func (s *sqlxStore) MarkSent(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("reminder id must be positive")
	}

	query := `UPDATE reminders SET sent = 1 WHERE id = ?;`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error marking reminder as sent", "reminder_id", id, "error", err)
		return fmt.Errorf("failed to mark reminder %d as sent: %w", id, err)
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		s.logger.DebugContext(ctx, "Reminder already marked as sent or missing", "reminder_id", id)
	}

	s.logger.DebugContext(ctx, "Reminder marked as sent", "reminder_id", id)
	return nil
}

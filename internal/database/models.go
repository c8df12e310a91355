package database

import "time"

// Reminder represents a scheduled message delivery. A reminder is created
// with Sent=false and flipped to true exactly once by the scanner after a
// successful delivery; records are never deleted by the bot itself and
// remain as history.
type Reminder struct {
	ID        int64     `db:"id"         json:"id"`
	ChatID    string    `db:"chat_id"    json:"chat_id"`
	Message   string    `db:"message"    json:"message"`
	DueAt     time.Time `db:"due_at"     json:"due_at"`
	Sent      bool      `db:"sent"       json:"sent"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Package handlers contains Telegram bot command handlers and their
// registration logic.
package handlers

import (
	"log/slog"
	"time"

	"remindbot/internal/config"
	"remindbot/internal/database"
)

// HandlerDeps provides dependencies for Telegram command handlers. Now is
// the clock used for due-time validation; tests substitute a fixed clock.
type HandlerDeps struct {
	Logger *slog.Logger
	Config *config.Config
	Store  database.Store
	Now    func() time.Time
}

func (d HandlerDeps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

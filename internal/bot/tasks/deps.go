// Package tasks implements the bot's scheduled tasks, their dependencies,
// and the registration mechanism the scheduler consumes.
package tasks

import (
	"log/slog"
	"time"

	"remindbot/internal/config"
	"remindbot/internal/database"
	"remindbot/internal/reminder"
)

// TaskDeps contains all dependencies required by scheduled tasks. Now is
// the clock used to capture the scan time; tests substitute a fake clock
// and a stub dispatcher to run a tick in isolation.
type TaskDeps struct {
	Logger     *slog.Logger
	Store      database.Store
	Dispatcher reminder.Dispatcher
	Config     *config.Config
	Now        func() time.Time
}

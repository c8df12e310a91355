package tasks

import (
	"context"
	"fmt"
	"time"
)

// newReminderScanTask creates the scheduled task that delivers due
// reminders. On each tick it captures the current time, fetches every
// unsent reminder due at or before it, and hands each one to the
// dispatcher. A successful delivery marks the record sent; a failed one
// leaves it unsent so the next tick picks it up again (at-least-once,
// retried forever until it succeeds or the record is cleared externally).
func newReminderScanTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", "reminder_scan")

	now := deps.Now
	if now == nil {
		now = time.Now
	}

	return func(ctx context.Context) error {
		scanTime := now()

		due, err := deps.Store.ListDueUnsent(ctx, scanTime)
		if err != nil {
			log.ErrorContext(ctx, "Failed to list due reminders", "error", err)
			return fmt.Errorf("reminder scan failed: %w", err)
		}

		if len(due) == 0 {
			return nil
		}

		log.InfoContext(ctx, "Found due reminders", "count", len(due), "as_of", scanTime)

		// Each reminder is processed independently; one delivery failure
		// must not abort the rest of the batch.
		var failed int
		for _, r := range due {
			if err := deps.Dispatcher.Send(ctx, r.ChatID, r.Message); err != nil {
				log.WarnContext(ctx, "Reminder delivery failed, will retry next tick",
					"reminder_id", r.ID, "chat_id", r.ChatID, "error", err)
				failed++
				continue
			}

			if err := deps.Store.MarkSent(ctx, r.ID); err != nil {
				// Delivery succeeded but the flag didn't stick; the next
				// tick will re-deliver. Acceptable under at-least-once
				// semantics.
				log.ErrorContext(ctx, "Failed to mark reminder as sent",
					"reminder_id", r.ID, "error", err)
				failed++
				continue
			}

			log.InfoContext(ctx, "Reminder sent", "reminder_id", r.ID, "chat_id", r.ChatID)
		}

		if failed > 0 {
			log.WarnContext(ctx, "Reminder scan finished with failures",
				"total", len(due), "failed", failed)
		}
		return nil
	}
}

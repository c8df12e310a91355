package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	tgbot "github.com/go-telegram/bot"
)

// Dispatcher delivers a reminder message to a recipient. Implementations
// return any transport-level failure to the caller instead of retrying
// internally; the scanner's next tick is the only retry mechanism.
type Dispatcher interface {
	Send(ctx context.Context, chatID, message string) error
}

// TelegramDispatcher sends reminder messages through the Telegram Bot API.
type TelegramDispatcher struct {
	bot    *tgbot.Bot
	logger *slog.Logger
}

// NewTelegramDispatcher creates a Dispatcher backed by a Telegram bot
// instance.
func NewTelegramDispatcher(b *tgbot.Bot, logger *slog.Logger) *TelegramDispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &TelegramDispatcher{
		bot:    b,
		logger: logger.With("component", "dispatcher"),
	}
}

// Send delivers a single reminder message to the given chat. The chat
// identifier is the numeric Telegram chat ID in string form, as stored in
// the reminder record.
func (d *TelegramDispatcher) Send(ctx context.Context, chatID, message string) error {
	numericID, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid chat id %q: %w", chatID, err)
	}

	_, err = d.bot.SendMessage(ctx, &tgbot.SendMessageParams{
		ChatID: numericID,
		Text:   fmt.Sprintf("🔔 Reminder!\n\n%s", message),
	})
	if err != nil {
		d.logger.WarnContext(ctx, "Failed to deliver reminder", "chat_id", chatID, "error", err)
		return fmt.Errorf("failed to send reminder to chat %s: %w", chatID, err)
	}

	d.logger.DebugContext(ctx, "Reminder delivered", "chat_id", chatID)
	return nil
}

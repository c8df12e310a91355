package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"remindbot/internal/reminder"
)

// NewListHandler returns a handler for the /list command, which shows the
// caller's reminders with due time and delivery status.
func NewListHandler(deps HandlerDeps) bot.HandlerFunc {
	return listHandler{deps}.Handle
}

type listHandler struct {
	deps HandlerDeps
}

func (h listHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "list")

	if update.Message == nil || update.Message.From == nil {
		log.WarnContext(ctx, "List handler received update with nil message or sender", "update_id", update.ID)
		return
	}

	chatID := update.Message.Chat.ID
	log.InfoContext(ctx, "Handling /list command", "chat_id", chatID, "user_id", update.Message.From.ID)

	reminders, err := h.deps.Store.ListByRecipient(ctx, strconv.FormatInt(chatID, 10))
	if err != nil {
		log.ErrorContext(ctx, "Failed to list reminders", "chat_id", chatID, "error", err)
		h.reply(ctx, b, chatID, h.deps.Config.Messages.GeneralError)
		return
	}

	if len(reminders) == 0 {
		h.reply(ctx, b, chatID, h.deps.Config.Messages.NoReminders)
		return
	}

	var sb strings.Builder
	sb.WriteString("📋 Your reminders:\n")
	for _, r := range reminders {
		status := "⏳"
		if r.Sent {
			status = "✅"
		}
		fmt.Fprintf(&sb, "\n%s %s — %s\n", status, r.DueAt.Local().Format(reminder.DateTimeLayout), r.Message)
	}

	h.reply(ctx, b, chatID, sb.String())
}

func (h listHandler) reply(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: text})
	if err != nil {
		h.deps.Logger.ErrorContext(ctx, "Failed to send reply", "handler", "list", "error", err, "chat_id", chatID)
	}
}

package handlers

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"remindbot/internal/database"
	"remindbot/internal/reminder"
)

// NewRemindHandler returns a handler for the /remind command:
//
//	/remind YYYY-MM-DD HH:MM Your reminder message
//
// The positional arguments go through the same validator as the web
// creation endpoint, so both paths reject input identically.
func NewRemindHandler(deps HandlerDeps) bot.HandlerFunc {
	return remindHandler{deps}.Handle
}

type remindHandler struct {
	deps HandlerDeps
}

func (h remindHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "remind")

	if update.Message == nil || update.Message.From == nil {
		log.WarnContext(ctx, "Remind handler received update with nil message or sender", "update_id", update.ID)
		return
	}

	chatID := update.Message.Chat.ID
	log.InfoContext(ctx, "Handling /remind command", "chat_id", chatID, "user_id", update.Message.From.ID)

	// Expected form: "/remind <date> <time> <message...>".
	parts := strings.SplitN(update.Message.Text, " ", 4)
	if len(parts) < 4 {
		h.reply(ctx, b, chatID, h.deps.Config.Messages.InvalidFormat)
		return
	}

	draft, err := reminder.ParseDraft(
		strconv.FormatInt(chatID, 10), parts[3], parts[1], parts[2], h.deps.now())
	if err != nil {
		h.reply(ctx, b, chatID, h.validationReply(err))
		return
	}

	rec := &database.Reminder{
		ChatID:  draft.ChatID,
		Message: draft.Message,
		DueAt:   draft.DueAt,
	}
	if err := h.deps.Store.CreateReminder(ctx, rec); err != nil {
		log.ErrorContext(ctx, "Failed to persist reminder", "chat_id", chatID, "error", err)
		h.reply(ctx, b, chatID, h.deps.Config.Messages.GeneralError)
		return
	}

	log.InfoContext(ctx, "Reminder created", "reminder_id", rec.ID, "chat_id", chatID, "due_at", rec.DueAt)
	h.reply(ctx, b, chatID, fmt.Sprintf(h.deps.Config.Messages.Confirmation,
		draft.DueAt.Format(reminder.DateTimeLayout), draft.Message))
}

func (h remindHandler) validationReply(err error) string {
	switch {
	case errors.Is(err, reminder.ErrPastDue):
		return h.deps.Config.Messages.PastDue
	case errors.Is(err, reminder.ErrEmptyMessage):
		return h.deps.Config.Messages.EmptyMessage
	default:
		return h.deps.Config.Messages.InvalidFormat
	}
}

func (h remindHandler) reply(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: text})
	if err != nil {
		h.deps.Logger.ErrorContext(ctx, "Failed to send reply", "handler", "remind", "error", err, "chat_id", chatID)
	}
}

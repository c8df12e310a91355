package handlers

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewChatIDHandler returns a handler for the /chatid command, which echoes
// the caller's chat and user identifiers. Those are what the web interface
// asks for when creating a reminder. Pure lookup, no store interaction.
func NewChatIDHandler(deps HandlerDeps) bot.HandlerFunc {
	return chatIDHandler{deps}.Handle
}

type chatIDHandler struct {
	deps HandlerDeps
}

func (h chatIDHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "chatid")

	if update.Message == nil || update.Message.From == nil {
		log.WarnContext(ctx, "ChatID handler received update with nil message or sender", "update_id", update.ID)
		return
	}

	chatID := update.Message.Chat.ID
	userID := update.Message.From.ID
	log.InfoContext(ctx, "Handling /chatid command", "chat_id", chatID, "user_id", userID)

	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   fmt.Sprintf(h.deps.Config.Messages.ChatID, chatID, userID),
	})
	if err != nil {
		log.ErrorContext(ctx, "Failed to send chat id message", "error", err, "chat_id", chatID)
	}
}

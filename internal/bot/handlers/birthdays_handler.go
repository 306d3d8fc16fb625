package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewBirthdaysHandler returns a handler for the /birthdays command, which
// replies with the current month's birthday list in whichever chat asked.
func NewBirthdaysHandler(deps HandlerDeps) bot.HandlerFunc {
	return birthdaysHandler{deps}.Handle
}

// birthdaysHandler processes the /birthdays command using injected dependencies.
type birthdaysHandler struct {
	deps HandlerDeps
}

func (h birthdaysHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "birthdays")

	if update.Message == nil {
		log.WarnContext(ctx, "Birthdays handler received update with nil message", "update_id", update.ID)
		return
	}

	chatID := update.Message.Chat.ID
	log.InfoContext(ctx, "Handling /birthdays command", "chat_id", chatID)

	text, err := h.deps.Service.MonthlyDigestMessage(ctx)
	if err != nil {
		log.ErrorContext(ctx, "Failed to build monthly digest", "error", err, "chat_id", chatID)
		text = h.deps.Config.Messages.GeneralError
	}

	_, err = b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	})
	if err != nil {
		log.ErrorContext(ctx, "Failed to send monthly digest reply", "error", err, "chat_id", chatID)
	} else {
		log.DebugContext(ctx, "Successfully sent monthly digest reply", "chat_id", chatID)
	}
}

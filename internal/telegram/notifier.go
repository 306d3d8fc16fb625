package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Notifier posts the bot's announcements to the configured group chat.
// Every message is sent with HTML formatting enabled.
type Notifier struct {
	b      *bot.Bot
	chatID any
	log    *slog.Logger
}

// NewNotifier creates a Notifier targeting groupID.
func NewNotifier(b *bot.Bot, groupID string, log *slog.Logger) *Notifier {
	return &Notifier{
		b:      b,
		chatID: ParseChatID(groupID),
		log:    log.With("component", "notifier"),
	}
}

// ParseChatID converts the configured group identifier into the form the
// Telegram API expects: numeric IDs become int64, @channelnames pass through.
func ParseChatID(raw string) any {
	if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return id
	}
	return raw
}

// Send delivers one HTML-formatted message to the group.
func (n *Notifier) Send(ctx context.Context, text string) error {
	_, err := n.b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    n.chatID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	})
	if err != nil {
		return fmt.Errorf("send message to chat %v: %w", n.chatID, err)
	}

	n.log.DebugContext(ctx, "message sent", "chat_id", n.chatID, "length", len(text))
	return nil
}

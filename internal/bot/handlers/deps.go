// Package handlers contains Telegram bot command handlers along with their
// registration logic.
package handlers

import (
	"log/slog"

	"github.com/NiloyRoy69/telebot/internal/birthday"
	"github.com/NiloyRoy69/telebot/internal/config"
)

// HandlerDeps provides dependencies for Telegram command handlers.
type HandlerDeps struct {
	Logger  *slog.Logger
	Config  *config.Config
	Service *birthday.Service
}

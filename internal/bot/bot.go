// Package bot implements the core bot lifecycle: the one-time startup cycle,
// the Telegram listener, the recurring scheduler, and the HTTP trigger API,
// all tied to a single cancellable context.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	tgbot "github.com/go-telegram/bot"
	"golang.org/x/sync/errgroup"

	"github.com/NiloyRoy69/telebot/internal/birthday"
	"github.com/NiloyRoy69/telebot/internal/config"
	"github.com/NiloyRoy69/telebot/internal/server"
)

// Bot represents the main bot application and manages its components' lifecycle.
type Bot struct {
	logger      *slog.Logger
	cfg         *config.Config
	service     *birthday.Service
	tgBot       *tgbot.Bot
	scheduler   *Scheduler
	server      *server.Server
	startupOnce sync.Once
}

// NewBot creates a new instance of the bot with all required dependencies.
func NewBot(
	logger *slog.Logger,
	cfg *config.Config,
	service *birthday.Service,
	tgBot *tgbot.Bot,
	scheduler *Scheduler,
	srv *server.Server,
) *Bot {
	return &Bot{
		logger:    logger.With("component", "bot_orchestrator"),
		cfg:       cfg,
		service:   service,
		tgBot:     tgBot,
		scheduler: scheduler,
		server:    srv,
	}
}

// Run starts the bot and all its components, handling graceful shutdown on
// context cancellation. It returns an error if any component fails during
// startup or execution.
func (b *Bot) Run(ctx context.Context) error {
	b.logger.Info("Starting bot orchestrator...")

	// The startup cycle runs exactly once per process, no matter how often
	// Run is entered. Recurring runs belong to the scheduler and the
	// trigger API.
	b.startupOnce.Do(func() {
		b.logger.Info("Running startup birthday cycle...")
		b.service.RunAll(ctx)
	})

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		b.logger.Info("Starting Telegram bot listener...")

		b.tgBot.Start(gCtx)
		b.logger.Info("Telegram bot listener stopped.")

		if gCtx.Err() == nil {
			b.logger.Warn("Telegram bot listener stopped unexpectedly without context cancellation.")

			return fmt.Errorf("telegram listener stopped unexpectedly")
		}
		return nil
	})

	g.Go(func() error {
		b.logger.Info("Starting scheduler...")
		if err := b.scheduler.Start(); err != nil {
			b.logger.Error("Failed to start scheduler", "error", err)
			return fmt.Errorf("failed to start scheduler: %w", err)
		}

		<-gCtx.Done()
		b.logger.Info("Shutdown signal received, stopping scheduler...")

		if err := b.scheduler.Stop(); err != nil {
			b.logger.Error("Error stopping scheduler", "error", err)
		}

		return nil
	})

	g.Go(func() error {
		if err := b.server.Listen(); err != nil {
			b.logger.Error("HTTP server failed", "error", err)
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		b.logger.Info("Shutdown signal received, stopping HTTP server...")

		if err := b.server.Shutdown(); err != nil {
			b.logger.Error("Error stopping HTTP server", "error", err)
		}
		return nil
	})

	b.logger.Info("Bot orchestrator running. Waiting for shutdown signal or error...")
	err := g.Wait()

	if err != nil && !errors.Is(err, context.Canceled) {
		b.logger.Error("Bot orchestrator stopped due to error", "error", err)
		return err
	}

	b.logger.Info("Bot orchestrator stopped gracefully.")
	return nil
}

// Package main contains the entrypoint for the birthday bot.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbot "github.com/go-telegram/bot"
	"github.com/joho/godotenv"

	"github.com/NiloyRoy69/telebot/internal/birthday"
	"github.com/NiloyRoy69/telebot/internal/bot"
	"github.com/NiloyRoy69/telebot/internal/bot/handlers"
	"github.com/NiloyRoy69/telebot/internal/bot/tasks"
	"github.com/NiloyRoy69/telebot/internal/config"
	"github.com/NiloyRoy69/telebot/internal/gemini"
	"github.com/NiloyRoy69/telebot/internal/logger"
	"github.com/NiloyRoy69/telebot/internal/server"
	"github.com/NiloyRoy69/telebot/internal/sheet"
	"github.com/NiloyRoy69/telebot/internal/telegram"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	exitCode := run(ctx)
	stop() // Ensure context cancellation is signaled before exit
	os.Exit(exitCode)
}

// run initializes and starts all application components (config, logger,
// sheet client, Telegram bot, scheduler, HTTP server), handles graceful
// shutdown, and returns an exit code (0 for success, 1 for failure).
func run(ctx context.Context) int {
	configPath := flag.String("config", "", "Path to configuration file (default ./config.yaml)")
	flag.Parse()

	// Environment variables from a .env file feed the BOT_* overrides.
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "path", *configPath, "error", err)
		return 1
	}

	log, err := logger.New(cfg.Logger.Level, cfg.Logger.Format, cfg.Logger.File)
	if err != nil {
		slog.Error("Failed to initialize logger", "error", err)
		return 1
	}
	log.Info("Logger initialized", "level", cfg.Logger.Level, "format", cfg.Logger.Format, "file", cfg.Logger.File)

	loc, err := time.LoadLocation(cfg.Bot.Timezone)
	if err != nil {
		log.Error("Failed to load timezone", "timezone", cfg.Bot.Timezone, "error", err)
		return 1
	}
	log.Info("Timezone anchored", "timezone", loc.String())

	sheetClient := sheet.NewClient(cfg.Sheet, log)

	var wisher birthday.WishGenerator
	if cfg.Gemini.Enabled {
		gemClient, err := gemini.NewClient(ctx, cfg.Gemini, log)
		if err != nil {
			log.Error("Failed to initialize Gemini client", "error", err)
			return 1
		}
		wisher = gemClient
	}

	botOpts := []tgbot.Option{
		tgbot.WithMiddlewares(logger.Middleware(log)),
	}
	tg, err := telegram.NewTelegramBot(cfg.Telegram.Token, log, botOpts...)
	if err != nil {
		log.Error("Failed to create Telegram bot", "error", err)
		return 1
	}

	// Retrieve bot info and store it in the config for runtime use
	cfg.Telegram.BotInfo, err = tg.GetMe(ctx)
	if err != nil {
		log.Error("Failed to get bot info", "error", err)
		return 1
	}
	log.Info("Retrieved bot info", "bot_id", cfg.Telegram.BotInfo.ID, "bot_username", cfg.Telegram.BotInfo.Username)

	notifier := telegram.NewNotifier(tg, cfg.Telegram.GroupID, log)
	service := birthday.NewService(log, sheetClient, notifier, wisher, loc, cfg.Bot.MessageDelay)

	hDeps := handlers.HandlerDeps{
		Logger:  log,
		Config:  cfg,
		Service: service,
	}
	tDeps := tasks.TaskDeps{
		Logger:  log,
		Service: service,
	}

	cmdHandlers := handlers.RegisterAllCommands(hDeps)
	if err := telegram.RegisterHandlers(tg, log, cmdHandlers); err != nil {
		log.Error("Failed to register Telegram handlers", "error", err)
		return 1
	}

	sched, err := bot.NewScheduler(log, &cfg.Scheduler, loc, tasks.RegisterAllTasks(tDeps))
	if err != nil {
		log.Error("Failed to create scheduler", "error", err)
		return 1
	}

	srv := server.New(cfg.Server, log, service)
	app := bot.NewBot(log, cfg, service, tg, sched, srv)

	log.Info("Starting bot...")
	runErr := app.Run(ctx) // Run blocks until context is cancelled or an error occurs
	log.Info("Bot run loop finished. Initiating shutdown...")

	// Check if the error is significant (not just context cancellation)
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		log.Error("Bot stopped due to error", "error", runErr)
		// Allow logs to flush before exiting on error
		time.Sleep(time.Second)
		return 1
	}

	log.Info("Bot stopped gracefully.")
	time.Sleep(time.Second)
	return 0
}

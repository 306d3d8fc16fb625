// Package server implements the HTTP trigger API. Platforms that sleep idle
// processes keep the bot alive by pinging GET /, which runs the full
// check-and-send cycle; the response is a fixed success acknowledgment no
// matter what the cycle did, so internal failures never leak to the pinger.
package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/NiloyRoy69/telebot/internal/config"
)

// Runner executes the full check-and-send cycle, logging failures instead of
// returning them.
type Runner interface {
	RunAll(ctx context.Context)
}

// Server is the inbound HTTP surface of the bot.
type Server struct {
	app  *fiber.App
	addr string
	log  *slog.Logger
}

// New creates the HTTP server and mounts its routes.
func New(cfg config.ServerConfig, log *slog.Logger, checks Runner) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	s := &Server{
		app:  app,
		addr: cfg.Addr,
		log:  log.With("component", "server"),
	}

	app.Get("/", s.newTriggerHandler(checks))
	app.Get("/health", health)

	return s
}

// newTriggerHandler runs the full cycle on every invocation. The cycle runs
// synchronously so a keep-alive ping does not return before the checks have
// finished.
func (s *Server) newTriggerHandler(checks Runner) fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID := uuid.NewString()
		log := s.log.With("request_id", requestID)
		log.Info("Trigger request received", "ip", c.IP())

		start := time.Now()
		checks.RunAll(c.UserContext())
		log.Info("Trigger request completed", "duration_ms", time.Since(start).Milliseconds())

		return c.JSON(fiber.Map{"msg": "success"})
	}
}

func health(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "healthy",
	})
}

// Listen serves HTTP until Shutdown is called or the listener fails.
func (s *Server) Listen() error {
	s.log.Info("HTTP server listening", "addr", s.addr)
	return s.app.Listen(s.addr)
}

// Shutdown stops the server gracefully, giving in-flight requests a few
// seconds to complete.
func (s *Server) Shutdown() error {
	s.log.Info("Shutting down HTTP server...")
	return s.app.ShutdownWithTimeout(5 * time.Second)
}

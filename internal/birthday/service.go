package birthday

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Source fetches the raw birthday records from the sheet endpoint.
type Source interface {
	Fetch(ctx context.Context) ([]RawRecord, error)
}

// Notifier delivers one HTML-formatted message to the configured group.
type Notifier interface {
	Send(ctx context.Context, text string) error
}

// WishGenerator produces a personalized birthday wish for a name.
type WishGenerator interface {
	Wish(ctx context.Context, name string) (string, error)
}

// Service runs the birthday checks: it pulls records from the source,
// decides what is due, and pushes greetings and digests through the
// notifier. It keeps no state between runs; every check re-reads the sheet.
type Service struct {
	log      *slog.Logger
	source   Source
	notifier Notifier
	wisher   WishGenerator
	loc      *time.Location
	delay    time.Duration
	now      func() time.Time
}

// NewService creates a Service. wisher may be nil, in which case every
// greeting uses the stock message. delay is the pause inserted between
// consecutive greetings on days with multiple birthdays.
func NewService(log *slog.Logger, source Source, notifier Notifier, wisher WishGenerator, loc *time.Location, delay time.Duration) *Service {
	return &Service{
		log:      log,
		source:   source,
		notifier: notifier,
		wisher:   wisher,
		loc:      loc,
		delay:    delay,
		now:      time.Now,
	}
}

// CheckDaily fetches the current records and sends one greeting per person
// whose birthday is today in the canonical timezone. A failed send is logged
// and the remaining greetings still go out; only a failed fetch or a
// cancelled context aborts the cycle.
func (s *Service) CheckDaily(ctx context.Context) error {
	cycleID := uuid.NewString()
	log := s.log.With("op", "daily_check", "cycle_id", cycleID)

	now := s.now().In(s.loc)
	log.Info("checking birthdays", "date", now.Format("01-02"), "timezone", s.loc.String())

	records, err := s.load(ctx, log)
	if err != nil {
		return err
	}

	due := DueOn(records, now)
	if len(due) == 0 {
		log.Info("no birthdays today", "records", len(records))
		return nil
	}

	for i, rec := range due {
		if i > 0 {
			if err := s.pause(ctx); err != nil {
				return err
			}
		}
		if err := s.notifier.Send(ctx, s.greetingFor(ctx, rec.Name)); err != nil {
			log.Error("failed to send greeting", "name", rec.Name, "error", err)
			continue
		}
		log.Info("greeting sent", "name", rec.Name)
	}
	return nil
}

// SendMonthlyDigest fetches the current records and posts the digest for the
// current month to the group. A month without entries still produces a
// message saying so.
func (s *Service) SendMonthlyDigest(ctx context.Context) error {
	cycleID := uuid.NewString()
	log := s.log.With("op", "monthly_digest", "cycle_id", cycleID)

	records, err := s.load(ctx, log)
	if err != nil {
		return err
	}

	month := s.now().In(s.loc).Month()
	entries := InMonth(records, month)
	if err := s.notifier.Send(ctx, Digest(entries, month)); err != nil {
		log.Error("failed to send monthly digest", "month", month.String(), "error", err)
		return fmt.Errorf("sending monthly digest: %w", err)
	}

	log.Info("monthly digest sent", "month", month.String(), "entries", len(entries))
	return nil
}

// MonthlyDigestMessage returns the digest for the current month without
// sending it anywhere. Used by the /birthdays command to reply in the chat
// that asked.
func (s *Service) MonthlyDigestMessage(ctx context.Context) (string, error) {
	records, err := s.load(ctx, s.log)
	if err != nil {
		return "", err
	}
	month := s.now().In(s.loc).Month()
	return Digest(InMonth(records, month), month), nil
}

// RunAll executes the daily check followed by the monthly digest, logging
// failures instead of returning them. The HTTP trigger endpoint uses it to
// reproduce the run-everything behavior of a keep-alive ping.
func (s *Service) RunAll(ctx context.Context) {
	if err := s.CheckDaily(ctx); err != nil {
		s.log.Error("daily check failed", "error", err)
	}
	if err := s.SendMonthlyDigest(ctx); err != nil {
		s.log.Error("monthly digest failed", "error", err)
	}
}

func (s *Service) load(ctx context.Context, log *slog.Logger) ([]Record, error) {
	raws, err := s.source.Fetch(ctx)
	if err != nil {
		log.Error("failed to fetch birthday records", "error", err)
		return nil, fmt.Errorf("fetching birthday records: %w", err)
	}
	return Normalize(log, raws, s.loc), nil
}

func (s *Service) greetingFor(ctx context.Context, name string) string {
	if s.wisher == nil {
		return Greeting(name)
	}
	wish, err := s.wisher.Wish(ctx, name)
	if err != nil {
		s.log.Warn("wish generation failed, using stock greeting", "name", name, "error", err)
		return Greeting(name)
	}
	return GreetingWith(name, wish)
}

func (s *Service) pause(ctx context.Context) error {
	if s.delay <= 0 {
		return nil
	}
	t := time.NewTimer(s.delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

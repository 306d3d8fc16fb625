// Package sheet provides the client for the spreadsheet-backed endpoint that
// serves the birthday records as a JSON array.
package sheet

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/NiloyRoy69/telebot/internal/birthday"
	"github.com/NiloyRoy69/telebot/internal/config"
)

// StatusError reports a non-OK HTTP status from the sheet endpoint.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("sheet endpoint returned status %d", e.StatusCode)
}

// Client fetches birthday records from the configured sheet endpoint.
type Client struct {
	url  string
	http *http.Client
	log  *slog.Logger
}

// NewClient creates a sheet client with the configured request timeout.
func NewClient(cfg config.SheetConfig, log *slog.Logger) *Client {
	return &Client{
		url:  cfg.URL,
		http: &http.Client{Timeout: cfg.Timeout},
		log:  log,
	}
}

// Fetch retrieves the current records. It returns a *StatusError when the
// endpoint answers with anything other than 200 OK, so callers can tell a
// refused sheet from a network failure.
func (c *Client) Fetch(ctx context.Context) ([]birthday.RawRecord, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var records []birthday.RawRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	c.log.Debug("fetched birthday records",
		"count", len(records),
		"duration_ms", time.Since(start).Milliseconds())

	return records, nil
}

package sheet_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/NiloyRoy69/telebot/internal/config"
	"github.com/NiloyRoy69/telebot/internal/sheet"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *sheet.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return sheet.NewClient(config.SheetConfig{
		URL:     srv.URL,
		Timeout: 5 * time.Second,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestFetch(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s, want GET", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[
			{"name":"Alice","birthday":"1990-03-05T00:00:00.000Z"},
			{"name":"Bob","birthday":"1988-12-25"}
		]`)
	})

	records, err := client.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Fetch() returned %d records, want 2", len(records))
	}
	if records[0].Name != "Alice" || records[0].Birthday != "1990-03-05T00:00:00.000Z" {
		t.Errorf("records[0] = %+v, want Alice", records[0])
	}
	if records[1].Name != "Bob" {
		t.Errorf("records[1] = %+v, want Bob", records[1])
	}
}

func TestFetchEmptyArray(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[]`)
	})

	records, err := client.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(records) != 0 {
		t.Errorf("Fetch() returned %d records, want 0", len(records))
	}
}

func TestFetchNonOKStatus(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	})

	_, err := client.Fetch(context.Background())

	var statusErr *sheet.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("Fetch() error = %v, want *StatusError", err)
	}
	if statusErr.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("StatusCode = %d, want %d", statusErr.StatusCode, http.StatusServiceUnavailable)
	}
}

func TestFetchMalformedBody(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"not":"an array"}`)
	})

	if _, err := client.Fetch(context.Background()); err == nil {
		t.Fatal("Fetch() error = nil, want parse error")
	}
}

func TestFetchContextCancelled(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[]`)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := client.Fetch(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Fetch() error = %v, want context.Canceled", err)
	}
}

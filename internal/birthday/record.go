// Package birthday implements the core domain logic of the bot: parsing the
// raw records served by the sheet endpoint, deciding whose birthday falls on
// a given day, and composing the greeting and digest messages.
//
// All date comparisons are anchored in a single canonical timezone so that
// "today" means the same thing regardless of where the process runs.
package birthday

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"
)

// RawRecord is one row as served by the sheet endpoint. Birthday is the
// unparsed date string exactly as published.
type RawRecord struct {
	Name     string `json:"name"`
	Birthday string `json:"birthday"`
}

// Record is a normalized birthday entry. Only the month and day matter for
// matching; the year of birth is irrelevant to the bot.
type Record struct {
	Name  string
	Month time.Month
	Day   int
}

// birthdayLayouts are the naive date forms accepted from the sheet, tried in
// order. Timestamps carrying an explicit offset are handled separately via
// RFC 3339.
var birthdayLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseBirthday parses a raw birthday string into its month and day,
// interpreted in loc. Offset-carrying timestamps (the usual sheet export
// form, e.g. "1990-03-04T18:00:00.000Z") are converted into loc first, so a
// late-evening UTC instant lands on the correct local calendar day. Naive
// forms are taken as already local to loc.
func ParseBirthday(raw string, loc *time.Location) (time.Month, int, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, 0, fmt.Errorf("empty birthday")
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		t = t.In(loc)
		return t.Month(), t.Day(), nil
	}

	for _, layout := range birthdayLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.Month(), t.Day(), nil
		}
	}

	return 0, 0, fmt.Errorf("unsupported birthday format %q", s)
}

// Normalize converts raw sheet rows into Records. Rows with a blank name or
// blank birthday are silently dropped (trailing sheet rows are usually
// empty); rows whose birthday cannot be parsed are logged and skipped so one
// bad cell never blocks the rest of the sheet.
func Normalize(log *slog.Logger, raws []RawRecord, loc *time.Location) []Record {
	records := make([]Record, 0, len(raws))
	for _, raw := range raws {
		name := strings.TrimSpace(raw.Name)
		if name == "" || strings.TrimSpace(raw.Birthday) == "" {
			continue
		}

		month, day, err := ParseBirthday(raw.Birthday, loc)
		if err != nil {
			log.Warn("skipping record with unparseable birthday",
				"name", name,
				"birthday", raw.Birthday,
				"error", err)
			continue
		}

		records = append(records, Record{Name: name, Month: month, Day: day})
	}
	return records
}

// DueOn returns the records whose birthday falls on now's calendar date.
// now must already be anchored in the canonical timezone. February 29
// birthdays match only in leap years.
func DueOn(records []Record, now time.Time) []Record {
	month, day := now.Month(), now.Day()
	var due []Record
	for _, rec := range records {
		if rec.Month == month && rec.Day == day {
			due = append(due, rec)
		}
	}
	return due
}

// InMonth returns the records whose birthday falls in month, ordered by day.
// The sort is stable so records sharing a day keep their sheet order.
func InMonth(records []Record, month time.Month) []Record {
	var entries []Record
	for _, rec := range records {
		if rec.Month == month {
			entries = append(entries, rec)
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Day < entries[j].Day
	})
	return entries
}

package birthday

import (
	"fmt"
	"html"
	"strings"
	"time"
)

// NoBirthdaysMessage is the digest body for a month with no entries.
const NoBirthdaysMessage = "📅 There are no birthdays this month."

// Greeting composes the stock birthday greeting for name. Names come from an
// externally edited sheet, so they are HTML-escaped before being embedded in
// the HTML-formatted message.
func Greeting(name string) string {
	return fmt.Sprintf("🎂 <b>Happy Birthday, %s!</b> 🎉\n\nWishing you a fantastic day! 🥳",
		html.EscapeString(name))
}

// GreetingWith composes a greeting whose body is a generated wish. A blank
// wish falls back to the stock greeting so a failed or empty generation never
// produces a malformed message.
func GreetingWith(name, wish string) string {
	wish = strings.TrimSpace(wish)
	if wish == "" {
		return Greeting(name)
	}
	return fmt.Sprintf("🎂 <b>Happy Birthday, %s!</b> 🎉\n\n%s",
		html.EscapeString(name), html.EscapeString(wish))
}

// Digest composes the monthly birthday list for month. Entries are expected
// to be pre-filtered and day-ordered, as returned by InMonth.
func Digest(entries []Record, month time.Month) string {
	if len(entries) == 0 {
		return NoBirthdaysMessage
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "🎉 <b>Birthdays in %s</b>:\n\n", month)
	for _, e := range entries {
		fmt.Fprintf(&sb, "• %s - <i>%d %s</i>\n", html.EscapeString(e.Name), e.Day, e.Month)
	}
	sb.WriteString("\nLet's celebrate together! 🎂🎉")
	return sb.String()
}

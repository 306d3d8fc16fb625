package config

import "time"

// Default values for configuration
const (
	// Log defaults
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
	DefaultLogFile   = "birthday_bot.log"

	// Sheet defaults
	DefaultSheetTimeout = 10 * time.Second

	// Bot defaults
	DefaultTimezone     = "Asia/Dhaka"      // Canonical zone for all date math
	DefaultMessageDelay = 1 * time.Second   // Pause between consecutive greetings

	// Message defaults
	DefaultMsgWelcome      = "👋 Hi! I post birthday greetings and monthly digests in this group. Use /birthdays to see this month's list."
	DefaultMsgGeneralError = "❌ An error occurred. Please try again later."

	// Scheduler defaults. Schedules are five-field cron expressions evaluated
	// in the canonical timezone. The monthly digest default fires every day
	// at 07:02; use "5 0 1 * *" for a true once-a-month digest.
	DefaultDailyCheckSchedule    = "1 0 * * *"
	DefaultMonthlyDigestSchedule = "2 7 * * *"

	// Server defaults
	DefaultServerAddr = ":8000"

	// Gemini defaults
	DefaultGeminiModel             = "gemini-2.0-flash"
	DefaultGeminiTemperature       = 1.0
	DefaultGeminiTimeout           = 30 * time.Second
	DefaultGeminiMaxRetries        = 3
	DefaultGeminiRetryDelaySeconds = 5
	DefaultGeminiInstruction       = "You write short, warm birthday wishes for a friendly community group. " +
		"Reply with one or two sentences of plain text, no markup, at most a couple of emoji."
)

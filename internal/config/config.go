// Package config provides configuration loading, validation, and management
// for the birthday bot. It handles reading from YAML files and BOT_-prefixed
// environment variables, setting default values, and validating configuration
// parameters.
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-telegram/bot/models"
)

// Config defines the application configuration parameters for all components
// of the bot: logging, Telegram delivery, the birthday sheet source, the
// scheduler, the HTTP trigger API, and the optional Gemini wish generation.
type Config struct {
	Logger    LoggerConfig    `mapstructure:"log"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Sheet     SheetConfig     `mapstructure:"sheet"`
	Bot       BotConfig       `mapstructure:"bot"`
	Messages  MessagesConfig  `mapstructure:"messages"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Server    ServerConfig    `mapstructure:"server"`
	Gemini    GeminiConfig    `mapstructure:"gemini"`
}

// LoggerConfig controls log verbosity, output format, and the log file path.
// An empty File disables the file sink and logs to the console only.
type LoggerConfig struct {
	Level  string `mapstructure:"level"  validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=text json"`
	File   string `mapstructure:"file"`
}

// TelegramConfig holds the bot credential and the dispatch target.
// GroupID accepts a numeric chat ID or an @channelname. BotInfo is populated
// at startup from getMe and is never read from configuration.
type TelegramConfig struct {
	Token   string       `mapstructure:"token"    validate:"required"`
	GroupID string       `mapstructure:"group_id" validate:"required"`
	BotInfo *models.User `mapstructure:"-"`
}

// SheetConfig points at the spreadsheet-backed endpoint serving the raw
// birthday records.
type SheetConfig struct {
	URL     string        `mapstructure:"url"     validate:"required,url"`
	Timeout time.Duration `mapstructure:"timeout" validate:"min=1s,max=5m"`
}

// BotConfig holds the canonical timezone that anchors all date comparisons
// and the delay inserted between consecutive greeting messages.
type BotConfig struct {
	Timezone     string        `mapstructure:"timezone"      validate:"required"`
	MessageDelay time.Duration `mapstructure:"message_delay" validate:"min=0s,max=1m"`
}

// MessagesConfig holds user-facing copy for the Telegram command handlers.
// The greeting and digest formats are fixed by the bot and intentionally
// not configurable.
type MessagesConfig struct {
	Welcome      string `mapstructure:"welcome"`
	GeneralError string `mapstructure:"general_error"`
}

// TaskConfig configures one scheduled task. Schedule is a standard five-field
// cron expression evaluated in the canonical timezone.
type TaskConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule" validate:"required_if=Enabled true"`
}

// SchedulerConfig maps task names to their schedules. The default
// monthly_digest schedule fires every day; set it to a day-of-month
// expression such as "5 0 1 * *" to post the digest once per month instead.
type SchedulerConfig struct {
	Tasks map[string]TaskConfig `mapstructure:"tasks" validate:"dive"`
}

// ServerConfig configures the inbound HTTP trigger API.
type ServerConfig struct {
	Addr string `mapstructure:"addr" validate:"required"`
}

// GeminiConfig configures the optional AI wish generation. When Enabled is
// false the bot always sends the stock greeting and none of the other fields
// are used.
type GeminiConfig struct {
	Enabled           bool          `mapstructure:"enabled"`
	APIKey            string        `mapstructure:"api_key" validate:"required_if=Enabled true"`
	ModelName         string        `mapstructure:"model_name"`
	SystemInstruction string        `mapstructure:"system_instruction"`
	Temperature       float32       `mapstructure:"temperature" validate:"min=0,max=2"`
	Timeout           time.Duration `mapstructure:"timeout" validate:"min=1s,max=10m"`
	MaxRetries        int           `mapstructure:"max_retries" validate:"min=0,max=10"`
	RetryDelaySeconds int           `mapstructure:"retry_delay_seconds" validate:"min=0,max=300"`
}

// Validate checks the configuration against the struct-level rules.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// ErrConfiguration indicates an invalid or unloadable configuration.
var ErrConfiguration = errors.New("configuration error")

// LoadConfig loads and validates configuration from:
// 1. Default values
// 2. The YAML file at path (or ./config.yaml when path is empty)
// 3. BOT_* environment variables
//
// A missing config file is not an error; defaults plus environment
// variables are enough to run.
func LoadConfig(path string) (*Config, error) {
	setDefaults()

	if err := loadConfig(path); err != nil {
		return nil, fmt.Errorf("%w: failed to load config file: %v", ErrConfiguration, err)
	}

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrConfiguration, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	return cfg, nil
}

// loadConfig initializes and loads the configuration using viper
func loadConfig(path string) error {
	if path != "" {
		viper.SetConfigFile(path)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}

	// Setup environment variables
	viper.SetEnvPrefix("BOT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Allow missing config file
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %v", err)
	}

	return nil
}

// setDefaults sets default values for optional configuration parameters.
// Secrets default to empty strings so that AutomaticEnv picks up the
// corresponding BOT_* variables even when no config file exists.
func setDefaults() {
	// Log defaults
	viper.SetDefault("log.level", DefaultLogLevel)
	viper.SetDefault("log.format", DefaultLogFormat)
	viper.SetDefault("log.file", DefaultLogFile)

	// Telegram defaults
	viper.SetDefault("telegram.token", "")
	viper.SetDefault("telegram.group_id", "")

	// Sheet defaults
	viper.SetDefault("sheet.url", "")
	viper.SetDefault("sheet.timeout", DefaultSheetTimeout)

	// Bot defaults
	viper.SetDefault("bot.timezone", DefaultTimezone)
	viper.SetDefault("bot.message_delay", DefaultMessageDelay)

	// Message defaults
	viper.SetDefault("messages.welcome", DefaultMsgWelcome)
	viper.SetDefault("messages.general_error", DefaultMsgGeneralError)

	// Scheduler defaults
	viper.SetDefault("scheduler.tasks.daily_check.enabled", true)
	viper.SetDefault("scheduler.tasks.daily_check.schedule", DefaultDailyCheckSchedule)
	viper.SetDefault("scheduler.tasks.monthly_digest.enabled", true)
	viper.SetDefault("scheduler.tasks.monthly_digest.schedule", DefaultMonthlyDigestSchedule)

	// Server defaults
	viper.SetDefault("server.addr", DefaultServerAddr)

	// Gemini defaults
	viper.SetDefault("gemini.enabled", false)
	viper.SetDefault("gemini.api_key", "")
	viper.SetDefault("gemini.model_name", DefaultGeminiModel)
	viper.SetDefault("gemini.system_instruction", DefaultGeminiInstruction)
	viper.SetDefault("gemini.temperature", DefaultGeminiTemperature)
	viper.SetDefault("gemini.timeout", DefaultGeminiTimeout)
	viper.SetDefault("gemini.max_retries", DefaultGeminiMaxRetries)
	viper.SetDefault("gemini.retry_delay_seconds", DefaultGeminiRetryDelaySeconds)
}

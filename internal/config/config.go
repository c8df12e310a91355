// Package config provides configuration loading and validation for the
// reminder bot. Values come from defaults, an optional config.yaml file,
// and BOT_* environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config defines the application configuration parameters for all
// components of the reminder bot: logging, Telegram access, database,
// scheduler, HTTP server, and user-facing message templates.
type Config struct {
	Logger    LoggerConfig    `mapstructure:"logger"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Server    ServerConfig    `mapstructure:"server"`
	Messages  MessagesConfig  `mapstructure:"messages"`
}

// LoggerConfig controls log level and output format.
type LoggerConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// TelegramConfig holds Telegram Bot API settings. When UseWebhook is set,
// updates arrive through the HTTP server's webhook endpoint instead of
// long polling.
type TelegramConfig struct {
	Token      string `mapstructure:"token" validate:"required"`
	UseWebhook bool   `mapstructure:"use_webhook"`
}

// DatabaseConfig holds SQLite database settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// SchedulerConfig maps task names to their scheduling settings. Task names
// must match the keys registered in the task registry.
type SchedulerConfig struct {
	Tasks map[string]TaskConfig `mapstructure:"tasks"`
}

// TaskConfig describes a single scheduled task.
type TaskConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Interval time.Duration `mapstructure:"interval" validate:"omitempty,min=1s"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	ListenAddr string `mapstructure:"listen_addr" validate:"required"`
}

// MessagesConfig holds user-facing reply templates for the chat interface.
type MessagesConfig struct {
	Welcome       string `mapstructure:"welcome"`
	ChatID        string `mapstructure:"chat_id"`
	Confirmation  string `mapstructure:"confirmation"`
	InvalidFormat string `mapstructure:"invalid_format"`
	PastDue       string `mapstructure:"past_due"`
	EmptyMessage  string `mapstructure:"empty_message"`
	NoReminders   string `mapstructure:"no_reminders"`
	GeneralError  string `mapstructure:"general_error"`
}

// Load reads configuration from the given YAML file path, applies defaults
// for optional fields, merges BOT_* environment variables, and validates
// the result. A missing config file is not an error; defaults and the
// environment are used instead.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetEnvPrefix("BOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.json", false)

	// The empty default registers the key with viper so the BOT_TELEGRAM_TOKEN
	// environment variable can populate it; validation still requires a value.
	v.SetDefault("telegram.token", "")
	v.SetDefault("telegram.use_webhook", false)

	v.SetDefault("database.path", "reminders.db")

	v.SetDefault("server.listen_addr", ":8000")

	// The reminder scan runs once per minute; delivery precision is
	// minute-granularity by design.
	v.SetDefault("scheduler.tasks.reminder_scan.enabled", true)
	v.SetDefault("scheduler.tasks.reminder_scan.interval", time.Minute)

	v.SetDefault("messages.welcome",
		"👋 Welcome to Reminder Bot!\n\n"+
			"I can help you set reminders:\n"+
			"/remind YYYY-MM-DD HH:MM Your reminder message\n\n"+
			"Example: /remind 2024-12-25 10:00 Merry Christmas!\n\n"+
			"💡 Use /chatid to get your Chat ID for the web interface,\n"+
			"and /list to see your reminders.")
	v.SetDefault("messages.chat_id",
		"📱 Your Chat ID: %d\n👤 Your User ID: %d\n\n"+
			"Use the Chat ID in the web interface.")
	v.SetDefault("messages.confirmation", "✅ Reminder set for %s!\n\nMessage: %s")
	v.SetDefault("messages.invalid_format", "❌ Invalid format. Use: /remind YYYY-MM-DD HH:MM Your message")
	v.SetDefault("messages.past_due", "❌ Reminder date must be in the future!")
	v.SetDefault("messages.empty_message", "❌ Reminder message cannot be empty.")
	v.SetDefault("messages.no_reminders", "You have no reminders yet.")
	v.SetDefault("messages.general_error", "❌ An error occurred. Please try again later.")
}

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

// Environment variables read by Load.
const (
	EnvAppName           = "FOCUSROOM_APP_NAME"
	EnvLogLevel          = "FOCUSROOM_LOG_LEVEL"
	EnvEnvironment       = "FOCUSROOM_ENV"
	EnvTickInterval      = "FOCUSROOM_TICK_INTERVAL"
	EnvNotificationTTL   = "FOCUSROOM_NOTIFICATION_TTL"
	EnvProgressResetCron = "FOCUSROOM_PROGRESS_RESET_CRON"
)

const (
	defaultAppName         = "FocusRoom"
	defaultProgressReset   = "0 0 * * *"
	defaultTickInterval    = time.Second
	defaultNotificationTTL = 5 * time.Second
)

// AppConfig holds process level options. User preferences such as the
// interval goal live in storage, not here.
type AppConfig struct {
	AppName           string
	LogLevel          string
	Environment       string
	TickInterval      time.Duration
	NotificationTTL   time.Duration
	ProgressResetCron string
}

// Load reads configuration from the environment and an optional .env file.
// Existing environment variables win over .env entries.
func Load() (*AppConfig, error) {
	_ = godotenv.Load()

	cfg := &AppConfig{
		AppName:           valueOr(EnvAppName, defaultAppName),
		LogLevel:          strings.ToLower(valueOr(EnvLogLevel, "info")),
		Environment:       strings.ToLower(valueOr(EnvEnvironment, "development")),
		ProgressResetCron: valueOr(EnvProgressResetCron, defaultProgressReset),
	}

	var err error
	cfg.TickInterval, err = durationOr(EnvTickInterval, defaultTickInterval)
	if err != nil {
		return nil, err
	}
	cfg.NotificationTTL, err = durationOr(EnvNotificationTTL, defaultNotificationTTL)
	if err != nil {
		return nil, err
	}

	if cfg.ProgressResetCron != "off" {
		if _, err := cron.ParseStandard(cfg.ProgressResetCron); err != nil {
			return nil, fmt.Errorf("invalid %s: %w", EnvProgressResetCron, err)
		}
	}

	return cfg, nil
}

// ProgressResetEnabled reports whether the periodic progress reset should run.
func (cfg *AppConfig) ProgressResetEnabled() bool {
	return cfg.ProgressResetCron != "" && cfg.ProgressResetCron != "off"
}

func valueOr(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func durationOr(key string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if value <= 0 {
		return 0, fmt.Errorf("invalid %s: must be greater than zero", key)
	}
	return value, nil
}

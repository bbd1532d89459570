package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvAppName, EnvLogLevel, EnvEnvironment, EnvTickInterval, EnvNotificationTTL, EnvProgressResetCron} {
		t.Setenv(key, "")
	}
	// Keep a stray .env in the package directory out of the way.
	t.Chdir(t.TempDir())
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.AppName != "FocusRoom" || cfg.LogLevel != "info" || cfg.Environment != "development" {
		t.Fatalf("unexpected defaults: %#v", cfg)
	}
	if cfg.TickInterval != time.Second || cfg.NotificationTTL != 5*time.Second {
		t.Fatalf("unexpected durations: %#v", cfg)
	}
	if !cfg.ProgressResetEnabled() {
		t.Fatal("progress reset should be enabled by default")
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvLogLevel, "DEBUG")
	t.Setenv(EnvTickInterval, "250ms")
	t.Setenv(EnvNotificationTTL, "8s")
	t.Setenv(EnvProgressResetCron, "off")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.LogLevel != "debug" || cfg.TickInterval != 250*time.Millisecond || cfg.NotificationTTL != 8*time.Second {
		t.Fatalf("unexpected config: %#v", cfg)
	}
	if cfg.ProgressResetEnabled() {
		t.Fatal("progress reset should be disabled")
	}
}

func TestLoadReadsDotEnv(t *testing.T) {
	clearEnv(t)
	os.Unsetenv(EnvEnvironment)
	dir, _ := os.Getwd()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(EnvEnvironment+"=production\n"), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv(EnvEnvironment) })

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Environment != "production" {
		t.Fatalf("expected environment from .env, got %q", cfg.Environment)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := map[string]string{
		EnvTickInterval:      "soon",
		EnvNotificationTTL:   "-1s",
		EnvProgressResetCron: "every day",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", key, value)
			}
		})
	}
}

package config

import (
	"testing"

	"github.com/Chuk2022/VKBot-GDM/internal/logger"
)

func TestLoad_RequiresToken(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "")

	if _, err := Load(); err == nil {
		t.Fatal("Expected error when TELEGRAM_BOT_TOKEN is not set")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "test-token")
	t.Setenv("ADMIN_IDS", "")
	t.Setenv("DB_HOST", "")
	t.Setenv("REDIS_HOST", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.DB.Host != "localhost" || cfg.DB.Port != "5432" {
		t.Errorf("Unexpected DB defaults: %+v", cfg.DB)
	}
	if cfg.Redis.Host != "" {
		t.Errorf("Redis should be disabled by default, got %q", cfg.Redis.Host)
	}
	if cfg.Logger.Level != logger.LevelInfo {
		t.Errorf("Expected info log level, got %v", cfg.Logger.Level)
	}
	if len(cfg.AdminIDs) != 0 {
		t.Errorf("Expected no admin ids, got %v", cfg.AdminIDs)
	}
}

func TestLoad_AdminIDs(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "test-token")
	t.Setenv("ADMIN_IDS", "123, 456 ,789")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(cfg.AdminIDs) != 3 {
		t.Fatalf("Expected 3 admin ids, got %v", cfg.AdminIDs)
	}
	if !cfg.IsAdminID(456) {
		t.Error("456 should be an admin id")
	}
	if cfg.IsAdminID(999) {
		t.Error("999 should not be an admin id")
	}
}

func TestLoad_MalformedAdminIDs(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "test-token")
	t.Setenv("ADMIN_IDS", "123,abc")

	if _, err := Load(); err == nil {
		t.Fatal("Expected error for malformed ADMIN_IDS")
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		raw  string
		want logger.LogLevel
	}{
		{"debug", logger.LevelDebug},
		{"info", logger.LevelInfo},
		{"warn", logger.LevelWarn},
		{"warning", logger.LevelWarn},
		{"error", logger.LevelError},
		{"nonsense", logger.LevelInfo},
	}

	for _, tt := range tests {
		if got := parseLogLevel(tt.raw); got != tt.want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

package config

import (
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"TELEGRAM_BOT_TOKEN", "DB_PATH", "DOWNLOAD_DIR",
		"MAX_FILE_SIZE", "METADATA_TIMEOUT", "DOWNLOAD_TIMEOUT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_MissingToken(t *testing.T) {
	clearEnv(t)

	if _, err := Load(); err == nil {
		t.Error("Expected error when TELEGRAM_BOT_TOKEN is not set")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("TELEGRAM_BOT_TOKEN", "test-token")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.TelegramToken != "test-token" {
		t.Errorf("Expected token 'test-token', got %q", cfg.TelegramToken)
	}
	if cfg.DBPath != "/data/bot.db" {
		t.Errorf("Expected default DB path, got %q", cfg.DBPath)
	}
	if cfg.MaxFileSize != 2_000_000_000 {
		t.Errorf("Expected default max file size, got %d", cfg.MaxFileSize)
	}
	if cfg.MetadataTimeout != 30*time.Second {
		t.Errorf("Expected 30s metadata timeout, got %v", cfg.MetadataTimeout)
	}
	if cfg.DownloadTimeout != 10*time.Minute {
		t.Errorf("Expected 10m download timeout, got %v", cfg.DownloadTimeout)
	}
	if cfg.WorkDir == "" {
		t.Error("Expected a non-empty work dir")
	}
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("TELEGRAM_BOT_TOKEN", "test-token")
	t.Setenv("DB_PATH", "/tmp/custom.db")
	t.Setenv("DOWNLOAD_DIR", "/tmp/downloads")
	t.Setenv("MAX_FILE_SIZE", "50000000")
	t.Setenv("METADATA_TIMEOUT", "5s")
	t.Setenv("DOWNLOAD_TIMEOUT", "1m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.DBPath != "/tmp/custom.db" {
		t.Errorf("Expected custom DB path, got %q", cfg.DBPath)
	}
	if cfg.WorkDir != "/tmp/downloads" {
		t.Errorf("Expected custom work dir, got %q", cfg.WorkDir)
	}
	if cfg.MaxFileSize != 50000000 {
		t.Errorf("Expected max file size 50000000, got %d", cfg.MaxFileSize)
	}
	if cfg.MetadataTimeout != 5*time.Second {
		t.Errorf("Expected 5s metadata timeout, got %v", cfg.MetadataTimeout)
	}
	if cfg.DownloadTimeout != time.Minute {
		t.Errorf("Expected 1m download timeout, got %v", cfg.DownloadTimeout)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"non-numeric size", "MAX_FILE_SIZE", "huge"},
		{"negative size", "MAX_FILE_SIZE", "-1"},
		{"zero size", "MAX_FILE_SIZE", "0"},
		{"bad metadata timeout", "METADATA_TIMEOUT", "soon"},
		{"negative download timeout", "DOWNLOAD_TIMEOUT", "-5s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("TELEGRAM_BOT_TOKEN", "test-token")
			t.Setenv(tt.key, tt.value)

			if _, err := Load(); err == nil {
				t.Errorf("Expected error for %s=%q", tt.key, tt.value)
			}
		})
	}
}

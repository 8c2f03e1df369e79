package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the process-wide settings read once at startup.
type Config struct {
	// TelegramToken authenticates the bot against the Telegram API.
	TelegramToken string
	// DBPath is the sqlite database file location.
	DBPath string
	// MaxFileSize is the largest artifact (in bytes) the bot will deliver.
	MaxFileSize int64
	// MetadataTimeout bounds a single metadata fetch.
	MetadataTimeout time.Duration
	// DownloadTimeout is the defensive ceiling on one download.
	DownloadTimeout time.Duration
	// WorkDir is the parent directory for per-job storage scopes.
	WorkDir string
}

const (
	defaultDBPath          = "/data/bot.db"
	defaultMaxFileSize     = 2_000_000_000 // Telegram local API server limit
	defaultMetadataTimeout = 30 * time.Second
	defaultDownloadTimeout = 10 * time.Minute
)

// Load reads configuration from the environment, applying defaults for
// everything except the bot token.
func Load() (*Config, error) {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable is not set")
	}

	cfg := &Config{
		TelegramToken:   token,
		DBPath:          defaultDBPath,
		MaxFileSize:     defaultMaxFileSize,
		MetadataTimeout: defaultMetadataTimeout,
		DownloadTimeout: defaultDownloadTimeout,
		WorkDir:         os.TempDir(),
	}

	if v := os.Getenv("DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("DOWNLOAD_DIR"); v != "" {
		cfg.WorkDir = v
	}
	if v := os.Getenv("MAX_FILE_SIZE"); v != "" {
		size, err := strconv.ParseInt(v, 10, 64)
		if err != nil || size <= 0 {
			return nil, fmt.Errorf("invalid MAX_FILE_SIZE %q", v)
		}
		cfg.MaxFileSize = size
	}
	if v := os.Getenv("METADATA_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid METADATA_TIMEOUT %q", v)
		}
		cfg.MetadataTimeout = d
	}
	if v := os.Getenv("DOWNLOAD_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid DOWNLOAD_TIMEOUT %q", v)
		}
		cfg.DownloadTimeout = d
	}

	return cfg, nil
}

package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/artur/tubefetch/internal/session"
)

// PreferenceRepository persists per-user preferences. It implements
// session.PreferenceStore, so the in-memory session store writes through to
// sqlite and users keep their settings across restarts.
type PreferenceRepository struct {
	db *sql.DB
}

// NewPreferenceRepository creates a new PreferenceRepository
func NewPreferenceRepository(db *sql.DB) *PreferenceRepository {
	return &PreferenceRepository{db: db}
}

// Load retrieves the stored preferences for a Telegram user.
func (r *PreferenceRepository) Load(telegramUserID int64) (session.Preferences, bool, error) {
	query := `
		SELECT default_quality, auto_download, as_document
		FROM user_preferences
		WHERE telegram_user_id = ?
	`

	var prefs session.Preferences
	err := r.db.QueryRow(query, telegramUserID).Scan(
		&prefs.DefaultQuality,
		&prefs.AutoDownload,
		&prefs.AsDocument,
	)
	if err == sql.ErrNoRows {
		return session.Preferences{}, false, nil
	}
	if err != nil {
		return session.Preferences{}, false, fmt.Errorf("failed to load preferences: %w", err)
	}

	return prefs, true, nil
}

// Save upserts the preferences for a Telegram user.
func (r *PreferenceRepository) Save(telegramUserID int64, prefs session.Preferences) error {
	query := `
		INSERT INTO user_preferences (telegram_user_id, default_quality, auto_download, as_document, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(telegram_user_id) DO UPDATE SET
			default_quality = excluded.default_quality,
			auto_download = excluded.auto_download,
			as_document = excluded.as_document,
			updated_at = excluded.updated_at
	`

	_, err := r.db.Exec(query,
		telegramUserID,
		prefs.DefaultQuality,
		prefs.AutoDownload,
		prefs.AsDocument,
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}

	return nil
}

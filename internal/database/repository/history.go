package repository

import (
	"fmt"

	"github.com/artur/tubefetch/internal/database/models"
)

// DownloadHistory records delivered downloads keyed by Telegram identity.
// It implements the workflow's HistoryRecorder port on top of the user and
// download repositories.
type DownloadHistory struct {
	users     *UserRepository
	downloads *DownloadRepository
}

// NewDownloadHistory creates a new DownloadHistory
func NewDownloadHistory(users *UserRepository, downloads *DownloadRepository) *DownloadHistory {
	return &DownloadHistory{users: users, downloads: downloads}
}

// RecordDownload stores one delivered download for a Telegram user.
func (h *DownloadHistory) RecordDownload(telegramUserID int64, videoID, title, qualityKey string, sizeBytes int64) error {
	user, err := h.users.GetByTelegramID(telegramUserID)
	if err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return fmt.Errorf("unknown telegram user %d", telegramUserID)
	}

	return h.downloads.Record(&models.Download{
		UserID:        user.ID,
		VideoID:       videoID,
		VideoTitle:    title,
		Quality:       qualityKey,
		FileSizeBytes: sizeBytes,
	})
}

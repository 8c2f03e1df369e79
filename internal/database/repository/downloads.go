package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/artur/tubefetch/internal/database/models"
)

// DownloadRepository handles delivered-download persistence
type DownloadRepository struct {
	db *sql.DB
}

// NewDownloadRepository creates a new DownloadRepository
func NewDownloadRepository(db *sql.DB) *DownloadRepository {
	return &DownloadRepository{db: db}
}

// Record stores a delivered download
func (r *DownloadRepository) Record(download *models.Download) error {
	if download.DeliveredAt.IsZero() {
		download.DeliveredAt = time.Now()
	}

	query := `
		INSERT INTO downloads
		(user_id, video_id, video_title, quality, file_size_bytes, delivered_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		download.UserID,
		download.VideoID,
		download.VideoTitle,
		download.Quality,
		download.FileSizeBytes,
		download.DeliveredAt,
	)

	if err != nil {
		return fmt.Errorf("failed to record download: %w", err)
	}

	return nil
}

// GetUserDownloadCount returns total downloads for a user
func (r *DownloadRepository) GetUserDownloadCount(userID int64) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM downloads WHERE user_id = ?`
	err := r.db.QueryRow(query, userID).Scan(&count)
	return count, err
}

// GetTotalDownloads returns total downloads by all users
func (r *DownloadRepository) GetTotalDownloads() (int64, error) {
	var count int64
	err := r.db.QueryRow("SELECT COUNT(*) FROM downloads").Scan(&count)
	return count, err
}

// GetTotalBytes returns the total delivered payload size
func (r *DownloadRepository) GetTotalBytes() (int64, error) {
	var total sql.NullInt64
	err := r.db.QueryRow("SELECT SUM(file_size_bytes) FROM downloads").Scan(&total)
	return total.Int64, err
}

// PopularVideo represents a video with download count
type PopularVideo struct {
	VideoID       string
	VideoTitle    string
	DownloadCount int64
}

// GetPopularVideos returns most downloaded videos (top N)
func (r *DownloadRepository) GetPopularVideos(limit int) ([]PopularVideo, error) {
	query := `
		SELECT video_id, video_title, COUNT(*) as download_count
		FROM downloads
		GROUP BY video_id
		ORDER BY download_count DESC
		LIMIT ?
	`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get popular videos: %w", err)
	}
	defer rows.Close()

	var videos []PopularVideo
	for rows.Next() {
		var video PopularVideo
		var title sql.NullString
		if err := rows.Scan(&video.VideoID, &title, &video.DownloadCount); err != nil {
			return nil, fmt.Errorf("failed to scan video: %w", err)
		}
		video.VideoTitle = title.String
		videos = append(videos, video)
	}

	return videos, rows.Err()
}

package models

import "time"

// Download represents a delivered download record
type Download struct {
	ID            int64
	UserID        int64
	VideoID       string
	VideoTitle    string
	Quality       string
	FileSizeBytes int64
	DeliveredAt   time.Time
}

// Package resolver abstracts the external media engine that turns a video
// identifier into metadata or a local file.
package resolver

import (
	"context"
	"time"
)

// Metadata describes a remote video. Title, Duration and Uploader may be
// absent without the fetch failing.
type Metadata struct {
	VideoID   string
	Title     string
	Duration  time.Duration
	Uploader  string
	Thumbnail string
}

// Milestone is a coarse progress marker emitted during a download. Advisory
// only; the underlying transfer may not report real byte progress.
type Milestone int

const (
	MilestoneStarted Milestone = iota
	MilestoneFetching
	MilestoneFinalizing
)

func (m Milestone) String() string {
	switch m {
	case MilestoneStarted:
		return "started"
	case MilestoneFetching:
		return "fetching"
	case MilestoneFinalizing:
		return "finalizing"
	default:
		return "unknown"
	}
}

// ProgressFunc receives milestone notifications. Implementations must not
// block for long; they run on the download goroutine.
type ProgressFunc func(Milestone)

// Resolver fetches metadata and produces local artifacts.
type Resolver interface {
	// FetchMetadata returns structured metadata for a video identifier.
	FetchMetadata(ctx context.Context, videoID string) (*Metadata, error)
	// Download writes the artifact for formatToken into destDir and
	// returns its path. progress may be nil.
	Download(ctx context.Context, videoID, formatToken, destDir string, progress ProgressFunc) (string, error)
}

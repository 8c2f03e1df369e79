// Package session tracks per-user download-session state. The Store is the
// only shared mutable state in the workflow core.
package session

import "time"

// Phase is the lifecycle position of a session.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseAwaitingSelection
	PhaseDownloading
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseAwaitingSelection:
		return "awaiting_selection"
	case PhaseDownloading:
		return "downloading"
	default:
		return "unknown"
	}
}

// VideoContext is the resolved subject of the current session. Immutable
// once stored; replaced wholesale when a new link is submitted.
type VideoContext struct {
	VideoID  string
	URL      string
	Title    string
	Duration time.Duration
	Uploader string
}

// Preferences are per-user settings that outlive individual sessions.
type Preferences struct {
	// DefaultQuality is a quality key from the fixed table.
	DefaultQuality string
	// AutoDownload skips the quality menu and downloads DefaultQuality.
	AutoDownload bool
	// AsDocument delivers files as documents instead of playable media.
	AsDocument bool
}

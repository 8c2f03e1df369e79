package workflow

import "errors"

// Expected workflow outcomes. Stale selections and non-owner presses are
// ordinary races under concurrent use, not faults.
var (
	ErrInvalidLink     = errors.New("not a supported video link")
	ErrFetchFailed     = errors.New("failed to fetch video metadata")
	ErrNoActiveSession = errors.New("no active video for this session")
	ErrStaleSelection  = errors.New("selection refers to a replaced video")
	ErrNotSessionOwner = errors.New("selection from a different identity than the session owner")
	ErrDownloadFailed  = errors.New("download failed")
	ErrDeliveryFailed  = errors.New("failed to deliver file")
)

// Package quality defines the fixed set of deliverable qualities and the
// callback-token encoding used by inline keyboards.
package quality

import (
	"fmt"
	"strings"
)

// Choice is one entry of the fixed quality table.
type Choice struct {
	// Key identifies the choice inside selection tokens.
	Key string
	// Label is the human-readable button text.
	Label string
	// FormatToken is passed verbatim to the media resolver.
	FormatToken string
	// AudioOnly selects audio delivery instead of video.
	AudioOnly bool
}

// Choices is the full table in presentation order. Not user-extensible.
var Choices = []Choice{
	{Key: "best", Label: "🎬 Best Quality", FormatToken: "best"},
	{Key: "720p", Label: "📺 720p HD", FormatToken: "720p"},
	{Key: "480p", Label: "📱 480p Medium", FormatToken: "480p"},
	{Key: "360p", Label: "⚡ 360p Fast", FormatToken: "360p"},
	{Key: "audio", Label: "🎵 Audio Only", FormatToken: "audio", AudioOnly: true},
}

// ByKey returns the choice for key.
func ByKey(key string) (Choice, bool) {
	for _, c := range Choices {
		if c.Key == key {
			return c, true
		}
	}
	return Choice{}, false
}

// DefaultKey is the preset used before a user picks a preference.
const DefaultKey = "720p"

const (
	actionDownload = "download"
	actionCancel   = "cancel"
)

// SelectionToken encodes a quality choice for a specific video as callback
// data, e.g. "download_720p_dQw4w9WgXcQ".
func SelectionToken(key, videoID string) string {
	return fmt.Sprintf("%s_%s_%s", actionDownload, key, videoID)
}

// CancelToken encodes a cancellation for a specific video.
func CancelToken(videoID string) string {
	return fmt.Sprintf("%s_%s", actionCancel, videoID)
}

// Selection is a parsed callback token.
type Selection struct {
	Cancel  bool
	Choice  Choice
	VideoID string
}

// ParseToken decodes callback data produced by SelectionToken or
// CancelToken. Unknown actions and unknown quality keys are rejected as
// malformed rather than partially interpreted.
func ParseToken(data string) (Selection, error) {
	action, rest, ok := strings.Cut(data, "_")
	if !ok {
		return Selection{}, fmt.Errorf("malformed callback token %q", data)
	}

	switch action {
	case actionCancel:
		if rest == "" {
			return Selection{}, fmt.Errorf("malformed cancel token %q", data)
		}
		return Selection{Cancel: true, VideoID: rest}, nil
	case actionDownload:
		key, videoID, ok := strings.Cut(rest, "_")
		if !ok || videoID == "" {
			return Selection{}, fmt.Errorf("malformed selection token %q", data)
		}
		choice, ok := ByKey(key)
		if !ok {
			return Selection{}, fmt.Errorf("unknown quality key %q in token %q", key, data)
		}
		return Selection{Choice: choice, VideoID: videoID}, nil
	default:
		return Selection{}, fmt.Errorf("unknown action %q in token %q", action, data)
	}
}

// IsToken reports whether data looks like one of our callback tokens.
func IsToken(data string) bool {
	return strings.HasPrefix(data, actionDownload+"_") || strings.HasPrefix(data, actionCancel+"_")
}

// Package link classifies free-form message text as YouTube video links
// and extracts the canonical video identifier. No network access.
package link

import (
	"regexp"
	"strings"
)

// Patterns are tried in order; the first match wins. Each must capture the
// 11-character video identifier in group 1.
var idPatterns = []*regexp.Regexp{
	regexp.MustCompile(`youtube\.com/watch\?(?:[^\s]*&)?v=([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtu\.be/([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/embed/([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/v/([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/shorts/([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtube-nocookie\.com/embed/([a-zA-Z0-9_-]{11})`),
}

var supportedDomains = []string{
	"youtube.com",
	"youtu.be",
	"youtube-nocookie.com",
	"m.youtube.com",
}

// ExtractVideoID returns the video identifier found in text, or "" when no
// supported URL shape matches.
func ExtractVideoID(text string) string {
	for _, re := range idPatterns {
		if m := re.FindStringSubmatch(text); len(m) > 1 {
			return m[1]
		}
	}
	return ""
}

// HasSupportedDomain reports whether text mentions a supported video domain.
// Checked independently of identifier extraction.
func HasSupportedDomain(text string) bool {
	lower := strings.ToLower(text)
	for _, domain := range supportedDomains {
		if strings.Contains(lower, domain) {
			return true
		}
	}
	return false
}

// CanonicalURL renders the watch URL for an extracted video identifier.
func CanonicalURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}

// Classify validates text as a video link. Both a supported domain and an
// extractable identifier are required.
func Classify(text string) (videoID string, ok bool) {
	if !HasSupportedDomain(text) {
		return "", false
	}
	id := ExtractVideoID(text)
	if id == "" {
		return "", false
	}
	return id, true
}

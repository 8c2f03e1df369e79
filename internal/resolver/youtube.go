package resolver

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/kkdai/youtube/v2"
)

// YouTubeResolver implements Resolver with the embedded extraction library.
type YouTubeResolver struct {
	client youtube.Client
}

// NewYouTubeResolver creates a resolver backed by the YouTube client.
func NewYouTubeResolver() *YouTubeResolver {
	return &YouTubeResolver{
		client: youtube.Client{},
	}
}

func (r *YouTubeResolver) FetchMetadata(ctx context.Context, videoID string) (*Metadata, error) {
	video, err := r.client.GetVideoContext(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("failed to get video info: %w", err)
	}

	meta := &Metadata{
		VideoID:  video.ID,
		Title:    video.Title,
		Duration: video.Duration,
		Uploader: video.Author,
	}
	if len(video.Thumbnails) > 0 {
		meta.Thumbnail = video.Thumbnails[0].URL
	}
	return meta, nil
}

func (r *YouTubeResolver) Download(ctx context.Context, videoID, formatToken, destDir string, progress ProgressFunc) (string, error) {
	notify := func(m Milestone) {
		if progress != nil {
			progress(m)
		}
	}
	notify(MilestoneStarted)

	video, err := r.client.GetVideoContext(ctx, videoID)
	if err != nil {
		return "", fmt.Errorf("failed to get video info: %w", err)
	}

	format, ext, err := selectFormat(video, formatToken)
	if err != nil {
		return "", err
	}

	log.Printf("[RESOLVER] Downloading %s itag=%d quality=%q token=%q",
		videoID, format.ItagNo, format.QualityLabel, formatToken)

	stream, size, err := r.client.GetStreamContext(ctx, video, format)
	if err != nil {
		return "", fmt.Errorf("failed to get stream: %w", err)
	}
	defer stream.Close()

	outPath := filepath.Join(destDir, videoID+ext)
	out, err := os.Create(outPath)
	if err != nil {
		return "", fmt.Errorf("failed to create output file: %w", err)
	}

	notify(MilestoneFetching)

	written, err := io.Copy(out, stream)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(outPath)
		return "", fmt.Errorf("failed to download stream: %w", err)
	}

	notify(MilestoneFinalizing)
	log.Printf("[RESOLVER] Downloaded %s: %d bytes (reported %d)", videoID, written, size)

	return outPath, nil
}

// selectFormat picks the concrete stream for a format token. Tokens are the
// quality keys from the fixed table: "best", "audio", or "NNNp".
func selectFormat(video *youtube.Video, token string) (*youtube.Format, string, error) {
	if token == "audio" {
		return selectAudioFormat(video)
	}

	formats := video.Formats.WithAudioChannels()
	if len(formats) == 0 {
		formats = video.Formats
	}

	maxHeight := 0
	if token != "best" {
		if maxHeight = parseQualityNum(token); maxHeight == 0 {
			return nil, "", fmt.Errorf("unknown format token %q", token)
		}
	}

	var selected *youtube.Format
	for i := range formats {
		f := &formats[i]
		if !strings.Contains(f.MimeType, "video/mp4") {
			continue
		}
		if f.Height == 0 {
			continue
		}
		if maxHeight > 0 && f.Height > maxHeight {
			continue
		}
		if selected == nil || f.Height > selected.Height {
			selected = f
		}
	}

	// No mp4 candidate under the cap: fall back to any mp4, then anything.
	if selected == nil {
		for i := range formats {
			if strings.Contains(formats[i].MimeType, "video/mp4") {
				selected = &formats[i]
				break
			}
		}
	}
	if selected == nil && len(formats) > 0 {
		selected = &formats[0]
	}
	if selected == nil {
		return nil, "", fmt.Errorf("no downloadable formats found")
	}

	return selected, ".mp4", nil
}

func selectAudioFormat(video *youtube.Video) (*youtube.Format, string, error) {
	var selected *youtube.Format
	for i := range video.Formats {
		f := &video.Formats[i]
		if !strings.Contains(f.MimeType, "audio/") {
			continue
		}
		// Prefer m4a streams; among equals take the highest bitrate.
		better := selected == nil ||
			(isM4A(f) && !isM4A(selected)) ||
			(isM4A(f) == isM4A(selected) && f.Bitrate > selected.Bitrate)
		if better {
			selected = f
		}
	}
	if selected == nil {
		return nil, "", fmt.Errorf("no audio formats found")
	}
	return selected, ".m4a", nil
}

func isM4A(f *youtube.Format) bool {
	return strings.Contains(f.MimeType, "audio/mp4")
}

func parseQualityNum(quality string) int {
	var num int
	fmt.Sscanf(quality, "%dp", &num)
	return num
}

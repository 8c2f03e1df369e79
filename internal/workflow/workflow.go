// Package workflow drives one user's download session: link classification,
// metadata fetch, quality selection, download, size check, delivery and
// cleanup. It owns the per-session state machine; the chat transport and
// the media resolver are collaborator ports.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/artur/tubefetch/internal/link"
	"github.com/artur/tubefetch/internal/quality"
	"github.com/artur/tubefetch/internal/resolver"
	"github.com/artur/tubefetch/internal/session"
	"github.com/artur/tubefetch/internal/storage"
)

// Options configures a Workflow.
type Options struct {
	MaxFileSize     int64
	MetadataTimeout time.Duration
	DownloadTimeout time.Duration
	WorkDir         string
}

type menuKey struct {
	chatID    int64
	messageID int
}

// Workflow coordinates download sessions for all users. One instance is
// shared by every handler goroutine; the session store provides the
// per-user atomicity.
type Workflow struct {
	store     *session.Store
	resolver  resolver.Resolver
	transport Transport
	history   HistoryRecorder
	opts      Options

	// ownership of presented quality menus, keyed by chat+message
	menusMu sync.Mutex
	menus   map[menuKey]int64
}

// New creates a Workflow. history may be nil.
func New(store *session.Store, res resolver.Resolver, transport Transport, history HistoryRecorder, opts Options) *Workflow {
	return &Workflow{
		store:     store,
		resolver:  res,
		transport: transport,
		history:   history,
		opts:      opts,
		menus:     make(map[menuKey]int64),
	}
}

// HandleLink processes a submitted message that may contain a video link.
// On success the session context is replaced (superseding any in-flight
// job) and the quality menu is presented, or the download starts directly
// when the user has auto-download enabled.
func (w *Workflow) HandleLink(userID, chatID int64, text string) {
	videoID, ok := link.Classify(text)
	if !ok {
		log.Printf("[WORKFLOW] Invalid link from %d: %v", userID, ErrInvalidLink)
		w.sendText(chatID, "📎 Please send a valid YouTube video link, e.g.\nhttps://youtube.com/watch?v=dQw4w9WgXcQ")
		return
	}

	statusID, err := w.transport.SendText(chatID, "🔍 Fetching video info...")
	if err != nil {
		log.Printf("[WORKFLOW] Failed to send status message to %d: %v", chatID, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), w.opts.MetadataTimeout)
	meta, err := w.resolver.FetchMetadata(ctx, videoID)
	cancel()
	if err != nil {
		// Distinguish causes in the log; the user gets one generic message.
		switch {
		case errors.Is(err, context.DeadlineExceeded):
			log.Printf("[WORKFLOW] Metadata fetch for %s timed out after %s: %v", videoID, w.opts.MetadataTimeout, err)
		case ctx.Err() != nil:
			log.Printf("[WORKFLOW] Metadata fetch for %s cancelled: %v", videoID, err)
		default:
			log.Printf("[WORKFLOW] Metadata fetch for %s failed: %v", videoID, err)
		}
		w.editText(chatID, statusID, "❌ Unable to fetch video information.\nThe video may be private, age-restricted or unavailable. Please try another link.")
		return
	}

	vctx := session.VideoContext{
		VideoID:  videoID,
		URL:      link.CanonicalURL(videoID),
		Title:    meta.Title,
		Duration: meta.Duration,
		Uploader: meta.Uploader,
	}
	generation := w.store.SetContext(userID, vctx)
	log.Printf("[WORKFLOW] New context for %d: video=%s generation=%d", userID, videoID, generation)

	prefs := w.store.Preferences(userID)
	if prefs.AutoDownload {
		if choice, ok := quality.ByKey(prefs.DefaultQuality); ok {
			w.editText(chatID, statusID, fmt.Sprintf("⚡ Auto-downloading %s in %s...", displayTitle(vctx.Title), choice.Label))
			w.runJob(userID, chatID, statusID, vctx, generation, choice)
			return
		}
		log.Printf("[WORKFLOW] User %d has unknown default quality %q, falling back to menu", userID, prefs.DefaultQuality)
	}

	w.presentMenu(userID, chatID, statusID, vctx)
}

// presentMenu renders the fixed quality table for the current context.
func (w *Workflow) presentMenu(userID, chatID int64, messageID int, vctx session.VideoContext) {
	text := fmt.Sprintf("✅ Video found!\n\n📹 Title: %s\n👤 Uploader: %s\n⏱ Duration: %s\n\n👇 Select download quality:",
		displayTitle(vctx.Title), displayUploader(vctx.Uploader), formatDuration(vctx.Duration))

	var rows [][]Button
	var row []Button
	for _, c := range quality.Choices {
		if c.AudioOnly {
			if len(row) > 0 {
				rows = append(rows, row)
				row = nil
			}
			rows = append(rows, []Button{{Label: c.Label, Data: quality.SelectionToken(c.Key, vctx.VideoID)}})
			continue
		}
		row = append(row, Button{Label: c.Label, Data: quality.SelectionToken(c.Key, vctx.VideoID)})
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows, []Button{{Label: "❌ Cancel", Data: quality.CancelToken(vctx.VideoID)}})

	if err := w.transport.EditMenu(chatID, messageID, text, rows); err != nil {
		log.Printf("[WORKFLOW] Failed to present quality menu to %d: %v", chatID, err)
		return
	}
	w.setMenuOwner(chatID, messageID, userID)
}

// HandleSelection processes a button press on a quality menu. fromID is the
// identity that pressed the button, which is not necessarily the menu owner.
func (w *Workflow) HandleSelection(fromID, chatID int64, messageID int, data string) {
	sel, err := quality.ParseToken(data)
	if err != nil {
		log.Printf("[WORKFLOW] Malformed callback from %d: %v", fromID, err)
		w.sendText(chatID, "⚠️ Unrecognized selection. Please send the video link again.")
		return
	}

	if owner, ok := w.menuOwner(chatID, messageID); ok && owner != fromID {
		log.Printf("[WORKFLOW] Rejected press from %d on menu owned by %d: %v", fromID, owner, ErrNotSessionOwner)
		w.sendText(chatID, "⛔ This menu belongs to another user. Send your own link to start a download.")
		return
	}

	if sel.Cancel {
		w.handleCancel(fromID, chatID, messageID, sel.VideoID)
		return
	}

	vctx, generation, err := w.resolveSelection(fromID, sel.VideoID)
	switch {
	case errors.Is(err, ErrNoActiveSession):
		log.Printf("[WORKFLOW] Selection from %d without active session", fromID)
		w.editText(chatID, messageID, "ℹ️ There is no active video for you. Please send the link again.")
		return
	case errors.Is(err, ErrStaleSelection):
		log.Printf("[WORKFLOW] Stale selection from %d: token video %s", fromID, sel.VideoID)
		w.editText(chatID, messageID, "♻️ That menu refers to an earlier video. Please send the link again.")
		return
	case err != nil:
		log.Printf("[WORKFLOW] Selection from %d failed: %v", fromID, err)
		w.editText(chatID, messageID, "❌ An error occurred. Please send the link again.")
		return
	}

	w.editText(chatID, messageID, fmt.Sprintf("⏳ Downloading %s in %s...\n\nStatus: starting...",
		displayTitle(vctx.Title), sel.Choice.Label))
	w.runJob(fromID, chatID, messageID, vctx, generation, sel.Choice)
}

// resolveSelection is the anti-staleness gate: the token's video must still
// be the session's current context.
func (w *Workflow) resolveSelection(userID int64, videoID string) (session.VideoContext, int64, error) {
	vctx, generation, ok := w.store.Current(userID)
	if !ok {
		return session.VideoContext{}, 0, ErrNoActiveSession
	}
	if vctx.VideoID != videoID {
		return session.VideoContext{}, 0, ErrStaleSelection
	}
	return vctx, generation, nil
}

func (w *Workflow) handleCancel(userID, chatID int64, messageID int, videoID string) {
	vctx, _, ok := w.store.Current(userID)
	if ok && vctx.VideoID == videoID {
		w.store.ClearContext(userID)
		log.Printf("[WORKFLOW] User %d cancelled video %s", userID, videoID)
	}
	w.clearMenuOwner(chatID, messageID)
	w.editText(chatID, messageID, "❌ Cancelled. Send another link whenever you're ready!")
}

// runJob executes one confirmed selection end to end: download into an
// isolated scope, size check, delivery, history record. The scope is
// released on every exit path. A completion whose generation no longer
// matches the session is discarded, never delivered.
func (w *Workflow) runJob(userID, chatID int64, messageID int, vctx session.VideoContext, generation int64, choice quality.Choice) {
	w.store.SetPhase(userID, session.PhaseDownloading)

	jobID := uuid.NewString()
	scope, err := storage.NewScope(w.opts.WorkDir, jobID)
	if err != nil {
		log.Printf("[WORKFLOW] Job %s: %v", jobID, err)
		w.failJob(userID, chatID, messageID, "❌ An internal error occurred. Please try again.")
		return
	}
	defer scope.Release()

	log.Printf("[WORKFLOW] Job %s: user=%d video=%s quality=%s generation=%d scope=%s",
		jobID, userID, vctx.VideoID, choice.Key, generation, scope.Dir())

	progress := func(m resolver.Milestone) {
		var status string
		switch m {
		case resolver.MilestoneStarted:
			status = "starting..."
		case resolver.MilestoneFetching:
			status = "downloading from YouTube..."
		case resolver.MilestoneFinalizing:
			status = "finalizing..."
		default:
			return
		}
		// Progress edits are best effort.
		w.editText(chatID, messageID, fmt.Sprintf("⏳ Downloading %s in %s...\n\nStatus: %s",
			displayTitle(vctx.Title), choice.Label, status))
	}

	ctx, cancel := context.WithTimeout(context.Background(), w.opts.DownloadTimeout)
	path, err := w.resolver.Download(ctx, vctx.VideoID, choice.FormatToken, scope.Dir(), progress)
	cancel()

	// A newer link submission supersedes this job: clean up and discard,
	// whatever the download outcome was.
	if current := w.store.Generation(userID); current != generation {
		log.Printf("[WORKFLOW] Job %s superseded (generation %d, current %d), discarding result", jobID, generation, current)
		return
	}

	if err != nil {
		log.Printf("[WORKFLOW] Job %s: %v: %v", jobID, ErrDownloadFailed, err)
		w.failJob(userID, chatID, messageID, "❌ Download failed.\nPlease try again or pick a different quality.")
		return
	}

	size, err := storage.CheckSize(path, w.opts.MaxFileSize)
	var tooLarge *storage.TooLargeError
	if errors.As(err, &tooLarge) {
		log.Printf("[WORKFLOW] Job %s: artifact too large: %d > %d (overage %d)",
			jobID, tooLarge.Actual, tooLarge.Max, tooLarge.Overage())
		w.failJob(userID, chatID, messageID, fmt.Sprintf("❌ File too large.\n\n💾 Size: %s\n🚫 Limit: %s\n\nPlease try a lower quality.",
			formatSize(tooLarge.Actual), formatSize(tooLarge.Max)))
		return
	}
	if err != nil {
		log.Printf("[WORKFLOW] Job %s: size check failed: %v", jobID, err)
		w.failJob(userID, chatID, messageID, "❌ Download failed.\nPlease try again or pick a different quality.")
		return
	}

	caption := fmt.Sprintf("✅ Download complete!\n\n📹 %s\n🎬 %s\n💾 %s",
		displayTitle(vctx.Title), choice.Label, formatSize(size))

	prefs := w.store.Preferences(userID)
	switch {
	case prefs.AsDocument:
		err = w.transport.SendDocument(chatID, path, caption)
	case choice.AudioOnly:
		err = w.transport.SendAudio(chatID, path, caption)
	default:
		err = w.transport.SendVideo(chatID, path, caption)
	}
	if err != nil {
		log.Printf("[WORKFLOW] Job %s: %v: %v", jobID, ErrDeliveryFailed, err)
		w.failJob(userID, chatID, messageID, "❌ Could not send the file. Please try again.")
		return
	}

	if w.history != nil {
		if herr := w.history.RecordDownload(userID, vctx.VideoID, vctx.Title, choice.Key, size); herr != nil {
			log.Printf("[WORKFLOW] Job %s: failed to record download: %v", jobID, herr)
		}
	}

	w.store.ClearContext(userID)
	w.clearMenuOwner(chatID, messageID)
	w.editText(chatID, messageID, "✅ Done! Your file has been sent.\n\nSend another link to download more. 🎬")
	log.Printf("[WORKFLOW] Job %s delivered: %d bytes", jobID, size)
}

// failJob reports a terminal failure and returns the session to the
// selection phase so the user can retry or submit a new link.
func (w *Workflow) failJob(userID, chatID int64, messageID int, text string) {
	w.store.SetPhase(userID, session.PhaseAwaitingSelection)
	w.editText(chatID, messageID, text)
}

func (w *Workflow) setMenuOwner(chatID int64, messageID int, userID int64) {
	w.menusMu.Lock()
	defer w.menusMu.Unlock()
	w.menus[menuKey{chatID, messageID}] = userID
}

func (w *Workflow) menuOwner(chatID int64, messageID int) (int64, bool) {
	w.menusMu.Lock()
	defer w.menusMu.Unlock()
	owner, ok := w.menus[menuKey{chatID, messageID}]
	return owner, ok
}

func (w *Workflow) clearMenuOwner(chatID int64, messageID int) {
	w.menusMu.Lock()
	defer w.menusMu.Unlock()
	delete(w.menus, menuKey{chatID, messageID})
}

func (w *Workflow) sendText(chatID int64, text string) {
	if _, err := w.transport.SendText(chatID, text); err != nil {
		log.Printf("[WORKFLOW] Failed to send message to %d: %v", chatID, err)
	}
}

func (w *Workflow) editText(chatID int64, messageID int, text string) {
	if err := w.transport.EditText(chatID, messageID, text); err != nil {
		log.Printf("[WORKFLOW] Failed to edit message %d in %d: %v", messageID, chatID, err)
	}
}

func displayTitle(title string) string {
	if title == "" {
		return "Unknown"
	}
	runes := []rune(title)
	if len(runes) > 60 {
		return string(runes[:57]) + "..."
	}
	return title
}

func displayUploader(uploader string) string {
	if uploader == "" {
		return "Unknown"
	}
	return uploader
}

func formatDuration(d time.Duration) string {
	if d <= 0 {
		return "Unknown"
	}
	total := int(d.Seconds())
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

func formatSize(bytes int64) string {
	return fmt.Sprintf("%.2f MB", float64(bytes)/(1024*1024))
}

package workflow

// Button is one inline-keyboard option.
type Button struct {
	Label string
	Data  string
}

// Transport is the outbound side of the chat layer. Rendering details live
// behind this port; the workflow only decides what gets conveyed.
type Transport interface {
	// SendText sends a plain message and returns its message ID.
	SendText(chatID int64, text string) (messageID int, err error)
	// EditText replaces the text of an earlier message.
	EditText(chatID int64, messageID int, text string) error
	// EditMenu replaces the text of an earlier message and attaches an
	// inline keyboard.
	EditMenu(chatID int64, messageID int, text string, rows [][]Button) error
	// SendVideo delivers a video file with a streaming-friendly hint.
	SendVideo(chatID int64, path, caption string) error
	// SendAudio delivers an audio file.
	SendAudio(chatID int64, path, caption string) error
	// SendDocument delivers a file as a plain document attachment.
	SendDocument(chatID int64, path, caption string) error
}

// HistoryRecorder persists completed downloads. Optional.
type HistoryRecorder interface {
	RecordDownload(userID int64, videoID, title, qualityKey string, sizeBytes int64) error
}

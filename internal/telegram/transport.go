// Package telegram adapts the Telegram Bot API to the workflow's transport
// port.
package telegram

import (
	"fmt"
	"log"
	"path/filepath"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/artur/tubefetch/internal/workflow"
)

// Transport sends workflow output through a Telegram bot.
type Transport struct {
	api *tgbotapi.BotAPI
}

// NewTransport wraps an authorized bot API client.
func NewTransport(api *tgbotapi.BotAPI) *Transport {
	return &Transport{api: api}
}

func (t *Transport) SendText(chatID int64, text string) (int, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	sent, err := t.api.Send(msg)
	if err != nil {
		return 0, fmt.Errorf("failed to send message: %w", err)
	}
	return sent.MessageID, nil
}

func (t *Transport) EditText(chatID int64, messageID int, text string) error {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	if _, err := t.api.Send(edit); err != nil {
		return fmt.Errorf("failed to edit message: %w", err)
	}
	return nil
}

func (t *Transport) EditMenu(chatID int64, messageID int, text string, rows [][]workflow.Button) error {
	keyboard := buildKeyboard(rows)
	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, keyboard)
	if _, err := t.api.Send(edit); err != nil {
		return fmt.Errorf("failed to edit menu: %w", err)
	}
	return nil
}

func (t *Transport) SendVideo(chatID int64, path, caption string) error {
	t.chatAction(chatID, tgbotapi.ChatUploadVideo)

	video := tgbotapi.NewVideo(chatID, tgbotapi.FilePath(path))
	video.Caption = caption
	video.SupportsStreaming = true
	if _, err := t.api.Send(video); err != nil {
		return fmt.Errorf("failed to send video: %w", err)
	}
	return nil
}

func (t *Transport) SendAudio(chatID int64, path, caption string) error {
	t.chatAction(chatID, tgbotapi.ChatUploadVoice)

	audio := tgbotapi.NewAudio(chatID, tgbotapi.FilePath(path))
	audio.Caption = caption
	audio.Title = filepath.Base(path)
	if _, err := t.api.Send(audio); err != nil {
		return fmt.Errorf("failed to send audio: %w", err)
	}
	return nil
}

func (t *Transport) SendDocument(chatID int64, path, caption string) error {
	t.chatAction(chatID, tgbotapi.ChatUploadDocument)

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FilePath(path))
	doc.Caption = caption
	if _, err := t.api.Send(doc); err != nil {
		return fmt.Errorf("failed to send document: %w", err)
	}
	return nil
}

// AckCallback answers a callback query so the client stops its spinner.
// answerCallbackQuery returns a bool, so it must go through Request, not Send.
func (t *Transport) AckCallback(callbackID, text string) {
	callback := tgbotapi.NewCallback(callbackID, text)
	// Ack failures are harmless; the press is still processed.
	if _, err := t.api.Request(callback); err != nil {
		log.Printf("[TELEGRAM] Failed to answer callback: %v", err)
	}
}

func (t *Transport) chatAction(chatID int64, action string) {
	if _, err := t.api.Request(tgbotapi.NewChatAction(chatID, action)); err != nil {
		log.Printf("[TELEGRAM] Failed to send chat action: %v", err)
	}
}

func buildKeyboard(rows [][]workflow.Button) tgbotapi.InlineKeyboardMarkup {
	var keyboard [][]tgbotapi.InlineKeyboardButton
	for _, row := range rows {
		var buttons []tgbotapi.InlineKeyboardButton
		for _, b := range row {
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(b.Label, b.Data))
		}
		keyboard = append(keyboard, buttons)
	}
	return tgbotapi.NewInlineKeyboardMarkup(keyboard...)
}

package handler

import (
	"fmt"
	"log"
	"strings"

	"github.com/artur/tubefetch/internal/database/repository"
	"github.com/artur/tubefetch/internal/quality"
	"github.com/artur/tubefetch/internal/session"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	prefPrefix        = "pref_"
	prefQualityPrefix = "pref_quality_"
	prefAutoDownload  = "pref_autodl"
	prefAsDocument    = "pref_asdoc"
)

// SettingsHandler shows and mutates per-user preferences via an inline menu.
type SettingsHandler struct {
	sessions  *session.Store
	userRepo  *repository.UserRepository
	statsRepo *repository.StatsRepository
	acker     CallbackAcker
}

func NewSettingsHandler(sessions *session.Store, userRepo *repository.UserRepository, statsRepo *repository.StatsRepository, acker CallbackAcker) *SettingsHandler {
	return &SettingsHandler{
		sessions:  sessions,
		userRepo:  userRepo,
		statsRepo: statsRepo,
		acker:     acker,
	}
}

func (h *SettingsHandler) CanHandle(update tgbotapi.Update) bool {
	if update.Message != nil {
		return update.Message.IsCommand() && update.Message.Command() == "settings"
	}
	if update.CallbackQuery != nil {
		return strings.HasPrefix(update.CallbackQuery.Data, prefPrefix)
	}
	return false
}

func (h *SettingsHandler) Handle(bot *tgbotapi.BotAPI, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.handleCallback(bot, update.CallbackQuery)
		return
	}

	recordCommand(h.userRepo, h.statsRepo, update.Message.From, "settings")

	prefs := h.sessions.Preferences(update.Message.From.ID)
	msg := tgbotapi.NewMessage(update.Message.Chat.ID, settingsText(prefs))
	msg.ReplyMarkup = settingsKeyboard(prefs)
	if _, err := bot.Send(msg); err != nil {
		log.Printf("[SETTINGS] Failed to send menu: %v", err)
	}
}

func (h *SettingsHandler) handleCallback(bot *tgbotapi.BotAPI, callback *tgbotapi.CallbackQuery) {
	if h.acker != nil {
		h.acker.AckCallback(callback.ID, "")
	}
	userID := callback.From.ID

	var prefs session.Preferences
	switch {
	case strings.HasPrefix(callback.Data, prefQualityPrefix):
		key := strings.TrimPrefix(callback.Data, prefQualityPrefix)
		if _, ok := quality.ByKey(key); !ok {
			log.Printf("[SETTINGS] Unknown quality key %q from %d", key, userID)
			return
		}
		prefs = h.sessions.UpdatePreferences(userID, func(p *session.Preferences) {
			p.DefaultQuality = key
		})
	case callback.Data == prefAutoDownload:
		prefs = h.sessions.UpdatePreferences(userID, func(p *session.Preferences) {
			p.AutoDownload = !p.AutoDownload
		})
	case callback.Data == prefAsDocument:
		prefs = h.sessions.UpdatePreferences(userID, func(p *session.Preferences) {
			p.AsDocument = !p.AsDocument
		})
	default:
		log.Printf("[SETTINGS] Unknown callback %q from %d", callback.Data, userID)
		return
	}

	edit := tgbotapi.NewEditMessageTextAndMarkup(
		callback.Message.Chat.ID,
		callback.Message.MessageID,
		settingsText(prefs),
		settingsKeyboard(prefs),
	)
	if _, err := bot.Send(edit); err != nil {
		log.Printf("[SETTINGS] Failed to update menu: %v", err)
	}
}

func settingsText(prefs session.Preferences) string {
	return fmt.Sprintf("⚙️ Download preferences\n\n• Default quality: %s\n• Auto-download: %s\n• Send as document: %s",
		prefs.DefaultQuality, onOff(prefs.AutoDownload), onOff(prefs.AsDocument))
}

func settingsKeyboard(prefs session.Preferences) tgbotapi.InlineKeyboardMarkup {
	var qualityRow []tgbotapi.InlineKeyboardButton
	for _, c := range quality.Choices {
		label := c.Key
		if c.Key == prefs.DefaultQuality {
			label = "✅ " + label
		}
		qualityRow = append(qualityRow, tgbotapi.NewInlineKeyboardButtonData(label, prefQualityPrefix+c.Key))
	}

	return tgbotapi.NewInlineKeyboardMarkup(
		qualityRow,
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Auto-download: "+onOff(prefs.AutoDownload), prefAutoDownload),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("As document: "+onOff(prefs.AsDocument), prefAsDocument),
		),
	)
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

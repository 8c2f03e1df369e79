package handler

import (
	"log"

	"github.com/artur/tubefetch/internal/database/repository"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const helpText = `🤖 Help Guide

🔗 How to download:
1. Copy a YouTube video URL
2. Paste it here
3. Select a quality
4. Wait for the file

⚡ Quality options:
• 🎬 Best — highest available
• 📺 720p — HD
• 📱 480p — balanced quality/size
• ⚡ 360p — fastest download
• 🎵 Audio — audio only

⚠️ Limitations:
• Files over the configured size limit are rejected
• Some age-restricted videos may not work

Use /settings to set a default quality or enable auto-download.`

type HelpHandler struct {
	userRepo  *repository.UserRepository
	statsRepo *repository.StatsRepository
}

func NewHelpHandler(userRepo *repository.UserRepository, statsRepo *repository.StatsRepository) *HelpHandler {
	return &HelpHandler{
		userRepo:  userRepo,
		statsRepo: statsRepo,
	}
}

func (h *HelpHandler) CanHandle(update tgbotapi.Update) bool {
	return update.Message != nil && update.Message.IsCommand() && update.Message.Command() == "help"
}

func (h *HelpHandler) Handle(bot *tgbotapi.BotAPI, update tgbotapi.Update) {
	recordCommand(h.userRepo, h.statsRepo, update.Message.From, "help")

	msg := tgbotapi.NewMessage(update.Message.Chat.ID, helpText)
	if _, err := bot.Send(msg); err != nil {
		log.Printf("[HELP] Failed to send message: %v", err)
	}
}

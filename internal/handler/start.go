package handler

import (
	"log"

	"github.com/artur/tubefetch/internal/database/repository"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const welcomeText = `🎬 Welcome, %s!

I download YouTube videos for you.

📌 How to use:
1. Send me a YouTube video link
2. Choose the quality
3. Receive the file right here

📎 Supported links:
• https://youtube.com/watch?v=...
• https://youtu.be/...
• https://youtube.com/shorts/...

⚡ Commands:
/help — usage guide
/status — bot statistics
/settings — download preferences

👉 Just send me a link to get started!`

type StartHandler struct {
	userRepo  *repository.UserRepository
	statsRepo *repository.StatsRepository
}

func NewStartHandler(userRepo *repository.UserRepository, statsRepo *repository.StatsRepository) *StartHandler {
	return &StartHandler{
		userRepo:  userRepo,
		statsRepo: statsRepo,
	}
}

func (h *StartHandler) CanHandle(update tgbotapi.Update) bool {
	return update.Message != nil && update.Message.IsCommand() && update.Message.Command() == "start"
}

func (h *StartHandler) Handle(bot *tgbotapi.BotAPI, update tgbotapi.Update) {
	userName := getUserName(update.Message.From.FirstName, update.Message.From.UserName)
	log.Printf("[START] Greeting user: %s", userName)

	recordCommand(h.userRepo, h.statsRepo, update.Message.From, "start")

	msg := tgbotapi.NewMessage(update.Message.Chat.ID, formatWelcome(userName))
	if _, err := bot.Send(msg); err != nil {
		log.Printf("[START] Failed to send message: %v", err)
	}
}

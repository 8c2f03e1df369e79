package handler

import (
	"fmt"
	"log"
	"strings"

	"github.com/artur/tubefetch/internal/database/repository"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type StatusHandler struct {
	userRepo     *repository.UserRepository
	statsRepo    *repository.StatsRepository
	downloadRepo *repository.DownloadRepository
}

func NewStatusHandler(userRepo *repository.UserRepository, statsRepo *repository.StatsRepository, downloadRepo *repository.DownloadRepository) *StatusHandler {
	return &StatusHandler{
		userRepo:     userRepo,
		statsRepo:    statsRepo,
		downloadRepo: downloadRepo,
	}
}

func (h *StatusHandler) CanHandle(update tgbotapi.Update) bool {
	return update.Message != nil && update.Message.IsCommand() && update.Message.Command() == "status"
}

func (h *StatusHandler) Handle(bot *tgbotapi.BotAPI, update tgbotapi.Update) {
	recordCommand(h.userRepo, h.statsRepo, update.Message.From, "status")

	msg := tgbotapi.NewMessage(update.Message.Chat.ID, h.buildReport())
	if _, err := bot.Send(msg); err != nil {
		log.Printf("[STATUS] Failed to send message: %v", err)
	}
}

func (h *StatusHandler) buildReport() string {
	var b strings.Builder
	b.WriteString("🟢 Bot status: online\n\n📊 Statistics:\n")

	if users, err := h.userRepo.GetTotalUsers(); err == nil {
		fmt.Fprintf(&b, "• Users served: %d\n", users)
	} else {
		log.Printf("[STATUS] Failed to count users: %v", err)
	}
	if downloads, err := h.downloadRepo.GetTotalDownloads(); err == nil {
		fmt.Fprintf(&b, "• Videos delivered: %d\n", downloads)
	} else {
		log.Printf("[STATUS] Failed to count downloads: %v", err)
	}
	if bytes, err := h.downloadRepo.GetTotalBytes(); err == nil {
		fmt.Fprintf(&b, "• Data delivered: %.2f MB\n", float64(bytes)/(1024*1024))
	} else {
		log.Printf("[STATUS] Failed to sum download bytes: %v", err)
	}
	if commands, err := h.statsRepo.GetTotalCommands(); err == nil {
		fmt.Fprintf(&b, "• Commands handled: %d\n", commands)
	} else {
		log.Printf("[STATUS] Failed to count commands: %v", err)
	}

	if popular, err := h.downloadRepo.GetPopularVideos(3); err == nil && len(popular) > 0 {
		b.WriteString("\n🏆 Most downloaded:\n")
		for _, video := range popular {
			title := video.VideoTitle
			if title == "" {
				title = video.VideoID
			}
			fmt.Fprintf(&b, "• %s (%d)\n", title, video.DownloadCount)
		}
	}

	return b.String()
}

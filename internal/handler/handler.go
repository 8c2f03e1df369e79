// Package handler routes inbound Telegram updates to the download workflow
// and the auxiliary bot commands.
package handler

import (
	"fmt"
	"log"

	"github.com/artur/tubefetch/internal/database/repository"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// CallbackAcker answers callback queries so clients stop their spinners.
type CallbackAcker interface {
	AckCallback(callbackID, text string)
}

func getUserName(firstName, userName string) string {
	if firstName != "" {
		return firstName
	}
	return userName
}

func formatWelcome(userName string) string {
	return fmt.Sprintf(welcomeText, userName)
}

// recordCommand upserts the user and stores a command-stat row. Persistence
// failures never block handling.
func recordCommand(userRepo *repository.UserRepository, statsRepo *repository.StatsRepository, tgUser *tgbotapi.User, command string) {
	if userRepo == nil || statsRepo == nil {
		return
	}
	user, err := userRepo.UpsertFromTelegram(tgUser)
	if err != nil {
		log.Printf("[HANDLER] Failed to upsert user: %v", err)
		return
	}
	if err := statsRepo.RecordCommand(user.ID, command); err != nil {
		log.Printf("[HANDLER] Failed to record command %q: %v", command, err)
	}
}

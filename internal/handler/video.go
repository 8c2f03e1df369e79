package handler

import (
	"github.com/artur/tubefetch/internal/database/repository"
	"github.com/artur/tubefetch/internal/quality"
	"github.com/artur/tubefetch/internal/workflow"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// VideoHandler feeds link messages and quality-menu presses into the
// download workflow. It claims every non-command text message so the
// workflow can tell the user when a message is not a usable link.
type VideoHandler struct {
	workflow  *workflow.Workflow
	userRepo  *repository.UserRepository
	statsRepo *repository.StatsRepository
	acker     CallbackAcker
}

func NewVideoHandler(wf *workflow.Workflow, userRepo *repository.UserRepository, statsRepo *repository.StatsRepository, acker CallbackAcker) *VideoHandler {
	return &VideoHandler{
		workflow:  wf,
		userRepo:  userRepo,
		statsRepo: statsRepo,
		acker:     acker,
	}
}

func (h *VideoHandler) CanHandle(update tgbotapi.Update) bool {
	if update.Message != nil {
		return update.Message.Text != "" && !update.Message.IsCommand()
	}
	if update.CallbackQuery != nil {
		return quality.IsToken(update.CallbackQuery.Data)
	}
	return false
}

func (h *VideoHandler) Handle(bot *tgbotapi.BotAPI, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		callback := update.CallbackQuery
		if h.acker != nil {
			h.acker.AckCallback(callback.ID, "")
		}
		h.workflow.HandleSelection(
			callback.From.ID,
			callback.Message.Chat.ID,
			callback.Message.MessageID,
			callback.Data,
		)
		return
	}

	recordCommand(h.userRepo, h.statsRepo, update.Message.From, "video_request")
	h.workflow.HandleLink(update.Message.From.ID, update.Message.Chat.ID, update.Message.Text)
}

package main

import (
	"log"

	"github.com/artur/tubefetch/internal/bot"
	"github.com/artur/tubefetch/internal/config"
	"github.com/artur/tubefetch/internal/database"
	"github.com/artur/tubefetch/internal/database/repository"
	"github.com/artur/tubefetch/internal/handler"
	"github.com/artur/tubefetch/internal/quality"
	"github.com/artur/tubefetch/internal/resolver"
	"github.com/artur/tubefetch/internal/session"
	"github.com/artur/tubefetch/internal/telegram"
	"github.com/artur/tubefetch/internal/workflow"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	userRepo := repository.NewUserRepository(db.DB)
	statsRepo := repository.NewStatsRepository(db.DB)
	downloadRepo := repository.NewDownloadRepository(db.DB)
	prefRepo := repository.NewPreferenceRepository(db.DB)

	b, err := bot.New(cfg.TelegramToken)
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	sessions := session.NewStore(prefRepo, quality.DefaultKey)
	transport := telegram.NewTransport(b.API())
	history := repository.NewDownloadHistory(userRepo, downloadRepo)

	wf := workflow.New(sessions, resolver.NewYouTubeResolver(), transport, history, workflow.Options{
		MaxFileSize:     cfg.MaxFileSize,
		MetadataTimeout: cfg.MetadataTimeout,
		DownloadTimeout: cfg.DownloadTimeout,
		WorkDir:         cfg.WorkDir,
	})

	b.RegisterHandler(handler.NewStartHandler(userRepo, statsRepo))
	b.RegisterHandler(handler.NewHelpHandler(userRepo, statsRepo))
	b.RegisterHandler(handler.NewStatusHandler(userRepo, statsRepo, downloadRepo))
	b.RegisterHandler(handler.NewSettingsHandler(sessions, userRepo, statsRepo, transport))
	b.RegisterHandler(handler.NewVideoHandler(wf, userRepo, statsRepo, transport))

	b.Run()
}

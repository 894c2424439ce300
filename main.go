package main

import (
	"context"
	"log"
	"os"
	"sync"

	"github.com/joho/godotenv"

	"github.com/Chuk2022/VKBot-GDM/internal/bot"
	"github.com/Chuk2022/VKBot-GDM/internal/bot/handlers"
	"github.com/Chuk2022/VKBot-GDM/internal/bot/state"
	"github.com/Chuk2022/VKBot-GDM/internal/config"
	"github.com/Chuk2022/VKBot-GDM/internal/domain"
	"github.com/Chuk2022/VKBot-GDM/internal/logger"
	"github.com/Chuk2022/VKBot-GDM/internal/repository"
	"github.com/Chuk2022/VKBot-GDM/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.InitWithConfig(logger.Config{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	}); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	logger.Info("Starting glucose diary bot...")

	db, err := repository.NewPostgresDB(cfg.DB)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	readingRepo := repository.NewReadingRepository(db)

	// Pending input lives in Redis when configured, otherwise in process
	// memory.
	var tracker domain.PendingTracker
	if cfg.Redis.Host != "" {
		redisTracker, err := state.NewRedisManager(cfg.Redis.Host, cfg.Redis.Port)
		if err != nil {
			logger.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisTracker.Close()
		tracker = redisTracker
		logger.Info("Using Redis pending-input tracker")
	} else {
		tracker = state.NewManager()
	}

	deps := handlers.Dependencies{
		UserService: services.NewUserService(userRepo, cfg.AdminIDs),
		IntakeSvc:   services.NewIntakeService(readingRepo, tracker),
		StatsSvc:    services.NewStatsService(userRepo, readingRepo),
		ReportSvc:   services.NewReportService(userRepo, readingRepo),
	}

	telegramBot, err := bot.NewBot(cfg.TelegramToken, deps)
	if err != nil {
		logger.Fatalf("Failed to create bot: %v", err)
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := telegramBot.Start(context.Background()); err != nil {
			logger.Errorf("Bot stopped with error: %v", err)
			os.Exit(1)
		}
	}()

	logger.Info("Bot is running. Press Ctrl+C to stop.")
	wg.Wait()
}

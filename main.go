package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/vladimiradmaev/babycare-helper/internal/bot"
	"github.com/vladimiradmaev/babycare-helper/internal/bot/handlers"
	"github.com/vladimiradmaev/babycare-helper/internal/bot/state"
	"github.com/vladimiradmaev/babycare-helper/internal/config"
	"github.com/vladimiradmaev/babycare-helper/internal/database"
	"github.com/vladimiradmaev/babycare-helper/internal/logger"
	"github.com/vladimiradmaev/babycare-helper/internal/metrics"
	"github.com/vladimiradmaev/babycare-helper/internal/reminders"
	"github.com/vladimiradmaev/babycare-helper/internal/repository"
	"github.com/vladimiradmaev/babycare-helper/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logger.Warn(".env file not found, using the environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", "error", err)
	}

	if err := logger.InitWithConfig(logger.Config{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	}); err != nil {
		logger.Fatal("Failed to initialize logger", "error", err)
	}
	defer logger.Close()
	logger.Info("Starting Baby Care Helper Bot", "timezone", cfg.Timezone, "db_driver", cfg.DB.Driver)

	db, err := database.Open(cfg.DB)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	logger.Info("Database connection established and migrations completed")

	var stateManager state.StateManager
	if cfg.Redis.Enabled() {
		redisManager, err := state.NewRedisManager(cfg.Redis.Addr())
		if err != nil {
			logger.Fatal("Failed to connect to Redis", "addr", cfg.Redis.Addr(), "error", err)
		}
		stateManager = redisManager
		logger.Info("Using Redis state manager", "addr", cfg.Redis.Addr())
	} else {
		stateManager = state.NewManager()
		logger.Info("Using in-memory state manager")
	}
	defer stateManager.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize repositories and services
	userRepo := repository.NewUserRepository(db)
	entryRepo := repository.NewEntryRepository(db)
	measurementRepo := repository.NewMeasurementRepository(db)

	userService := services.NewUserService(userRepo)
	profileService := services.NewProfileService(repository.NewProfileRepository(db), userRepo)
	sleepService := services.NewSleepService(repository.NewSleepRepository(db))
	engine := reminders.NewEngine(cfg.Reminders(), cfg.IronDosing())
	reminderService := services.NewReminderService(engine, entryRepo, cfg.Location())

	aiService, err := services.NewAIService(ctx, cfg.GeminiAPIKey, cfg.OpenAIAPIKey)
	if err != nil {
		logger.Fatal("Failed to initialize assistant", "error", err)
	}
	defer aiService.Close()
	if !aiService.Enabled() {
		logger.Warn("No AI keys configured, /ask is disabled")
	}
	logger.Info("Services initialized successfully")

	deps := handlers.Dependencies{
		UserService:        userService,
		ProfileService:     profileService,
		EntryService:       services.NewEntryService(entryRepo, stateManager, cfg.Care.UndoWindow),
		MeasurementService: services.NewMeasurementService(measurementRepo),
		VisitService:       services.NewVisitService(repository.NewVisitRepository(db)),
		SleepService:       sleepService,
		GrowthService:      services.NewGrowthService(measurementRepo),
		StatsService:       services.NewStatsService(entryRepo, sleepService),
		ReminderService:    reminderService,
		AIService:          aiService,
		Location:           cfg.Location(),
	}

	telegramBot, err := bot.NewBot(cfg.TelegramToken, deps, stateManager)
	if err != nil {
		logger.Fatal("Failed to create bot", "error", err)
	}
	logger.Info("Bot initialized successfully")

	scheduler := services.NewReminderScheduler(
		userService,
		profileService,
		reminderService,
		engine,
		bot.NewNotifier(telegramBot.API()),
		stateManager,
		cfg.Care.ReminderTick,
	)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		scheduler.Run(ctx)
	}()

	if cfg.MetricsAddr != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			logger.Info("Serving metrics", "addr", cfg.MetricsAddr)
			if err := metrics.Serve(ctx, cfg.MetricsAddr); err != nil {
				logger.Error("Metrics server stopped", "error", err)
			}
		}()
	}

	logger.Info("Bot is running. Press Ctrl+C to stop.")
	if err := telegramBot.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Bot stopped with error", "error", err)
	}
	telegramBot.Stop()
	stop()
	wg.Wait()
	logger.Info("Shutdown complete")
}

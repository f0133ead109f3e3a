package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"tobacco-catalog-be/internal/bootstrap"
	"tobacco-catalog-be/internal/config"
	"tobacco-catalog-be/internal/handler"
	"tobacco-catalog-be/internal/model"
	"tobacco-catalog-be/internal/server"
	"tobacco-catalog-be/internal/tracer"
	"tobacco-catalog-be/pkg/database"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer(cfg.Telemetry)
	defer shutdownTracer(context.Background())

	// 3. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection, cfg.App.IsProduction())
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}
	if cfg.Database.AutoMigrate {
		if err := gormDB.AutoMigrate(model.All()...); err != nil {
			log.Panicf("AutoMigrate failed: %v", err)
		}
	} else {
		log.Println("[WARN] DB_AUTO_MIGRATE=false, run cmd/migrate before serving traffic")
	}

	// 4. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)
	defer container.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 5. Start Background Services
	go func() {
		log.Println("Background: Starting Consumer Service...")
		if err := container.ConsumerService.Consume(ctx); err != nil {
			log.Printf("Background Consumer Error: %v", err)
		}
	}()

	// 6. Telegram gateway (HTTP only when no token is set)
	if cfg.Telegram.BotToken != "" {
		bot, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
		if err != nil {
			log.Panicf("Unable to start Telegram bot: %v", err)
		}
		bot.Debug = cfg.Telegram.Debug
		log.Printf("Authorized on Telegram account %s", bot.Self.UserName)

		u := tgbotapi.NewUpdate(0)
		u.Timeout = cfg.Telegram.PollTimeout
		updates := bot.GetUpdatesChan(u)

		telegram := handler.NewTelegramHandler(bot, container.ConversationService, container.Logger)
		go telegram.Run(ctx, updates)
		defer bot.StopReceivingUpdates()
	} else {
		log.Println("[WARN] TELEGRAM_BOT_TOKEN is not set, Telegram gateway disabled")
	}

	// 7. Initialize Server
	srv := server.New(cfg, container)

	go func() {
		<-ctx.Done()
		log.Println("Shutting down...")
		if err := srv.Shutdown(); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	// 8. Run Server
	if err := srv.Run(); err != nil {
		log.Printf("Server stopped: %v", err)
	}
}

package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/vaxtrack/vaxtrack-backend/internal/apps"
	"github.com/vaxtrack/vaxtrack-backend/internal/apps/appointments"
	"github.com/vaxtrack/vaxtrack-backend/internal/apps/assistant"
	"github.com/vaxtrack/vaxtrack-backend/internal/apps/children"
	"github.com/vaxtrack/vaxtrack-backend/internal/apps/clinics"
	"github.com/vaxtrack/vaxtrack-backend/internal/apps/messages"
	"github.com/vaxtrack/vaxtrack-backend/internal/apps/notifications"
	"github.com/vaxtrack/vaxtrack-backend/internal/apps/vaccinations"
	"github.com/vaxtrack/vaxtrack-backend/internal/config"
	"github.com/vaxtrack/vaxtrack-backend/internal/database"
	"github.com/vaxtrack/vaxtrack-backend/internal/dto"
	"github.com/vaxtrack/vaxtrack-backend/internal/handlers"
	"github.com/vaxtrack/vaxtrack-backend/internal/logging"
	"github.com/vaxtrack/vaxtrack-backend/internal/middleware"
	"github.com/vaxtrack/vaxtrack-backend/internal/realtime"
	"github.com/vaxtrack/vaxtrack-backend/internal/reminders"
	"github.com/vaxtrack/vaxtrack-backend/internal/routes"
	"github.com/vaxtrack/vaxtrack-backend/internal/services"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()

	if !cfg.HasAuth() {
		slog.Error("AUTH_JWKS_URL or AUTH_JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	// Migrate shared models
	if err := database.MigrateShared(); err != nil {
		slog.Error("shared migration failed", "error", err)
		os.Exit(1)
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(database.DB)
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		logging.NewStdoutHandler(),
		pgLogHandler,
	)))

	// Retention: 30-day logs, expired notifications
	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, cleanupDone)

	// Outbound channels
	media, err := services.NewMediaStore(cfg)
	if err != nil {
		slog.Error("media store init failed", "error", err)
		os.Exit(1)
	}
	users := services.NewUserStore(database.DB)
	dispatcher := services.NewDispatcher(
		services.NewNotificationStore(database.DB),
		users,
		services.NewMailer(cfg),
		services.NewSMSSender(cfg),
		cfg.NotificationTTL,
	)

	// Realtime
	hub := realtime.NewHub()
	messageService := messages.NewMessageService(messages.NewStore(database.DB), users, hub)

	deps := &apps.Deps{
		DB:       database.DB,
		Config:   cfg,
		Users:    users,
		Notifier: dispatcher,
		Media:    media,
		Realtime: hub,
	}

	// Resource plugins, in migration order
	plugins := []apps.Plugin{
		children.New(),
		clinics.New(),
		vaccinations.New(),
		appointments.New(),
		messages.New(messageService),
		notifications.New(),
		assistant.New(nil),
	}

	for _, p := range plugins {
		if models := p.Models(); len(models) > 0 {
			if err := database.MigrateModels(models); err != nil {
				slog.Error("plugin migration failed", "plugin", p.ID(), "error", err)
				os.Exit(1)
			}
			slog.Info("plugin migrated", "plugin", p.ID(), "models", len(models))
		}
	}

	// Reminder scheduler
	scheduler, err := reminders.NewScheduler(reminders.NewStore(database.DB), dispatcher, reminders.Options{
		Cron:               cfg.ReminderCron,
		Lookahead:          cfg.ReminderLookahead,
		DedupeVaccinations: cfg.ReminderDedupeVaccinations,
	})
	if err != nil {
		slog.Error("reminder scheduler init failed", "error", err)
		os.Exit(1)
	}
	scheduler.Start()

	// Handlers
	authHandler := handlers.NewAuthHandler(services.NewAuthService(users))
	healthHandler := handlers.NewHealthHandler(hub)
	wsHandler := realtime.NewHandler(hub, messageService)

	// Sentry error tracking
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      os.Getenv("APP_ENV"),
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    10 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	// Sentry middleware
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})

	// Routes
	routes.Setup(app, cfg, deps, authHandler, healthHandler, wsHandler, plugins)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port, "api_version", cfg.APIVersion)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	scheduler.Stop()
	close(cleanupDone)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	// Close database connections
	if sqlDB, err := database.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(dto.ErrorResponse{Error: true, Message: message})
}

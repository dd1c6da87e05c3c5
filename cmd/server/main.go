package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"

	"rf-loans/internal/adapters/http/middleware"
	"rf-loans/internal/adapters/http/routes"
	"rf-loans/internal/adapters/persistence/models"
	"rf-loans/internal/adapters/persistence/repositories"
	"rf-loans/internal/config"
	"rf-loans/internal/core/services"
	"rf-loans/internal/core/usecases"

	_ "rf-loans/docs" // Swagger docs
)

// @title RF Loans API
// @version 1.0
// @description Radio unit loan tracking API
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

// run owns every resource it opens, so deferred cleanup always happens before main exits
func run(cfg *config.Config, logger *slog.Logger) error {
	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer func() {
		if err := config.CloseDatabase(db); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	if err := models.AutoMigrate(db); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	logger.Info("database migration completed")

	// Wire the core
	uow := repositories.NewUnitOfWork(db)
	catalogService := services.NewCatalogService(uow, services.WithLogger(logger))
	loanService := services.NewLoanService(uow, services.WithLogger(logger))
	queryService := services.NewQueryService(uow, repositories.NewAuditReader(db))

	if cfg.IsDev() && cfg.SeedDemoData {
		if err := config.NewSeeder(catalogService, logger).Run(context.Background()); err != nil {
			logger.Warn("failed to seed demo data", "error", err)
		}
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:               "RF Loans API v1.0",
		ErrorHandler:          middleware.CustomErrorHandler,
		JSONEncoder:           jsoniter.ConfigCompatibleWithStandardLibrary.Marshal,
		JSONDecoder:           jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal,
		DisableStartupMessage: cfg.IsProd(),
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	routes.Setup(app, routes.Dependencies{
		Catalog:     usecases.NewCatalog(catalogService),
		Loans:       usecases.NewLoans(loanService),
		Queries:     queryService,
		HealthCheck: func() error { return config.HealthCheck(db) },
		JWTSecret:   cfg.JWT.Secret,
		AppMode:     cfg.AppMode,
		Logger:      logger,
	})

	// Graceful shutdown
	go gracefulShutdown(app, logger)

	logger.Info("server starting", "port", cfg.Port, "mode", cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	return nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	if cfg.IsProd() {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App, logger *slog.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	if err := app.Shutdown(); err != nil {
		logger.Error("error during shutdown", "error", err)
	}
	logger.Info("server stopped gracefully")
}

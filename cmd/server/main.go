package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"dairyhub/internal/adapters/http/middleware"
	"dairyhub/internal/adapters/http/routes"
	"dairyhub/internal/adapters/persistence/models"
	"dairyhub/internal/config"
	"dairyhub/internal/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.Config{}).Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.New(logger.Config{
		Dev:   cfg.IsDev(),
		Level: cfg.Log.Level,
	})

	// Monetary fields serialize as JSON numbers, not strings
	decimal.MarshalJSONWithoutQuotes = true

	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer config.CloseDatabase(db)

	if err := models.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to auto migrate")
	}
	log.Info().Msg("database migration completed")

	app := fiber.New(fiber.Config{
		AppName:      "dairyhub API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	middleware.Setup(app, cfg, log)
	routes.Setup(app, db, cfg, log)

	go gracefulShutdown(app, log)

	log.Info().Str("port", cfg.Port).Str("mode", cfg.AppMode).Msg("server starting")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}

// gracefulShutdown stops the server on SIGINT/SIGTERM
func gracefulShutdown(app *fiber.App, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	if err := app.Shutdown(); err != nil {
		log.Error().Err(err).Msg("error during shutdown")
	}
}

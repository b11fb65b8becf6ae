package main

import (
	"context"
	"net/http"
	"os"

	webAdapter "invoice-dashboard/internal/adapters/web"
	"invoice-dashboard/internal/app"
	"invoice-dashboard/internal/config"
	"invoice-dashboard/internal/core"
	"invoice-dashboard/internal/db"
	"invoice-dashboard/internal/logger"
)

func main() {
	bootLog := logger.GetLogger()
	cfg, err := config.Load()
	if err != nil {
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}
	if err := logger.Setup(cfg.GetLoggerConfig()); err != nil {
		bootLog.Fatal().Err(err).Msg("failed to set up logging")
	}
	log := logger.WithComponent("server")

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	analytics := core.NewAnalyticsService(pool)
	chat := core.NewChatService(pool)
	svc := app.NewAppService(pool, analytics, chat)

	handler := webAdapter.NewHandler(svc, cfg.AllowedOrigins)

	log.Info().Str("port", cfg.ServerPort).Msg("server starting")
	if err := http.ListenAndServe(":"+cfg.ServerPort, handler); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}

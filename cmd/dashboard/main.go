package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"dreami/internal/analytics"
	"dreami/internal/config"
	"dreami/internal/dashboard"
	"dreami/internal/logging"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.New()
	logging.Setup(cfg.LogLevel, cfg.LogFilePath)

	if cfg.DashboardToken == "" {
		slog.Error("DASHBOARD_TOKEN is not set")
		os.Exit(1)
	}

	store, err := analytics.NewFileStore(cfg.AnalyticsDir)
	if err != nil {
		slog.Error("failed to init analytics store", "err", err)
		os.Exit(1)
	}

	srv := dashboard.New(store, cfg.DashboardToken)
	slog.Info("dashboard listening", "addr", cfg.DashboardAddr)
	if err := srv.Run(cfg.DashboardAddr); err != nil {
		slog.Error("dashboard server stopped", "err", err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"dreami/internal/analytics"
	"dreami/internal/config"
	"dreami/internal/dreams"
	"dreami/internal/interpreter"
	"dreami/internal/llm"
	"dreami/internal/logging"
	"dreami/internal/quota"
	"dreami/internal/scheduler"
	"dreami/internal/telegram"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.New()
	logging.Setup(cfg.LogLevel, cfg.LogFilePath)

	if cfg.TelegramBotToken == "" {
		slog.Error("TELEGRAM_BOT_TOKEN is not set")
		os.Exit(1)
	}

	store, err := analytics.NewFileStore(cfg.AnalyticsDir)
	if err != nil {
		slog.Error("failed to init analytics store", "err", err)
		os.Exit(1)
	}

	llmClient, err := llm.NewFactory(cfg).CreateClient(string(cfg.LLMProvider))
	if err != nil {
		slog.Error("failed to create llm client", "err", err)
		os.Exit(1)
	}
	transcriber := llm.NewWhisper(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.WhisperModel)

	history := dreams.NewManager()
	classifier := dreams.NewClassifier()
	policy := quota.New(store)

	interp := interpreter.New(llmClient, history, classifier, policy, store, readSystemPrompt(cfg.SystemPromptPath))

	bot, err := telegram.New(cfg.TelegramBotToken, interp, transcriber, history, policy, store, cfg.AdminUserID)
	if err != nil {
		slog.Error("failed to create bot", "err", err)
		os.Exit(1)
	}

	sched := scheduler.New()
	sched.SetDigestFunction(func() error {
		date := time.Now().UTC().Format("2006-01-02")
		day, ok := store.DailySummary(date)
		if !ok {
			slog.Info("no activity today, skipping digest", "date", date)
			return nil
		}
		bot.SendToAdmin(analytics.DigestText(date, day))
		return nil
	})
	if err := sched.Start(); err != nil {
		slog.Error("failed to start scheduler", "err", err)
	}
	defer sched.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bot.Start(ctx)
}

func readSystemPrompt(path string) string {
	if path == "" {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("system prompt file not readable, using built-in prompt", "path", path, "err", err)
		return ""
	}
	return string(data)
}

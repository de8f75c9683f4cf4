package config

import (
	"log"

	"github.com/caarlos0/env/v6"
)

type LLMProvider string

const (
	ProviderOpenAI LLMProvider = "openai"
	ProviderYandex LLMProvider = "yandex"
)

type Config struct {
	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN"`
	AdminUserID      int64  `env:"ADMIN_USER"`

	// LLM settings
	LLMProvider      LLMProvider `env:"LLM_PROVIDER" envDefault:"openai"`
	OpenAIAPIKey     string      `env:"OPENAI_API_KEY"`
	OpenAIBaseURL    string      `env:"OPENAI_BASE_URL"`
	OpenAIModel      string      `env:"OPENAI_MODEL" envDefault:"gpt-4"`
	WhisperModel     string      `env:"WHISPER_MODEL" envDefault:"whisper-1"`
	YandexOAuthToken string      `env:"YANDEX_OAUTH_TOKEN"`
	YandexFolderID   string      `env:"YANDEX_FOLDER_ID"`

	// Interpretation tuning
	MaxTokens   int     `env:"MAX_TOKENS" envDefault:"600"`
	Temperature float64 `env:"TEMPERATURE" envDefault:"0.6"`

	// Prompts
	SystemPromptPath string `env:"SYSTEM_PROMPT_PATH" envDefault:"prompts/system_prompt.txt"`

	// Storage
	AnalyticsDir string `env:"ANALYTICS_DIR" envDefault:"analytics"`

	// Dashboard
	DashboardToken string `env:"DASHBOARD_TOKEN"`
	DashboardAddr  string `env:"DASHBOARD_ADDR" envDefault:":8000"`

	// Logging
	LogFilePath string `env:"LOG_FILE_PATH"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
}

func New() *Config {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	return cfg
}

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

type Config struct {
	TelegramToken string

	ImageProvider    string
	GeminiAPIKey     string
	GeminiBaseURL    string
	GeminiAPIVersion string
	GeminiImageModel string
	OpenAIAPIKey     string
	OpenAIBaseURL    string
	OpenAIImageModel string

	WebAddr string

	LogLevel string
	Debug    bool

	PreferIPv4 bool

	MediaGroupDebounce   time.Duration
	MaxConcurrent        int
	RequestTimeout       time.Duration
	HTTPTimeout          time.Duration
	PreviewRatePerMinute int
	PreviewTicketTTL     time.Duration
	SessionIdleTTL       time.Duration
}

// Load reads the environment and fills defaults. Secrets are not required
// here; each binary checks what it needs with ValidateBot / ValidatePreview.
func Load() (Config, error) {
	cfg := Config{
		TelegramToken:        strings.TrimSpace(os.Getenv("TELEGRAM_BOT_TOKEN")),
		ImageProvider:        strings.ToLower(getEnv("IMAGE_PROVIDER", ProviderGemini)),
		GeminiAPIKey:         strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		GeminiBaseURL:        getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
		GeminiAPIVersion:     getEnv("GEMINI_API_VERSION", "v1beta"),
		GeminiImageModel:     getEnv("GEMINI_IMAGE_MODEL", "gemini-2.5-flash-image"),
		OpenAIAPIKey:         strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		OpenAIBaseURL:        getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIImageModel:     getEnv("OPENAI_IMAGE_MODEL", "dall-e-3"),
		WebAddr:              getEnv("WEB_ADDR", ":8080"),
		LogLevel:             strings.ToLower(getEnv("LOG_LEVEL", "info")),
		Debug:                getEnvBool("DEBUG", false),
		PreferIPv4:           getEnvBool("PREFER_IPV4", true),
		MediaGroupDebounce:   time.Duration(getEnvInt("MEDIA_GROUP_DEBOUNCE_MS", 1200)) * time.Millisecond,
		MaxConcurrent:        getEnvInt("MAX_CONCURRENT", 4),
		RequestTimeout:       getEnvSeconds("REQUEST_TIMEOUT_SECONDS", 180),
		HTTPTimeout:          getEnvSeconds("HTTP_TIMEOUT_SECONDS", 180),
		PreviewRatePerMinute: getEnvInt("PREVIEW_RATE_PER_MINUTE", 10),
		PreviewTicketTTL:     getEnvSeconds("PREVIEW_TICKET_TTL_SECONDS", 600),
		SessionIdleTTL:       getEnvSeconds("SESSION_IDLE_SECONDS", 86400),
	}

	switch cfg.ImageProvider {
	case ProviderGemini, ProviderOpenAI:
	default:
		return Config{}, fmt.Errorf("IMAGE_PROVIDER must be %q or %q, got %q", ProviderGemini, ProviderOpenAI, cfg.ImageProvider)
	}

	if cfg.MaxConcurrent < 1 {
		cfg.MaxConcurrent = 1
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 180 * time.Second
	}
	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = 180 * time.Second
	}
	if cfg.PreviewRatePerMinute < 0 {
		cfg.PreviewRatePerMinute = 0
	}
	if cfg.PreviewTicketTTL <= 0 {
		cfg.PreviewTicketTTL = 10 * time.Minute
	}
	if cfg.SessionIdleTTL < 0 {
		cfg.SessionIdleTTL = 0
	}

	return cfg, nil
}

// ValidateBot checks the settings the Telegram bot cannot start without.
func (c Config) ValidateBot() error {
	if c.TelegramToken == "" {
		return errors.New("TELEGRAM_BOT_TOKEN is required")
	}
	return c.ValidatePreview()
}

// ValidatePreview checks that the selected image provider has a key.
func (c Config) ValidatePreview() error {
	switch c.ImageProvider {
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			return errors.New("OPENAI_API_KEY is required when IMAGE_PROVIDER=openai")
		}
	default:
		if c.GeminiAPIKey == "" {
			return errors.New("GEMINI_API_KEY is required")
		}
	}
	return nil
}

// SlogLevel maps LOG_LEVEL to a slog level; unknown values mean info.
func (c Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvSeconds(key string, fallback int) time.Duration {
	return time.Duration(getEnvInt(key, fallback)) * time.Second
}

func getEnvBool(key string, fallback bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

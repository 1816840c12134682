package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/StarfishW/StarWish/internal/domain"
)

const (
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
)

var defaultModels = map[string]string{
	ProviderGemini:     "gemini-2.5-flash",
	ProviderOpenRouter: "qwen/qwen3-4b:free",
}

type Config struct {
	HTTPAddr           string
	LogLevel           slog.Level
	LLMProvider        string
	LLMModel           string
	LLMFallbackModels  []string
	GeminiAPIKey       string
	OpenRouterAPIKey   string
	OpenRouterBaseURL  string
	LLMTimeout         time.Duration
	DefaultLanguage    domain.Language
	SeedWishes         bool
	CORSAllowedOrigins []string
}

// APIKey returns the credential of the selected provider. Empty means the
// service runs without blessings from a model.
func (c Config) APIKey() string {
	if c.LLMProvider == ProviderOpenRouter {
		return c.OpenRouterAPIKey
	}
	return c.GeminiAPIKey
}

// Load reads the environment, after merging a .env file if one exists.
func Load() (Config, error) {
	_ = godotenv.Load()

	c := Config{
		HTTPAddr:           envOr("HTTP_ADDR", ":8080"),
		LLMProvider:        strings.ToLower(envOr("LLM_PROVIDER", ProviderGemini)),
		GeminiAPIKey:       envOr("GEMINI_API_KEY", os.Getenv("API_KEY")),
		OpenRouterAPIKey:   os.Getenv("OPENROUTER_API_KEY"),
		OpenRouterBaseURL:  envOr("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
		LLMFallbackModels:  splitList(os.Getenv("LLM_FALLBACK_MODELS")),
		LLMTimeout:         10 * time.Second,
		SeedWishes:         true,
		CORSAllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
	}

	defaultModel, ok := defaultModels[c.LLMProvider]
	if !ok {
		return Config{}, fmt.Errorf("invalid LLM_PROVIDER %q: want %s or %s", c.LLMProvider, ProviderGemini, ProviderOpenRouter)
	}
	c.LLMModel = envOr("LLM_MODEL", defaultModel)

	if v := os.Getenv("LLM_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid LLM_TIMEOUT %q: %w", v, err)
		}
		c.LLMTimeout = d
	}

	if v := os.Getenv("STARWISH_SEED_WISHES"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid STARWISH_SEED_WISHES %q: %w", v, err)
		}
		c.SeedWishes = b
	}

	lang, err := domain.ParseLanguage(envOr("STARWISH_DEFAULT_LANGUAGE", string(domain.Chinese)))
	if err != nil {
		return Config{}, fmt.Errorf("invalid STARWISH_DEFAULT_LANGUAGE: %w", err)
	}
	c.DefaultLanguage = lang

	level, err := parseLogLevel(envOr("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, err
	}
	c.LogLevel = level

	return c, nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid LOG_LEVEL %q", s)
	}
}

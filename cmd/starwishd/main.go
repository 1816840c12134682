package main

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	httpadapter "github.com/StarfishW/StarWish/internal/adapters/http"
	"github.com/StarfishW/StarWish/internal/adapters/llm/gemini"
	"github.com/StarfishW/StarWish/internal/adapters/llm/openrouter"
	"github.com/StarfishW/StarWish/internal/adapters/seeds"
	"github.com/StarfishW/StarWish/internal/adapters/storage/memory"
	"github.com/StarfishW/StarWish/internal/app"
	"github.com/StarfishW/StarWish/internal/config"
	"github.com/StarfishW/StarWish/internal/ports"
)

// stdRNG delegates to math/rand/v2 (auto-seeded).
type stdRNG struct{}

func (stdRNG) Float64() float64 { return rand.Float64() }
func (stdRNG) IntN(n int) int   { return rand.IntN(n) }

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	model, err := newBlessingModel(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to create blessing model", "provider", cfg.LLMProvider, "error", err)
		os.Exit(1)
	}
	generator := app.NewBlessingGenerator(model, logger)
	if !generator.Configured() {
		logger.Warn("no API key configured, wishes will receive the placeholder blessing", "provider", cfg.LLMProvider)
	}

	var seedSource ports.SeedSource
	if cfg.SeedWishes {
		seedSource = seeds.NewEmbeddedStore()
	}

	stores := func() (ports.WishStore, ports.LikeTracker) {
		return memory.NewWishStore(), memory.NewLikeTracker()
	}
	svc := app.NewLanternService(generator, stores, seedSource, stdRNG{}, cfg.DefaultLanguage, logger)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	if len(cfg.CORSAllowedOrigins) > 0 {
		e.Pre(httpadapter.CORSMiddleware(cfg.CORSAllowedOrigins))
	}
	e.Use(httpadapter.RequestIDMiddleware())
	e.Use(httpadapter.LoggingMiddleware(logger))

	handler := httpadapter.NewHandler(svc)
	handler.Register(e)

	go func() {
		logger.Info("starting server", "addr", cfg.HTTPAddr, "provider", cfg.LLMProvider, "model", cfg.LLMModel)
		if err := e.Start(cfg.HTTPAddr); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

// newBlessingModel returns nil when the selected provider has no API key.
func newBlessingModel(ctx context.Context, cfg config.Config, logger *slog.Logger) (ports.BlessingModel, error) {
	if cfg.APIKey() == "" {
		return nil, nil
	}

	httpClient := &http.Client{Timeout: cfg.LLMTimeout}

	switch cfg.LLMProvider {
	case config.ProviderOpenRouter:
		return openrouter.NewClient(
			httpClient,
			cfg.OpenRouterAPIKey,
			cfg.OpenRouterBaseURL,
			cfg.LLMModel,
			cfg.LLMFallbackModels,
			logger,
		), nil
	default:
		client, err := gemini.NewClient(ctx, httpClient, cfg.GeminiAPIKey, "", cfg.LLMModel)
		if err != nil {
			return nil, err
		}
		return client, nil
	}
}

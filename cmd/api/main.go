package main

import (
	"log"
	"log/slog"
	nethttp "net/http"
	"os"

	"ideas-para/internal/config"
	"ideas-para/internal/http"
	"ideas-para/internal/openai"
	"ideas-para/internal/ratelimit"
	"ideas-para/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	upstream := openai.NewClient(cfg.OpenAIBaseURL)
	limiter := ratelimit.New(cfg.RateLimitWindow, cfg.RateLimitMax)

	deps := &http.Deps{
		ChatService:      service.NewChatService(upstream),
		EmbeddingService: service.NewEmbeddingService(upstream),
		Limiter:          limiter,
		AllowedOrigins:   cfg.AllowedOrigins,
		Debug:            cfg.Development(),
	}
	router := http.NewRouter(deps)

	addr := ":" + cfg.Port
	slog.Info("Starting ConciencIA gateway", "addr", addr, "env", cfg.Env)
	slog.Debug("Upstream configuration", "base_url", cfg.OpenAIBaseURL)
	slog.Info("CORS origins configured", "origins", cfg.AllowedOrigins)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("Gateway failed to start: %v", err)
	}
}

// Package config reads gateway and CLI configuration from environment
// variables, with optional .env support.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	Port           string
	AllowedOrigins []string
	OpenAIBaseURL  string
	Env            string // development or production
	LogLevel       slog.Level
	LogFormat      string // text or json

	RateLimitWindow time.Duration
	RateLimitMax    int

	StorePath   string
	StoreDriver string // json or sqlite
}

// Development reports whether internal error details may be exposed.
func (c *Config) Development() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables and returns a Config.
// A .env file in the current directory or any parent (up to five levels) is
// loaded first; variables already set in the environment take precedence.
func Load() (*Config, error) {
	_ = godotenv.Load()

	if wd, err := os.Getwd(); err == nil {
		dir := wd
		for i := 0; i < 5; i++ {
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	cfg := &Config{
		Port:          getEnv("PORT", "3001"),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com"),
		Env:           getEnv("APP_ENV", "development"),
		LogFormat:     getEnv("LOG_FORMAT", "text"),
		StoreDriver:   getEnv("STORE_DRIVER", "json"),
	}

	origins := getEnv("ALLOWED_ORIGINS",
		"http://localhost:5173,http://localhost:5174,http://localhost:5175,http://localhost:3000")
	for _, origin := range strings.Split(origins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
		}
	}
	if len(cfg.AllowedOrigins) == 0 {
		return nil, fmt.Errorf("ALLOWED_ORIGINS must list at least one origin")
	}

	switch cfg.Env {
	case "development", "production":
	default:
		return nil, fmt.Errorf("APP_ENV must be development or production, got %q", cfg.Env)
	}

	level, err := parseLogLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	windowSec, err := strconv.Atoi(getEnv("RATE_LIMIT_WINDOW", "60"))
	if err != nil || windowSec <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_WINDOW must be a positive integer of seconds")
	}
	cfg.RateLimitWindow = time.Duration(windowSec) * time.Second

	cfg.RateLimitMax, err = strconv.Atoi(getEnv("RATE_LIMIT_MAX", "20"))
	if err != nil || cfg.RateLimitMax <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_MAX must be a positive integer")
	}

	switch cfg.StoreDriver {
	case "json", "sqlite":
	default:
		return nil, fmt.Errorf("STORE_DRIVER must be json or sqlite, got %q", cfg.StoreDriver)
	}

	cfg.StorePath = os.Getenv("STORE_PATH")
	if cfg.StorePath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve home directory: %w", err)
		}
		name := "storage.json"
		if cfg.StoreDriver == "sqlite" {
			name = "storage.db"
		}
		cfg.StorePath = filepath.Join(home, ".ideas-para", name)
	}

	return cfg, nil
}

func parseLogLevel(value string) (slog.Level, error) {
	switch strings.ToLower(value) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("LOG_LEVEL must be debug, info, warn or error, got %q", value)
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Package config reads runtime settings from the environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/icco/animedash/lib/db"
)

// Config holds the dashboard's runtime settings.
type Config struct {
	Port     string
	DataPath string
	DBDSN    string
	LogLevel string
}

// Load reads the configuration from environment variables, falling back to
// defaults for anything unset.
func Load() Config {
	return Config{
		Port:     getEnv("PORT", "8080"),
		DataPath: getEnv("DATA_PATH", "data/anime-filtered.csv"),
		DBDSN:    getEnv("DB_DSN", db.MemoryDSN),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", c.LogLevel)
}

// NewLogger builds the JSON logger used across the application.
func (c Config) NewLogger() (*slog.Logger, error) {
	level, err := c.Level()
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})), nil
}

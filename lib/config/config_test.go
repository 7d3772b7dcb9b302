package config

import (
	"log/slog"
	"testing"

	"github.com/icco/animedash/lib/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("PORT", "")
		t.Setenv("DATA_PATH", "")
		t.Setenv("DB_DSN", "")
		t.Setenv("LOG_LEVEL", "")

		cfg := Load()
		assert.Equal(t, "8080", cfg.Port)
		assert.Equal(t, "data/anime-filtered.csv", cfg.DataPath)
		assert.Equal(t, db.MemoryDSN, cfg.DBDSN)
		assert.Equal(t, "info", cfg.LogLevel)
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("PORT", "9000")
		t.Setenv("DATA_PATH", "/srv/anime.csv")
		t.Setenv("DB_DSN", "stats.db")
		t.Setenv("LOG_LEVEL", "debug")

		cfg := Load()
		assert.Equal(t, "9000", cfg.Port)
		assert.Equal(t, "/srv/anime.csv", cfg.DataPath)
		assert.Equal(t, "stats.db", cfg.DBDSN)
		assert.Equal(t, "debug", cfg.LogLevel)
	})
}

func TestLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for in, want := range tests {
		got, err := Config{LogLevel: in}.Level()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := Config{LogLevel: "loud"}.Level()
	assert.Error(t, err)

	_, err = Config{LogLevel: "loud"}.NewLogger()
	assert.Error(t, err)

	l, err := Config{LogLevel: "warn"}.NewLogger()
	require.NoError(t, err)
	assert.NotNil(t, l)
}

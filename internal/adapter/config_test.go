package adapter

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "https://openlibrary.org/search.json", cfg.Search.Endpoint)
	assert.Equal(t, 10, cfg.Search.DefaultPageSize)
	assert.Equal(t, 30*time.Second, cfg.Search.Timeout)
	assert.Equal(t, 15*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, 128, cfg.Cache.MemoryEntries)
	assert.Equal(t, 50, cfg.History.MaxEntries)
	assert.Equal(t, "INFO", cfg.Logging.Level)
	assert.NotEmpty(t, cfg.State.File)
	assert.NotEmpty(t, cfg.Cache.Dir)
	assert.NotEmpty(t, cfg.Logging.File)
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"bogus", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLogLevel(tt.input), "level %q", tt.input)
	}
}

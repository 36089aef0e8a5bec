package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/storefront-search/internal/config"
)

// restoreDefault puts the previous default logger back after the test.
func restoreDefault(t *testing.T) {
	t.Helper()
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{" error ", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.input))
		})
	}
}

func TestSetup_Output(t *testing.T) {
	restoreDefault(t)
	var buf bytes.Buffer

	cleanup, err := Setup(Config{Level: "warn", Output: &buf})
	require.NoError(t, err)
	defer func() { _ = cleanup() }()

	slog.Info("hidden")
	slog.Warn("search snapshot load failed", slog.String("error", "boom"))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "search snapshot load failed")
	assert.Contains(t, out, "error=boom")
}

func TestSetup_File(t *testing.T) {
	restoreDefault(t)
	path := filepath.Join(t.TempDir(), "logs", "storefront.log")

	cleanup, err := Setup(Config{Level: "debug", FilePath: path, MaxSizeMB: 1})
	require.NoError(t, err)

	slog.Debug("written to file", slog.Int("product_count", 3))
	require.NoError(t, cleanup())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")
	assert.Contains(t, string(data), "product_count=3")
}

func TestFromConfig(t *testing.T) {
	cfg := FromConfig(&config.Config{
		LogLevel:      "debug",
		LogFile:       "/tmp/x.log",
		LogMaxSizeMB:  10,
		LogMaxBackups: 5,
		LogMaxAgeDays: 28,
		LogCompress:   true,
	})

	assert.Equal(t, Config{
		Level:      "debug",
		FilePath:   "/tmp/x.log",
		MaxSizeMB:  10,
		MaxBackups: 5,
		MaxAgeDays: 28,
		Compress:   true,
	}, cfg)
}

package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"warning", slog.LevelWarn},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.in))
		})
	}
}

func TestNewLogger(t *testing.T) {
	t.Run("drops time and filters by level", func(t *testing.T) {
		var buf bytes.Buffer
		logger := newLogger(&buf, false, "warn")

		logger.Info("hidden")
		logger.Warn("shown", "network", "monadTestnet")

		out := buf.String()
		assert.NotContains(t, out, "hidden")
		assert.Contains(t, out, "msg=shown")
		assert.Contains(t, out, "network=monadTestnet")
		assert.NotContains(t, out, "time=")
	})

	t.Run("debug flag overrides level", func(t *testing.T) {
		var buf bytes.Buffer
		logger := newLogger(&buf, true, "error")

		logger.Debug("details")
		assert.Contains(t, buf.String(), "msg=details")
		assert.Contains(t, buf.String(), "source=")
	})
}

func TestShortPath(t *testing.T) {
	assert.Equal(t, "internal/usecase/deploy_token.go", shortPath("/home/dev/gmd-deploy/internal/usecase/deploy_token.go"))
	assert.Equal(t, "main.go", shortPath("/tmp/main.go"))
	assert.Equal(t, "main.go", shortPath("main.go"))
}

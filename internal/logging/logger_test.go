package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/mintmuse/mintmuse-cli/internal/domain/config"
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
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNewLoggerDropsTime(t *testing.T) {
	t.Setenv("MINTMUSE_LOG_LEVEL", "")
	var buf bytes.Buffer
	logger := newLogger(&buf, &config.RuntimeConfig{})

	logger.Debug("hidden")
	logger.Info("deployed", "address", "0xabc")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.NotContains(t, out, "time=")
	assert.Contains(t, out, "msg=deployed")
	assert.Contains(t, out, "address=0xabc")
}

func TestNewLoggerDebugConfig(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, &config.RuntimeConfig{Debug: true})

	logger.Debug("visible")
	assert.Contains(t, buf.String(), "msg=visible")
}

func TestShortPath(t *testing.T) {
	assert.Equal(t, "internal/usecase/deploy_contract.go",
		shortPath("/home/dev/src/mintmuse-cli/internal/usecase/deploy_contract.go"))
	assert.Equal(t, "main.go", shortPath("/tmp/build/main.go"))
	assert.Equal(t, "x.go", shortPath("x.go"))
}

package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWithSink("info", FormatJSON, zapcore.AddSync(&buf))
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("binding added", zap.String("type", "acme/translations"))
	require.NoError(t, logger.Sync())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "binding added", entry["msg"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "acme/translations", entry["type"])
	assert.Contains(t, entry, "ts")
	assert.NotContains(t, buf.String(), "hidden")
}

func TestNew_Console(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWithSink("debug", FormatConsole, zapcore.AddSync(&buf))
	require.NoError(t, err)

	logger.Debug("binding type added")
	require.NoError(t, logger.Sync())

	assert.Contains(t, buf.String(), "binding type added")
	assert.Contains(t, buf.String(), "debug")
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		level  string
		format string
		want   string
	}{
		{"bad level", "verbose", FormatJSON, "invalid log level"},
		{"bad format", "info", "xml", "invalid log format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.level, tt.format)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestNew_WritesToStderr(t *testing.T) {
	logger, err := New("warn", FormatConsole)
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
}

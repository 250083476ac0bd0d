package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kpicast/internal/config"
)

func TestNewLogger_FileOutput(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "nested", "test.log")

	logger, closeFn, err := NewLogger(config.LoggingConfig{
		Level:    "info",
		Format:   "json",
		Output:   "file",
		FilePath: logFile,
	})
	require.NoError(t, err)
	require.NotNil(t, logger)

	logger.Info("test message", "key", "value")
	require.NoError(t, closeFn())

	content, err := os.ReadFile(logFile)
	require.NoError(t, err)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(content, &entry))
	assert.Equal(t, "test message", entry["msg"])
	assert.Equal(t, "value", entry["key"])
	assert.Equal(t, "INFO", entry["level"])
}

func TestNewLogger_ConsoleHasNoopClose(t *testing.T) {
	logger, closeFn, err := NewLogger(config.LoggingConfig{Level: "info", Output: "console"})
	require.NoError(t, err)
	assert.NotNil(t, logger)
	assert.NoError(t, closeFn())
}

func TestNewLogger_BadFilePath(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	_, closeFn, err := NewLogger(config.LoggingConfig{Output: "file", FilePath: filepath.Join(blocker, "app.log")})
	require.Error(t, err)
	assert.NoError(t, closeFn())
}

func TestTraceIDInjection(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(config.LoggingConfig{Level: "info", Format: "json"}, &buf)

	ctx := WithTraceID(context.Background(), "trace-123")
	logger.InfoContext(ctx, "with trace")
	logger.With("component", "test").InfoContext(ctx, "derived logger")
	logger.Info("without trace")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)

	var first, second, third map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	require.NoError(t, json.Unmarshal([]byte(lines[2]), &third))

	assert.Equal(t, "trace-123", first["trace_id"])
	assert.Equal(t, "trace-123", second["trace_id"])
	assert.Equal(t, "test", second["component"])
	assert.NotContains(t, third, "trace_id")
}

func TestLogLevels(t *testing.T) {
	tests := []struct {
		level     string
		wantDebug bool
		wantInfo  bool
		wantWarn  bool
	}{
		{level: "debug", wantDebug: true, wantInfo: true, wantWarn: true},
		{level: "info", wantInfo: true, wantWarn: true},
		{level: "warning", wantWarn: true},
		{level: "error"},
		{level: "bogus", wantInfo: true, wantWarn: true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLoggerWithWriter(config.LoggingConfig{Level: tt.level, Format: "text"}, &buf)

			logger.Debug("debug line")
			logger.Info("info line")
			logger.Warn("warn line")

			out := buf.String()
			assert.Equal(t, tt.wantDebug, strings.Contains(out, "debug line"))
			assert.Equal(t, tt.wantInfo, strings.Contains(out, "info line"))
			assert.Equal(t, tt.wantWarn, strings.Contains(out, "warn line"))
		})
	}
}

func TestContextHelpers(t *testing.T) {
	assert.Empty(t, GetTraceID(context.Background()))

	ctx := EnsureTraceID(context.Background())
	generated := GetTraceID(ctx)
	assert.Len(t, generated, 36)

	// existing trace ids are kept
	assert.Equal(t, generated, GetTraceID(EnsureTraceID(ctx)))
}

func TestLoggerHelpers(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	WithError(WithComponent(logger, "svc"), assert.AnError).Info("msg")
	assert.Contains(t, buf.String(), `"component":"svc"`)
	assert.Contains(t, buf.String(), assert.AnError.Error())

	assert.Same(t, logger, WithError(logger, nil))
}

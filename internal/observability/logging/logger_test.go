package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"climate-dashboard/internal/handler/http/requestid"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in     string
		want   slog.Level
		wantOK bool
	}{
		{"debug", slog.LevelDebug, true},
		{"INFO", slog.LevelInfo, true},
		{"", slog.LevelInfo, true},
		{"warning", slog.LevelWarn, true},
		{" error ", slog.LevelError, true},
		{"verbose", slog.LevelInfo, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseLevel(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestParseFormat(t *testing.T) {
	f, ok := ParseFormat("TEXT")
	assert.Equal(t, FormatText, f)
	assert.True(t, ok)

	f, ok = ParseFormat("xml")
	assert.Equal(t, FormatJSON, f)
	assert.False(t, ok)
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Options{Level: slog.LevelInfo, Format: FormatJSON})

	logger.Debug("hidden")
	logger.Info("feed rendered", slog.Int("companies", 4))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "feed rendered", entry["msg"])
	assert.EqualValues(t, 4, entry["companies"])
	assert.NotContains(t, entry, "source")
}

func TestNew_TextWithSourceAtDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Options{Level: slog.LevelDebug, Format: FormatText})

	logger.Debug("fetching news", slog.String("company", "Mombak"))

	out := buf.String()
	assert.Contains(t, out, "level=DEBUG")
	assert.Contains(t, out, "company=Mombak")
	assert.Contains(t, out, "source=")
}

func TestNewFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("LOG_FORMAT", "text")

	var buf bytes.Buffer
	logger := NewFromEnv(&buf)
	logger.Info("dropped")
	logger.Warn("kept")

	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "msg=kept")
}

func TestNewFromEnv_InvalidValuesWarn(t *testing.T) {
	t.Setenv("LOG_LEVEL", "loud")
	t.Setenv("LOG_FORMAT", "yaml")

	var buf bytes.Buffer
	NewFromEnv(&buf)

	assert.Contains(t, buf.String(), "invalid LOG_LEVEL")
	assert.Contains(t, buf.String(), "invalid LOG_FORMAT")
}

func TestWithRequestID(t *testing.T) {
	var buf bytes.Buffer
	base := New(&buf, Options{Format: FormatJSON})

	WithRequestID(requestid.WithRequestID(context.Background(), "req-7"), base).Info("with id")
	WithRequestID(context.Background(), base).Info("without id")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"request_id":"req-7"`)
	assert.NotContains(t, lines[1], "request_id")
}

func TestLoggerContext(t *testing.T) {
	assert.Same(t, slog.Default(), FromContext(context.Background()))

	logger := New(&bytes.Buffer{}, Options{})
	ctx := WithLogger(context.Background(), logger)
	assert.Same(t, logger, FromContext(ctx))
}

package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"climate-dashboard/internal/handler/http/requestid"
	"climate-dashboard/pkg/config"
)

// Format is the log output encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// Options configures New.
type Options struct {
	Level  slog.Level
	Format Format
}

// ParseLevel maps debug|info|warn|error (any case) to a slog.Level.
// Unknown values report ok=false and LevelInfo.
func ParseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// ParseFormat maps json|text to a Format. Unknown values report ok=false and FormatJSON.
func ParseFormat(s string) (Format, bool) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatJSON, "":
		return FormatJSON, true
	case FormatText:
		return FormatText, true
	default:
		return FormatJSON, false
	}
}

// New creates a structured logger writing to w.
// Source locations are added at debug level.
func New(w io.Writer, opts Options) *slog.Logger {
	handlerOpts := &slog.HandlerOptions{
		Level:     opts.Level,
		AddSource: opts.Level <= slog.LevelDebug,
	}

	var handler slog.Handler
	if opts.Format == FormatText {
		handler = slog.NewTextHandler(w, handlerOpts)
	} else {
		handler = slog.NewJSONHandler(w, handlerOpts)
	}
	return slog.New(handler)
}

// NewFromEnv creates a logger from LOG_LEVEL and LOG_FORMAT.
// Invalid values fall back to info/json with a warning.
func NewFromEnv(w io.Writer) *slog.Logger {
	rawLevel := config.GetEnvString("LOG_LEVEL", "info")
	rawFormat := config.GetEnvString("LOG_FORMAT", string(FormatJSON))

	level, levelOK := ParseLevel(rawLevel)
	format, formatOK := ParseFormat(rawFormat)

	logger := New(w, Options{Level: level, Format: format})
	if !levelOK {
		logger.Warn("invalid LOG_LEVEL, using info", slog.String("value", rawLevel))
	}
	if !formatOK {
		logger.Warn("invalid LOG_FORMAT, using json", slog.String("value", rawFormat))
	}
	return logger
}

// WithRequestID returns logger annotated with the context's request ID, if any.
func WithRequestID(ctx context.Context, logger *slog.Logger) *slog.Logger {
	reqID := requestid.FromContext(ctx)
	if reqID == "" {
		return logger
	}
	return logger.With(slog.String("request_id", reqID))
}

type contextKey string

const loggerContextKey contextKey = "logger"

// FromContext returns the logger stored by WithLogger, or slog.Default().
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerContextKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// WithLogger stores logger in ctx.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerContextKey, logger)
}

package ggca

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with ggca-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithSources tags the logger with the names of both inputs.
func (l *Logger) WithSources(first, second string) *Logger {
	return &Logger{
		Logger: l.Logger.With("first", first, "second", second),
	}
}

// LogShape logs the measured shape of one input.
func (l *Logger) LogShape(ctx context.Context, name string, rows uint64, columns int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "inspect failed",
			"source", name,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "inspect completed",
			"source", name,
			"rows", rows,
			"columns", columns,
		)
	}
}

// LogRun logs the outcome of one Correlate call.
func (l *Logger) LogRun(ctx context.Context, results int, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "correlate failed",
			"duration", duration,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "correlate completed",
			"results", results,
			"duration", duration,
		)
	}
}

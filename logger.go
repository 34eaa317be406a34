package seglist

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with seglist-specific context.
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
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithList adds the identity of a list (domain and base key) to the logger.
func (l *Logger) WithList(domain, base string) *Logger {
	return &Logger{
		Logger: l.Logger.With("domain", domain, "base", base),
	}
}

// LogAppend logs an append operation.
func (l *Logger) LogAppend(ctx context.Context, index uint32, err error) {
	if err != nil {
		l.ErrorContext(ctx, "append failed",
			"index", index,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "append completed",
			"index", index,
		)
	}
}

// LogPop logs a pop operation.
func (l *Logger) LogPop(ctx context.Context, index uint32, err error) {
	if err != nil {
		l.ErrorContext(ctx, "pop failed",
			"index", index,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "pop completed",
			"index", index,
		)
	}
}

// LogLoad logs a bulk load operation.
func (l *Logger) LogLoad(ctx context.Context, count int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "load failed",
			"count", count,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "load completed",
			"count", count,
		)
	}
}

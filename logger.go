package lookup

import (
	"context"
	"log/slog"
	"os"

	"github.com/hupe1980/lookup/dtype"
)

// Logger wraps slog.Logger with lookup-specific context.
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
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithTable adds the key and value kinds of a table to the logger.
func (l *Logger) WithTable(keyKind, valueKind dtype.Kind) *Logger {
	return &Logger{
		Logger: l.Logger.With("key_type", keyKind.String(), "value_type", valueKind.String()),
	}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// LogCreate logs a table creation.
func (l *Logger) LogCreate(ctx context.Context, keyType, valueType string, created bool, err error) {
	if err != nil {
		l.ErrorContext(ctx, "create failed",
			"key_type", keyType,
			"value_type", valueType,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "create completed",
			"key_type", keyType,
			"value_type", valueType,
			"created", created,
		)
	}
}

// LogInsert logs an explicit insert of key/value pairs.
func (l *Logger) LogInsert(ctx context.Context, count, size int, skipped bool, err error) {
	switch {
	case err != nil:
		l.ErrorContext(ctx, "insert failed",
			"count", count,
			"error", err,
		)
	case skipped:
		l.DebugContext(ctx, "insert skipped, table already initialized",
			"size", size,
		)
	default:
		l.DebugContext(ctx, "insert completed",
			"count", count,
			"size", size,
		)
	}
}

// LogFind logs a lookup.
func (l *Logger) LogFind(ctx context.Context, count, misses int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "find failed",
			"count", count,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "find completed",
			"count", count,
			"misses", misses,
		)
	}
}

// LogLoad logs a vocabulary file load.
func (l *Logger) LogLoad(ctx context.Context, file string, lines int64, size int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "load failed",
			"file", file,
			"lines", lines,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "load completed",
			"file", file,
			"lines", lines,
			"size", size,
		)
	}
}

// LogReduceJoin logs a reduce-join.
func (l *Logger) LogReduceJoin(ctx context.Context, axes []int, count int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "reduce-join failed",
			"axes", axes,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "reduce-join completed",
			"axes", axes,
			"count", count,
		)
	}
}

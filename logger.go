package procare

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with procare-specific field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a Logger with the given handler.
// If handler is nil, uses a text handler to stderr at info level.
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

// NewJSONLogger creates a Logger that writes JSON lines to stderr.
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that writes human-readable text to stderr.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all output.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

// WithRunID tags every record with the run identifier.
func (l *Logger) WithRunID(id string) *Logger {
	return &Logger{
		Logger: l.Logger.With("run_id", id),
	}
}

// LogCompare logs a single pair comparison.
func (l *Logger) LogCompare(ctx context.Context, source, target string, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "compare failed",
			"source", source,
			"target", target,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "compare completed",
		"source", source,
		"target", target,
		"elapsed", elapsed,
	)
}

// LogBatch logs the outcome of a batch run.
func (l *Logger) LogBatch(ctx context.Context, total, failed int, elapsed time.Duration) {
	if failed > 0 {
		l.WarnContext(ctx, "batch completed with failures",
			"total", total,
			"failed", failed,
			"success", total-failed,
			"elapsed", elapsed,
		)
		return
	}
	l.InfoContext(ctx, "batch completed",
		"total", total,
		"elapsed", elapsed,
	)
}

// LogLoad logs a cavity load.
func (l *Logger) LogLoad(ctx context.Context, name string, points int, cached bool, err error) {
	if err != nil {
		l.ErrorContext(ctx, "load failed",
			"name", name,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "cavity loaded",
		"name", name,
		"points", points,
		"cached", cached,
	)
}

// LogFlush logs a report flush.
func (l *Logger) LogFlush(ctx context.Context, name string, rows, attempts int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "report flush failed",
			"name", name,
			"rows", rows,
			"attempts", attempts,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "report flushed",
		"name", name,
		"rows", rows,
		"attempts", attempts,
	)
}

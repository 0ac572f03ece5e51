// Package corelog attaches a request- or task-scoped *slog.Logger to
// a context.Context so the queue, consumer, and aggregator packages
// can log without threading a logger through every constructor.
package corelog

import (
	"context"
	"log/slog"
	"runtime"
	"slices"
	"time"
)

type loggerKey struct{}

// WithLogger returns a new Context with logger attached.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext returns the Logger attached to ctx, or slog.Default()
// if none was attached.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// Log logs at level through the context-scoped Logger, or
// slog.Default().
func Log(ctx context.Context, level slog.Level, msg string, keyValArgs ...any) {
	doLog(ctx, level, msg, keyValArgs...)
}

// Info logs at slog.LevelInfo through the context-scoped Logger.
func Info(ctx context.Context, msg string, keyValArgs ...any) {
	doLog(ctx, slog.LevelInfo, msg, keyValArgs...)
}

// Warn logs at slog.LevelWarn through the context-scoped Logger.
func Warn(ctx context.Context, msg string, keyValArgs ...any) {
	doLog(ctx, slog.LevelWarn, msg, keyValArgs...)
}

// Error logs at slog.LevelError through the context-scoped Logger,
// with err added as the "error" attribute.
func Error(ctx context.Context, msg string, err error, keyValArgs ...any) {
	doLog(ctx, slog.LevelError, msg, slices.Concat([]any{"error", err}, keyValArgs)...)
}

// doLog builds the record by hand so the call site attributed by
// slog is the caller of Log/Info/Warn/Error, not this package.
func doLog(ctx context.Context, level slog.Level, msg string, keyValArgs ...any) {
	logger := FromContext(ctx)
	if logger.Enabled(ctx, level) {
		var pcs [1]uintptr
		runtime.Callers(3, pcs[:])
		record := slog.NewRecord(time.Now(), level, msg, pcs[0])
		record.Add(keyValArgs...)
		_ = logger.Handler().Handle(ctx, record)
	}
}

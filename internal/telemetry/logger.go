// Package telemetry provides structured logging for the evaluator and its
// CLI, wrapping the standard library's log/slog behind a small Logger type.
package telemetry

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with the small surface the evaluator needs.
type Logger struct {
	logger *slog.Logger
}

// New creates a Logger writing JSON-formatted records to stdout at level.
func New(level string) *Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	handler := slog.NewJSONHandler(os.Stdout, opts)
	return &Logger{logger: slog.New(handler)}
}

// With returns a Logger that attaches args to every subsequent record.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{logger: l.logger.With(args...)}
}

// WithGroup returns a Logger that nests subsequent attributes under name.
func (l *Logger) WithGroup(name string) *Logger {
	return &Logger{logger: l.logger.WithGroup(name)}
}

// Debug logs at debug level.
func (l *Logger) Debug(msg string, args ...any) { l.logger.Debug(msg, args...) }

// Info logs at info level.
func (l *Logger) Info(msg string, args ...any) { l.logger.Info(msg, args...) }

// Warn logs at warn level.
func (l *Logger) Warn(msg string, args ...any) { l.logger.Warn(msg, args...) }

// Error logs at error level.
func (l *Logger) Error(msg string, args ...any) { l.logger.Error(msg, args...) }

// DebugContext logs at debug level, attaching ctx for handlers that use it.
func (l *Logger) DebugContext(ctx context.Context, msg string, args ...any) {
	l.logger.DebugContext(ctx, msg, args...)
}

// WarnContext logs at warn level, attaching ctx for handlers that use it.
func (l *Logger) WarnContext(ctx context.Context, msg string, args ...any) {
	l.logger.WarnContext(ctx, msg, args...)
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

var defaultLogger = New("info")

// Default returns the package-level default Logger.
func Default() *Logger { return defaultLogger }

// SetDefault replaces the package-level default Logger.
func SetDefault(l *Logger) { defaultLogger = l }

// Debug logs at debug level on the default Logger.
func Debug(msg string, args ...any) { defaultLogger.Debug(msg, args...) }

// Info logs at info level on the default Logger.
func Info(msg string, args ...any) { defaultLogger.Info(msg, args...) }

// Warn logs at warn level on the default Logger.
func Warn(msg string, args ...any) { defaultLogger.Warn(msg, args...) }

// Error logs at error level on the default Logger.
func Error(msg string, args ...any) { defaultLogger.Error(msg, args...) }

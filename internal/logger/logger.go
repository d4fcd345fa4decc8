package logger

import (
	"log/slog"
	"os"
	"strings"
)

var defaultLogger *slog.Logger

// Initialize sets up the global logger with the specified level and format.
// Logs go to stderr so command output on stdout stays machine-readable.
func Initialize(level, format string) {
	var logLevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn", "warning":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: logLevel,
	}

	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	defaultLogger = slog.New(handler)
	slog.SetDefault(defaultLogger)
}

// Get returns the default logger
func Get() *slog.Logger {
	if defaultLogger == nil {
		Initialize("info", "text")
	}
	return defaultLogger
}

// Debug logs a debug message
func Debug(msg string, args ...any) {
	Get().Debug(msg, args...)
}

// Warn logs a warning message
func Warn(msg string, args ...any) {
	Get().Warn(msg, args...)
}

// WithService returns a logger with service name attached
func WithService(serviceName string) *slog.Logger {
	return Get().With("service", serviceName)
}

// APICall logs an outgoing API call (debug log for external resources)
func APICall(method, path string, args ...any) {
	allArgs := append([]any{"method", method, "path", path}, args...)
	Get().Debug("→ API call", allArgs...)
}

// APIResult logs an API call result (debug log for external resources)
func APIResult(method, path string, status int, err error, args ...any) {
	allArgs := append([]any{"method", method, "path", path, "status", status}, args...)
	if err != nil {
		allArgs = append(allArgs, "error", err)
		Get().Debug("← API call failed", allArgs...)
	} else {
		Get().Debug("← API call succeeded", allArgs...)
	}
}

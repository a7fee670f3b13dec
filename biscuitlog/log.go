// Package biscuitlog configures the process-wide structured logger.
package biscuitlog

import (
	"log/slog"
	"os"
	"strings"
)

// Init configures slog based on the BISCUIT_LOG_LEVEL environment variable.
// Supported levels: debug, info, warn, error.
func Init() {
	if logLevel, ok := os.LookupEnv("BISCUIT_LOG_LEVEL"); ok {
		var level slog.Level

		switch strings.ToLower(logLevel) {
		case "debug":
			level = slog.LevelDebug
		case "info":
			level = slog.LevelInfo
		case "warn":
			level = slog.LevelWarn
		case "error":
			level = slog.LevelError
		default:
			level = slog.LevelInfo
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		handler := slog.NewTextHandler(os.Stderr, opts)
		slog.SetDefault(slog.New(handler))
	}
}

// Warnf logs a structured warning tagged with the originating component.
// Callers pass the offending metadata as key/value pairs rather than
// formatting it into free text.
func Warnf(component string, msg string, args ...any) {
	full := append([]any{"component", component}, args...)
	slog.Warn(msg, full...)
}

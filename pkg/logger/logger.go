package logger

import (
	"log/slog"
	"os"
	"strings"
)

var defaultLogger *slog.Logger

func Init(env string) {
	Setup(env, "", "")
}

// Setup installs the process-wide logger. Empty level or format fall back to
// the defaults for env: JSON at info in production, text at debug otherwise.
// Logs go to stderr so command output on stdout stays clean.
func Setup(env, level, format string) {
	lvl := slog.LevelDebug
	if env == "production" {
		lvl = slog.LevelInfo
	}
	if level != "" {
		lvl = parseLevel(level, lvl)
	}

	if format == "" {
		format = "text"
		if env == "production" {
			format = "json"
		}
	}

	opts := &slog.HandlerOptions{Level: lvl}
	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	defaultLogger = slog.New(handler)
	slog.SetDefault(defaultLogger)
}

func LoggerWrapper() *slog.Logger {
	if defaultLogger == nil {
		// lazy initialize a development logger to avoid nil pointer panics
		Init("development")
	}
	return defaultLogger
}

func parseLevel(s string, fallback slog.Level) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return fallback
	}
	return lvl
}

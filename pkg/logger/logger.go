package logger

import (
	"io"
	"log/slog"
	"os"
)

// serviceName tags every record so aggregated logs can be filtered back to
// this service.
const serviceName = "roster-management"

var defaultLogger *slog.Logger

func newLogger(w io.Writer, env string) *slog.Logger {
	var handler slog.Handler

	if env == "production" {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		handler = slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	}

	return slog.New(handler).With("service", serviceName)
}

func Init(env string) {
	defaultLogger = newLogger(os.Stdout, env)
	slog.SetDefault(defaultLogger)
}

func LoggerWrapper() *slog.Logger {
	if defaultLogger == nil {
		// lazy initialize a development logger to avoid nil pointer panics
		Init("development")
	}
	return defaultLogger
}

package logger

import (
	"log/slog"
	"os"
)

var Log = slog.New(slog.NewJSONHandler(os.Stdout, nil))

// Init replaces the package logger. Development runs log at debug level.
func Init(env string) {
	level := slog.LevelInfo
	if env != "production" {
		level = slog.LevelDebug
	}

	// JSON handler for production-ready logging
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})
	Log = slog.New(handler).With("service", "portfolio-cms-backend")
	slog.SetDefault(Log)
}

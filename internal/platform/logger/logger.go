package logger

import (
	"log/slog"
	"os"
)

// New returns the process-wide structured logger. JSON on stdout so log
// shippers need no parsing rules.
func New() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level(),
	}))
}

func level() slog.Level {
	if os.Getenv("ZIWEI_DEBUG") == "true" {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

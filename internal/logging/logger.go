package logging

import (
	"log/slog"
	"os"
)

// Setup initializes the global slog logger with JSON output to stdout.
func Setup() {
	slog.SetDefault(slog.New(NewStdoutHandler()))
}

func NewStdoutHandler() slog.Handler {
	return slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
}

// Component returns a logger tagged with the given subsystem name.
func Component(name string) *slog.Logger {
	return slog.Default().With("component", name)
}

package log

import (
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	once   sync.Once
	logger *slog.Logger
)

// Setup initializes the global logger.
// logic: default to WARN so command output stays clean. If level is invalid,
// fallback to WARN. Diagnostics go to stderr; stdout belongs to commands.
func Setup(level string) {
	once.Do(func() {
		var l slog.Level
		switch strings.ToUpper(level) {
		case "DEBUG":
			l = slog.LevelDebug
		case "INFO":
			l = slog.LevelInfo
		case "ERROR":
			l = slog.LevelError
		default:
			l = slog.LevelWarn
		}

		opts := &slog.HandlerOptions{
			Level: l,
		}
		handler := slog.NewTextHandler(os.Stderr, opts)
		logger = slog.New(handler)
		slog.SetDefault(logger)
	})
}

// Get returns the configured logger, or a default one if Setup hasn't been called.
func Get() *slog.Logger {
	if logger == nil {
		Setup(os.Getenv("CHORE_LOG_LEVEL"))
	}
	return logger
}

// WithComponent returns a logger with the component field set.
func WithComponent(name string) *slog.Logger {
	return Get().With(slog.String("component", name))
}

// WithCommand returns a logger with the command field set.
func WithCommand(name string) *slog.Logger {
	return Get().With(slog.String("command", name))
}

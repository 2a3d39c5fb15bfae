package logging

import (
	"log/slog"
	"os"
)

// New builds the application logger. Verbose mode lowers the level to debug.
func New(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose || DebugEnabled() {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// DebugEnabled returns true if debug mode is enabled via the TASKAGENT_DEBUG
// environment variable
func DebugEnabled() bool {
	return os.Getenv("TASKAGENT_DEBUG") != ""
}

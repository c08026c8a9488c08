// Package log configures the process-wide structured logger. Binaries call
// Setup once at startup; packages take module-scoped loggers via WithModule.
package log

import (
	"log/slog"
	"os"
	"strings"
)

// Setup installs a text handler on stderr at the given level. Unknown level
// names fall back to info.
func Setup(logLevel string) {
	var level slog.Level

	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
}

// WithModule tags the default logger with the subsystem name, so log lines
// from the graph engine, persistence and ingest pipeline stay attributable.
func WithModule(module string) *slog.Logger {
	return slog.With("module", module)
}

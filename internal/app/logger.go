package app

import (
	"io"
	"log/slog"
)

// logLevels maps the level names accepted by the CLI to slog levels.
var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// newLogger builds the application logger from the already-validated CLI
// settings without touching the global default, so App instances stay
// isolated. Unrecognized values fall back to info-level text output.
func newLogger(levelName, format string, outW io.Writer) *slog.Logger {
	level, ok := logLevels[levelName]
	if !ok {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(outW, opts))
	}
	return slog.New(slog.NewTextHandler(outW, opts))
}

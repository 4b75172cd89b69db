package main

import (
	"io"
	"log/slog"
)

// newLogger creates a logger writing to w. level and format are values
// accepted by the --log-level and --log-format flags.
func newLogger(w io.Writer, level, format string) *slog.Logger {
	var lv slog.Level
	if err := lv.UnmarshalText([]byte(level)); err != nil {
		lv = slog.LevelWarn
	}
	opts := slog.HandlerOptions{Level: lv}
	var h slog.Handler
	switch format {
	case "json":
		h = slog.NewJSONHandler(w, &opts)
	default:
		h = slog.NewTextHandler(w, &opts)
	}
	return slog.New(h).With(slog.String("cmd", "mathexpr"))
}

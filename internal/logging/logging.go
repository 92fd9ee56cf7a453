package logging

import (
	"io"
	"log/slog"
)

// New returns a logger writing through LineHandler at level.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(NewLineHandler(w, &slog.HandlerOptions{Level: level}))
}

// Discard drops everything; handy in tests.
func Discard() *slog.Logger {
	return slog.New(NewLineHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(100)}))
}

// LevelFromVerbosity maps -v counts and --quiet to a level:
// quiet → error, 0 → warn, 1 → info, 2+ → debug.
func LevelFromVerbosity(verbose int, quiet bool) slog.Level {
	switch {
	case quiet:
		return slog.LevelError
	case verbose <= 0:
		return slog.LevelWarn
	case verbose == 1:
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}

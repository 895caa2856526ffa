package logger

import (
	"io"
	"log/slog"
	"time"

	charmlog "github.com/charmbracelet/log"
)

// Console returns a human-readable logger for the terminal (CLI --verbose).
func Console(w io.Writer, debug bool) *slog.Logger {
	level := charmlog.InfoLevel
	if debug {
		level = charmlog.DebugLevel
	}
	h := charmlog.NewWithOptions(w, charmlog.Options{
		Level:           level,
		Prefix:          "domscan",
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	})
	return slog.New(h)
}

// Tee fans records out to every handler that accepts them.
func Tee(loggers ...*slog.Logger) *slog.Logger {
	hs := make([]slog.Handler, 0, len(loggers))
	for _, l := range loggers {
		if l != nil {
			hs = append(hs, l.Handler())
		}
	}
	return slog.New(teeHandler(hs))
}

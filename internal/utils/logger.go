package utils

import (
	"io"
	"log/slog"
)

// NewCLILogger returns the logger used by the command line tools: text
// records on w, debug level when verbose, warnings and errors otherwise.
func NewCLILogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Package logging configures the process-wide logger.
package logging

import (
	"log/slog"
	"os"
)

// Setup installs a text handler on stderr as the default logger. Verbose
// enables debug output; otherwise only warnings and errors are shown.
func Setup(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

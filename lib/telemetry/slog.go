package telemetry

import (
	"log/slog"
	"os"
)

// InitSlog installs the process-wide slog handler. Pass debug = true to
// get request-level logging out of the scrapers.
func InitSlog(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
}

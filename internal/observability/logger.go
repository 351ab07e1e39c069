package observability

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/couchcryptid/station-data-ingest/internal/config"
	"github.com/lmittmann/tint"
)

// NewLogger builds the process logger from LOG_LEVEL and LOG_FORMAT.
// "text" gives colourised human output; anything else is JSON.
func NewLogger(cfg *config.Config) *slog.Logger {
	return newLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat)
}

func newLogger(w io.Writer, level, format string) *slog.Logger {
	lvl := parseLevel(level)

	var h slog.Handler
	if format == "text" {
		h = tint.NewHandler(w, &tint.Options{
			Level:      lvl,
			TimeFormat: time.TimeOnly,
		})
	} else {
		h = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})
	}
	return slog.New(h).With("app", "station-ingest")
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

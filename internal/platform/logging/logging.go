package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// New returns a logger writing to stderr. format "text" selects the
// console handler, anything else selects JSON.
func New(level, format string) *slog.Logger {
	return NewWithWriter(os.Stderr, level, format)
}

func NewWithWriter(w io.Writer, level, format string) *slog.Logger {
	lvl := ParseLevel(level)
	if strings.EqualFold(format, "text") {
		return slog.New(tint.NewHandler(w, &tint.Options{
			Level:      lvl,
			TimeFormat: time.Kitchen,
		}))
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl}))
}

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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

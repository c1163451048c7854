package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// NewLogger creates a slog.Logger writing human-readable text to w.
func NewLogger(level slog.Level, w io.Writer) *slog.Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	})

	return slog.New(handler)
}

// ParseLevel accepts the level names slog prints, in any case and with an
// optional offset such as "DEBUG-2" or "WARN+1". WARNING is an alias for
// WARN, and the empty string means INFO.
func ParseLevel(level string) (slog.Level, error) {
	name := strings.TrimSpace(level)
	if name == "" {
		return slog.LevelInfo, nil
	}
	if upper := strings.ToUpper(name); strings.HasPrefix(upper, "WARNING") {
		name = "WARN" + upper[len("WARNING"):]
	}

	var l slog.Level
	if err := l.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
	}
	return l, nil
}

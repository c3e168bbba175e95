package config

import (
	"io"
	"log/slog"
)

// NewLogger builds the slog logger selected by the log section. Invalid
// levels fall back to info; Validate reports them.
func (l LogConfig) NewLogger(w io.Writer) *slog.Logger {
	level, _ := l.SlogLevel()
	opts := &slog.HandlerOptions{Level: level}

	if l.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Package logging provides the structured logger used by the command line tools.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// Logger wraps slog.Logger with index-specific helpers.
// Field names are shared by all helpers.
type Logger struct {
	*slog.Logger
}

// New creates a Logger writing to w in the given format ("text" or "json").
// If w is nil, logs go to stderr.
func New(w io.Writer, format string, level slog.Level) (*Logger, error) {
	if w == nil {
		w = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch strings.ToLower(format) {
	case "", "text":
		handler = slog.NewTextHandler(w, opts)
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
	return &Logger{Logger: slog.New(handler)}, nil
}

// ParseLevel parses "debug", "info", "warn" or "error" (case-insensitive).
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, err
	}
	return level, nil
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return &Logger{Logger: slog.New(slog.DiscardHandler)}
}

// WithMap adds the map type name to the logger.
func (l *Logger) WithMap(name string) *Logger {
	return &Logger{Logger: l.Logger.With("map", name)}
}

// LogLoad logs the result of reading node locations.
func (l *Logger) LogLoad(ctx context.Context, source string, lines, entries int, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "load failed",
			"source", source,
			"lines", lines,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "load completed",
		"source", source,
		"lines", lines,
		"entries", entries,
		"elapsed", elapsed,
	)
}

// LogMemory logs the size and memory estimate of a map.
func (l *Logger) LogMemory(ctx context.Context, entries, usedMemory int) {
	l.InfoContext(ctx, "map size",
		"entries", entries,
		"used_memory_bytes", usedMemory,
	)
}

// LogDump logs a dump operation.
func (l *Logger) LogDump(ctx context.Context, path string, written int64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "dump failed",
			"path", path,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "dump written",
		"path", path,
		"bytes", written,
	)
}

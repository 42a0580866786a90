package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// NewLogger builds the diagnostic logger described by lc. verbose forces the
// debug level. The returned close function releases a log file, if one was
// opened, and is always safe to call.
func NewLogger(lc LoggingConfig, verbose bool) (*slog.Logger, func() error, error) {
	noop := func() error { return nil }

	level, err := parseLevel(lc.Level)
	if err != nil {
		return nil, noop, err
	}
	if verbose {
		level = slog.LevelDebug
	}

	var out io.Writer
	closeFn := noop
	switch lc.Output {
	case "", "stderr":
		out = os.Stderr
	case "stdout":
		out = os.Stdout
	default:
		f, err := os.OpenFile(lc.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to open log file: %w", err)
		}
		out = f
		closeFn = f.Close
	}

	return NewLoggerTo(out, lc.Format, level), closeFn, nil
}

// NewLoggerTo builds a logger writing to w in the given format.
func NewLoggerTo(w io.Writer, format string, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("invalid log level: %s", s)
}

func isFileOutput(output string) bool {
	return output != "" && output != "stderr" && output != "stdout"
}

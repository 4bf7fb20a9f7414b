// Package log configures the structured (slog) logger shared by the host
// bindings and the CLI.
package log

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// LoggerOption configures NewLogger.
type LoggerOption func(*loggerConfig)

type loggerConfig struct {
	level     slog.Level
	json      bool
	addSource bool
}

// defaultLoggerConfig returns the default configuration.
func defaultLoggerConfig() loggerConfig {
	return loggerConfig{
		level: slog.LevelInfo,
	}
}

// WithLevel sets the minimum log level to report.
func WithLevel(level slog.Level) LoggerOption {
	return func(c *loggerConfig) {
		c.level = level
	}
}

// WithJSON switches the output from logfmt-style text to JSON lines.
func WithJSON(enabled bool) LoggerOption {
	return func(c *loggerConfig) {
		c.json = enabled
	}
}

// WithSource enables reporting of source location (file/line).
func WithSource(enabled bool) LoggerOption {
	return func(c *loggerConfig) {
		c.addSource = enabled
	}
}

// NewLogger creates a slog.Logger writing to w.
func NewLogger(w io.Writer, opts ...LoggerOption) *slog.Logger {
	cfg := defaultLoggerConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	handlerOpts := &slog.HandlerOptions{
		Level:     cfg.level,
		AddSource: cfg.addSource,
	}
	if cfg.json {
		return slog.New(slog.NewJSONHandler(w, handlerOpts))
	}
	return slog.New(slog.NewTextHandler(w, handlerOpts))
}

// ParseLevel maps a level name (debug, info, warn, error) to a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
	}
}

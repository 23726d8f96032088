// Package logutil carries zerolog loggers through contexts and builds the
// process logger from configuration.
package logutil

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type (
	key byte
)

var (
	loggerKey = key(1)
)

// WithLogger returns a context carrying logger.
func WithLogger(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// GetOrDefault returns the context logger or the global zerolog logger.
func GetOrDefault(ctx context.Context) zerolog.Logger {
	return GetOr(ctx, log.Logger)
}

// GetOr returns the context logger or fallback.
func GetOr(ctx context.Context, fallback zerolog.Logger) zerolog.Logger {
	v := ctx.Value(loggerKey)
	if v == nil {
		return fallback
	}
	return v.(zerolog.Logger)
}

// New builds a logger writing to w. format is "json" or "console"; level is
// any zerolog level name.
func New(w io.Writer, level, format string) (zerolog.Logger, error) {
	if w == nil {
		w = os.Stderr
	}

	lvl := zerolog.InfoLevel
	if level != "" {
		var err error
		lvl, err = zerolog.ParseLevel(strings.ToLower(level))
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", level, err)
		}
	}

	switch strings.ToLower(format) {
	case "", "json":
	case "console", "text":
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	default:
		return zerolog.Nop(), fmt.Errorf("invalid log format %q", format)
	}

	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), nil
}

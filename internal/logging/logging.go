// Package logging configures zerolog for the CLI and the API server.
package logging

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/seenimoa/secanalyzer/internal/config"
)

// Setup configures the global zerolog state from cfg and returns the base
// logger. Output goes to stderr so command output on stdout stays clean.
func Setup(cfg config.LoggingConfig) zerolog.Logger {
	return New(cfg, os.Stderr)
}

// New is Setup with an explicit writer.
func New(cfg config.LoggingConfig, w io.Writer) zerolog.Logger {
	zerolog.SetGlobalLevel(ParseLevel(cfg.Level))

	// only keep the last directory of the caller path
	zerolog.CallerMarshalFunc = func(_ uintptr, file string, line int) string {
		parts := strings.Split(file, "/")
		if len(parts) > 1 {
			return strings.Join(parts[len(parts)-2:], "/") + ":" + strconv.Itoa(line)
		}
		return file + ":" + strconv.Itoa(line)
	}

	if strings.EqualFold(cfg.Format, "text") {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	return zerolog.New(w).With().
		Timestamp().
		Str("@tag", programTag()).
		Caller().
		Logger()
}

// ParseLevel maps a config level name to a zerolog level, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

// WithContext attaches logger to ctx; zerolog.Ctx(ctx) retrieves it.
func WithContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return logger.WithContext(ctx)
}

func programTag() string {
	if len(os.Args) == 0 {
		return "secanalyzer"
	}
	return filepath.Base(os.Args[0])
}

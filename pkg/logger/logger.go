// Package logger builds the zerolog loggers used across the service.
//
// There is one root logger, created in main from config. Every layer that
// logs receives a child of it tagged with its component name:
//
//	log := logger.Component(root, "database")
//	log.Info().Str("file", name).Msg("migration applied")
//
// Request-scoped code reads the logger from the context instead
// (zerolog.Ctx), which the access-log middleware populates.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Output formats.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// Field names shared by all log lines.
const (
	FieldComponent = "component"
	FieldRequestID = "request_id"
	FieldUserID    = "user_id"
)

// Config selects level and format of the root logger.
type Config struct {
	Level  string // trace, debug, info, warn, error
	Format string // json | console
}

// Validate rejects unknown levels and formats.
func (c Config) Validate() error {
	if _, err := zerolog.ParseLevel(strings.ToLower(c.Level)); err != nil || c.Level == "" {
		return fmt.Errorf("invalid log level %q", c.Level)
	}
	switch strings.ToLower(c.Format) {
	case FormatJSON, FormatConsole:
		return nil
	default:
		return fmt.Errorf("invalid log format %q (want %s or %s)", c.Format, FormatJSON, FormatConsole)
	}
}

// New creates the root logger writing to stderr.
func New(cfg Config) zerolog.Logger {
	return NewWithWriter(cfg, os.Stderr)
}

// NewWithWriter creates the root logger writing to w. Unknown levels fall back to info.
func NewWithWriter(cfg Config, w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	out := w
	if strings.ToLower(cfg.Format) == FormatConsole {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// Component returns a child logger tagged with the component name.
func Component(root zerolog.Logger, name string) zerolog.Logger {
	return root.With().Str(FieldComponent, name).Logger()
}

// Nop is a disabled logger, handy in tests.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}

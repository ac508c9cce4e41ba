// Package logging configures the service's structured logger.
package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns the root logger. Development environments get pretty console
// output, everything else plain JSON on stderr.
func New(level, environment string) zerolog.Logger {
	var logger zerolog.Logger
	if environment == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	} else {
		logger = zerolog.New(os.Stderr)
	}
	return logger.Level(parseLevel(level)).With().Timestamp().Logger()
}

// Sub returns a child logger tagged with a subsystem name.
func Sub(logger zerolog.Logger, subsystem string) zerolog.Logger {
	return logger.With().Str("subsystem", subsystem).Logger()
}

func parseLevel(s string) zerolog.Level {
	switch s {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

package internal

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// logger is shared by the load/save and import paths. Silent until SetupLogging runs.
var logger = zerolog.Nop()

// SetupLogging routes diagnostics to w at the given level ("debug", "info", "warn", ...).
// Unknown level names fall back to warn.
func SetupLogging(w io.Writer, level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.WarnLevel
	}
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly, NoColor: true}
	logger = zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}

// Logger returns the configured logger
func Logger() *zerolog.Logger {
	return &logger
}

package main

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// newLogger returns a console logger at the named level. Unknown levels
// fall back to warn so the answer on stdout is not drowned out.
func newLogger(level string, w io.Writer) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.WarnLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen, NoColor: true}).
		Level(lvl).
		With().
		Timestamp().
		Str("app", AppName).
		Str("version", AppVersion).
		Logger()
}

package main

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

// Log formats accepted by --log-format.
const (
	formatConsole = "console"
	formatJSON    = "json"
)

// newLogger builds the command logger writing to w.
func newLogger(w io.Writer, format, level string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("log level: %w", err)
	}

	var out io.Writer
	switch format {
	case formatConsole, "":
		out = zerolog.NewConsoleWriter(func(cw *zerolog.ConsoleWriter) {
			cw.Out = w
			cw.TimeFormat = "15:04:05.000"
		})
	case formatJSON:
		out = w
	default:
		return zerolog.Nop(), fmt.Errorf("unknown log format %q", format)
	}

	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), nil
}

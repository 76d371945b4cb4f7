package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// NewLogger creates a new zerolog logger with console output on stderr
func NewLogger() zerolog.Logger {
	return New(os.Stderr, zerolog.InfoLevel)
}

// New creates a console logger writing to w at the given level
func New(w io.Writer, level zerolog.Level) zerolog.Logger {
	output := zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	return log.Output(output).With().Timestamp().Logger().Level(level)
}

// NewLoggerWithLevel parses level and falls back to info when it is unknown
func NewLoggerWithLevel(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	return New(os.Stderr, lvl)
}

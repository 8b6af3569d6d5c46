package helpers

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// library packages stay quiet until a command calls NewLogger
func init() {
	log.Logger = zerolog.Nop()
}

// NewLogger configures the global zerolog logger and returns it. An
// unparseable level falls back to info.
func NewLogger(level string, pretty bool) zerolog.Logger {
	return NewLoggerTo(os.Stderr, level, pretty)
}

func NewLoggerTo(w io.Writer, level string, pretty bool) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	if pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	logger := zerolog.New(w).With().Timestamp().Logger()
	log.Logger = logger
	return logger
}

package config

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger builds the process logger: pretty console output for local
// development, JSON everywhere else.
func NewLogger(env string) zerolog.Logger {
	zerolog.TimestampFieldName = "timestamp"

	if env == EnvLocal {
		w := zerolog.NewConsoleWriter()
		w.Out = os.Stdout
		w.TimeFormat = time.DateTime
		return zerolog.New(w).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	}

	return zerolog.New(os.Stdout).Level(zerolog.InfoLevel).With().Timestamp().Logger()
}

package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Setup builds the application logger. Format "pretty" renders a colored
// console writer for local development; anything else emits JSON lines for
// log shipping. An unknown level falls back to info rather than failing.
func Setup(level, format string) zerolog.Logger {
	var writer io.Writer = os.Stdout
	if strings.EqualFold(format, "pretty") {
		writer = zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		}
	}

	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	return zerolog.New(writer).
		With().
		Timestamp().
		Caller().
		Logger()
}

package logger

import (
	"os"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var setupOnce sync.Once

// Setup configures the global zerolog logger. Production emits JSON to
// stdout; any other environment gets the pretty console writer.
func Setup(appEnv string) {
	setupOnce.Do(func() {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		if appEnv == "production" {
			log.Logger = zerolog.New(os.Stdout).With().
				Str("app", "hms-backend").
				Timestamp().Logger()
			return
		}
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().
			Str("app", "hms-backend").
			Timestamp().Logger()
	})
}

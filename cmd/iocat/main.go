// Command iocat copies byte streams between files, stdio and kafka.
package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("iocat failed")
		os.Exit(1)
	}
}

// Package internal carries process-level plumbing: configuration,
// logging setup and the debug server.
package internal

import (
	"fmt"
	"time"
)

type Config struct {
	BadgerFilepath    string        `env:"BADGER_FILEPATH,required=true"`
	BlugeFilepath     string        `env:"BLUGE_FILEPATH,required=true"`
	LogLevel          string        `env:"LOG_LEVEL,required=true"`
	CharReplacement   string        `env:"CHARACTER_REPLACEMENT,required=true"`
	TokenSecret       string        `env:"TOKEN_SECRET,required=true"`
	AuthTokenDuration time.Duration `env:"AUTH_TOKEN_DURATION,required=true"`
	MetricInterval    time.Duration `env:"METRIC_INTERVAL,required=true"`

	EnableDebugServer bool   `env:"ENABLE_DEBUG_SERVER"`
	DebugHost         string `env:"DEBUG_HOST"`
	DebugPort         int    `env:"DEBUG_PORT"`
}

func CharacterRune(str string) (rune, error) {
	r := []rune(str)
	if len(r) != 1 {
		return 0, fmt.Errorf(
			"CHARACTER_REPLACEMENT must be a single character, got %q",
			str,
		)
	}
	return r[0], nil
}

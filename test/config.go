// Package test hosts cross-package scenarios running against a real
// store.
package test

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// INTEGRATION_DEBUG switches the scenario logger to debug level
	Debug bool `envconfig:"INTEGRATION_DEBUG" default:"false"`
	// INTEGRATION_VALUE_LOG_MB caps badger's value log during tests
	ValueLogMb int64 `envconfig:"INTEGRATION_VALUE_LOG_MB" default:"16"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}

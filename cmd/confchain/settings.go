// FILE: lixenwraith/confchain/cmd/confchain/settings.go
package main

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/lixenwraith/confchain"
)

// EnvPrefix prefixes every environment variable read by the CLI itself
const EnvPrefix = "CONFCHAIN_"

// settings are the CLI defaults taken from the environment; flags override them
type settings struct {
	LogLevel    string        `env:"LOG_LEVEL"`
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT" envDefault:"30s"`
	ResourceDir string        `env:"RESOURCE_DIR" envDefault:"."`
	Properties  []string      `env:"PROPERTIES" envSeparator:","`
}

// loadSettings populates settings from CONFCHAIN_* variables
func loadSettings(environ map[string]string) (settings, error) {
	var s settings
	opts := env.Options{Prefix: EnvPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(&s, opts); err != nil {
		return settings{}, fmt.Errorf("error getting env settings: %w", err)
	}
	if s.HTTPTimeout <= 0 {
		s.HTTPTimeout = confchain.DefaultHTTPTimeout
	}
	return s, nil
}

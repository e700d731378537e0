// File: internal/config/config.go
// Author: momentics <momentics@gmail.com>
//
// Package config loads runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/momentics/zukou-go/internal/transport"
	"github.com/rs/zerolog"
)

// DefaultDisplay is the socket name used when none is configured.
const DefaultDisplay = transport.DefaultDisplay

var (
	ErrInvalidMaxEvents = errors.New("max events must be positive")
	ErrInvalidLogLevel  = errors.New("unknown log level")
)

// Config holds the client runtime settings.
type Config struct {
	// Display is the server socket name or absolute path.
	// Env: ZUKOU_DISPLAY
	Display string `env:"ZUKOU_DISPLAY" envDefault:"zigen-0"`

	// RuntimeDir resolves relative display names.
	// Env: XDG_RUNTIME_DIR
	RuntimeDir string `env:"XDG_RUNTIME_DIR"`

	// LogLevel is a zerolog level name.
	// Env: ZUKOU_LOG_LEVEL
	LogLevel string `env:"ZUKOU_LOG_LEVEL" envDefault:"info"`

	// MaxEvents bounds how many ready sources one wait may return.
	// Env: ZUKOU_MAX_EVENTS
	MaxEvents int `env:"ZUKOU_MAX_EVENTS" envDefault:"16"`

	// Tick is the period of the example heartbeat timer; zero disables it.
	// Env: ZUKOU_TICK
	Tick time.Duration `env:"ZUKOU_TICK" envDefault:"0s"`
}

// Load parses the environment and validates the result.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("error getting env configs: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field ranges.
func (c *Config) Validate() error {
	if c.MaxEvents <= 0 {
		return ErrInvalidMaxEvents
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
	}
	return nil
}

// Endpoint resolves Display to a socket path against RuntimeDir.
func (c *Config) Endpoint() (string, error) {
	return transport.ResolveEndpointIn(c.Display, c.RuntimeDir)
}

// Package config reads process settings from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config is the serve-time configuration. A .env file in the working
// directory is loaded before parsing.
type Config struct {
	Port     int    `env:"PORT" envDefault:"8080"`
	GinMode  string `env:"GIN_MODE" envDefault:"release"`
	LogLevel string `env:"PORTFOLIO_LOG_LEVEL" envDefault:"info"`
	// Content, when set, replaces the embedded content document.
	Content string `env:"PORTFOLIO_CONTENT"`
	// Watch re-renders the page when the Content file changes.
	Watch bool `env:"PORTFOLIO_WATCH" envDefault:"false"`
}

// Load parses Config from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseEnv loads configuration from environment variables into target.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Addr is the listen address for Port.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Development reports whether gin runs in debug mode.
func (c Config) Development() bool {
	return c.GinMode == "debug"
}

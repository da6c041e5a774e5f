// Package config loads process configuration from environment variables.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	return ParseEnvFrom(target, nil)
}

// ParseEnvFrom loads configuration from the provided variables instead of the
// process environment. A nil map falls back to the process environment.
func ParseEnvFrom(target any, environment map[string]string) error {
	opts := env.Options{}
	if environment != nil {
		opts.Environment = environment
	}
	if err := env.ParseWithOptions(target, opts); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

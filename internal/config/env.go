package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env holds process settings read from the environment. Values here take
// precedence over the config file.
type Env struct {
	ConfigPath string `env:"CLASH_CONFIG" envDefault:"clash_config.json"`
	DBPath     string `env:"CLASH_DB" envDefault:"clash.db"`
	Address    string `env:"CLASH_ADDR"`
	Seed       int64  `env:"CLASH_SEED"`
	LogLevel   string `env:"CLASH_LOG_LEVEL"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all runtime settings, parsed from the environment.
type Config struct {
	ListenAddr  string        `env:"LISTEN_ADDR" envDefault:":8000"`
	RoomTTL     time.Duration `env:"ROOM_TTL" envDefault:"240h"`
	DefaultLang string        `env:"DEFAULT_LANG" envDefault:"tr"`
	LogLevel    string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFile     string        `env:"LOG_FILE"`
}

// Load parses the environment into a Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type ClientConfig struct {
	ServerURL string        `env:"CARPRICE_SERVER_URL" envDefault:"http://localhost:5000"`
	Timeout   time.Duration `env:"CARPRICE_TIMEOUT" envDefault:"30s"`
}

// ReadClientConfig loads .env files (missing ones are ignored) and parses
// the environment. With no files it looks for ./.env.
func ReadClientConfig(files ...string) (*ClientConfig, error) {
	_ = godotenv.Load(files...)

	cfg := &ClientConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: parse environment: %w", err)
	}
	return cfg, nil
}

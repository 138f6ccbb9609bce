// Package config loads runtime settings from APP_-prefixed environment
// variables, reading a .env file first when one exists.
package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "APP_"

// Config is the service configuration.
type Config struct {
	// Env is development, production or test.
	Env  string `koanf:"env" validate:"required,oneof=development production test"`
	Host string `koanf:"host" validate:"required,ip|hostname_rfc1123"`
	Port int    `koanf:"port" validate:"required,min=1,max=65535"`
	// ShutdownTimeout bounds graceful shutdown after SIGINT/SIGTERM.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"required,gt=0"`
}

// Default returns the settings used when no variable overrides them: every
// interface on port 8000.
func Default() Config {
	return Config{
		Env:             "development",
		Host:            "0.0.0.0",
		Port:            8000,
		ShutdownTimeout: 10 * time.Second,
	}
}

// Addr is the listen address.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Load reads APP_ENV, APP_HOST, APP_PORT and APP_SHUTDOWN_TIMEOUT over the
// defaults and validates the result.
func Load() (*Config, error) {
	k := koanf.New(".")
	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// Package config provides application configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"strconv"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// BuildDemoMode is the build-time demo flag, injected with
//
//	go build -ldflags "-X aether/internal/config.BuildDemoMode=true"
//
// When empty the DEMO_MODE environment variable is used instead.
var BuildDemoMode string

// ErrParsingConfig wraps any failure to read configuration from the
// environment.
var ErrParsingConfig = errors.New("parsing config")

// Config holds the application configuration.
type Config struct {
	// Server settings
	Port int    `env:"PORT" envDefault:"8080"`
	Host string `env:"HOST" envDefault:"localhost"`

	// TrustProxy honors X-Forwarded-* and X-Real-IP headers. Only enable
	// behind a reverse proxy that overwrites them.
	TrustProxy bool `env:"TRUST_PROXY" envDefault:"false"`

	// PublicURL is the externally visible URL of this deployment. Optional;
	// derived from the request when empty.
	PublicURL string `env:"PUBLIC_URL"`

	// Database settings
	DBPath string `env:"DB_PATH" envDefault:"data/aether.db"`

	// Logging
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Environment
	Env      string `env:"ENV" envDefault:"development"`
	DemoMode string `env:"DEMO_MODE"`
}

// Load reads configuration from the environment. Any given .env files are
// loaded first; missing files are ignored, unreadable or malformed ones are
// errors. Variables already set in the
// environment take precedence over the files.
func Load(envFiles ...string) (*Config, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: loading %s: %w", ErrParsingConfig, f, err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.Join(ErrParsingConfig, err)
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("%w: port %d out of range", ErrParsingConfig, cfg.Port)
	}
	return cfg, nil
}

// DemoFlag returns the effective raw demo flag: the build-time value when
// set, otherwise DEMO_MODE.
func (c *Config) DemoFlag() string {
	if BuildDemoMode != "" {
		return BuildDemoMode
	}
	return c.DemoMode
}

// IsDevelopment reports whether the app runs in the development environment.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Address returns the full address to bind the server to.
func (c *Config) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

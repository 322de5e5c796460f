// Package config loads server configuration from the environment, with an
// optional .env file for local runs.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/multierr"
)

const (
	BackendHTTP     = "http"
	BackendPostgres = "postgres"
)

type Config struct {
	HTTPAddr  string `env:"HTTP_ADDR" envDefault:":8080"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	CatalogBackend string        `env:"CATALOG_BACKEND" envDefault:"http"`
	CatalogBaseURL string        `env:"CATALOG_BASE_URL" envDefault:"http://firefly.test/api"`
	CatalogTimeout time.Duration `env:"CATALOG_TIMEOUT" envDefault:"30s"`
	DatabaseURL    string        `env:"DATABASE_URL"`

	DefaultSourceIDs []int `env:"DEFAULT_SOURCE_IDS" envDefault:"1,2,3,4,5" envSeparator:","`
}

// Load reads envFiles (missing files are ignored) into the process
// environment without overriding it, then parses and validates Config.
func Load(envFiles ...string) (*Config, error) {
	var present []string
	for _, f := range envFiles {
		if _, err := os.Stat(f); err == nil {
			present = append(present, f)
		}
	}
	if len(present) > 0 {
		if err := godotenv.Load(present...); err != nil {
			return nil, fmt.Errorf("load env file: %w", err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.CatalogBackend = strings.ToLower(strings.TrimSpace(cfg.CatalogBackend))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var err error
	if strings.TrimSpace(c.HTTPAddr) == "" {
		err = multierr.Append(err, fmt.Errorf("HTTP_ADDR is required"))
	}
	switch c.CatalogBackend {
	case BackendHTTP:
		if strings.TrimSpace(c.CatalogBaseURL) == "" {
			err = multierr.Append(err, fmt.Errorf("CATALOG_BASE_URL is required for the http backend"))
		}
	case BackendPostgres:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			err = multierr.Append(err, fmt.Errorf("DATABASE_URL is required for the postgres backend"))
		}
	default:
		err = multierr.Append(err, fmt.Errorf("CATALOG_BACKEND must be %q or %q, got %q", BackendHTTP, BackendPostgres, c.CatalogBackend))
	}
	if c.CatalogTimeout < 0 {
		err = multierr.Append(err, fmt.Errorf("CATALOG_TIMEOUT must not be negative"))
	}
	for _, id := range c.DefaultSourceIDs {
		if id <= 0 {
			err = multierr.Append(err, fmt.Errorf("DEFAULT_SOURCE_IDS has invalid id %d", id))
		}
	}
	return err
}

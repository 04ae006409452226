// Package config loads service settings from an optional YAML file, a .env
// file and RCA_* environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Store drivers.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// Config holds every setting used by the CLI and the HTTP server.
type Config struct {
	Addr           string      `yaml:"addr"`
	Store          StoreConfig `yaml:"store"`
	LogMode        string      `yaml:"logMode"`
	CatalogPath    string      `yaml:"catalog"`
	AllowedOrigins []string    `yaml:"allowedOrigins"`
}

// StoreConfig selects the record store backend.
type StoreConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

// Default returns the built-in settings: memory store on :8080, dev logging.
func Default() Config {
	return Config{
		Addr:           ":8080",
		Store:          StoreConfig{Driver: DriverMemory},
		LogMode:        "dev",
		AllowedOrigins: []string{"*"},
	}
}

// Load returns the defaults overlaid with the YAML file at path (skipped
// when path is empty), then .env, then the environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	// .env is optional; existing environment variables win over it.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}
	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnv(cfg *Config) {
	setIfEnv(&cfg.Addr, "RCA_ADDR")
	setIfEnv(&cfg.Store.Driver, "RCA_STORE_DRIVER")
	setIfEnv(&cfg.Store.DSN, "RCA_STORE_DSN")
	setIfEnv(&cfg.LogMode, "RCA_LOG_MODE")
	setIfEnv(&cfg.CatalogPath, "RCA_CATALOG")
	if v := os.Getenv("RCA_ALLOWED_ORIGINS"); v != "" {
		cfg.AllowedOrigins = splitList(v)
	}
}

func setIfEnv(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

// splitList parses a comma-separated list, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Validate checks the driver, its DSN and the log mode.
func (c Config) Validate() error {
	switch c.Store.Driver {
	case DriverMemory:
	case DriverSQLite, DriverPostgres, DriverMySQL:
		if c.Store.DSN == "" {
			return fmt.Errorf("store driver %q requires a dsn (RCA_STORE_DSN)", c.Store.Driver)
		}
	default:
		return fmt.Errorf("unknown store driver %q (must be memory, sqlite, postgres or mysql)", c.Store.Driver)
	}
	switch strings.ToLower(c.LogMode) {
	case "dev", "development", "prod", "production":
	default:
		return fmt.Errorf("unknown log mode %q (must be dev or prod)", c.LogMode)
	}
	if c.Addr == "" {
		return fmt.Errorf("addr must not be empty")
	}
	if len(c.AllowedOrigins) == 0 {
		return fmt.Errorf("allowedOrigins must list at least one origin (use \"*\" to allow all)")
	}
	return nil
}

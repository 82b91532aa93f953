package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config struct to hold the configuration settings
type Config struct {
	Postgres      PostgresConfig      `yaml:"postgres"`
	NATS          NATSConfig          `yaml:"nats"`
	HTTP          HTTPConfig          `yaml:"http"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// PostgresConfig holds Postgres configuration.
type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

// NATSConfig holds NATS configuration.
type NATSConfig struct {
	URL string `yaml:"url"`
}

// HTTPConfig holds the HTTP API configuration.
type HTTPConfig struct {
	Addr string `yaml:"addr"`
	// SubmitRatePerSec and SubmitBurst bound score submissions per client IP.
	SubmitRatePerSec float64 `yaml:"submit_rate_per_sec"`
	SubmitBurst      int     `yaml:"submit_burst"`
}

// ObservabilityConfig holds configuration for observability components
type ObservabilityConfig struct {
	MetricsAddress string `yaml:"metrics_address"` // optional; empty disables metrics
	Environment    string `yaml:"environment"`
}

const (
	DefaultHTTPAddr         = ":8080"
	DefaultSubmitRatePerSec = 2.0
	DefaultSubmitBurst      = 5
)

// LoadConfig loads the configuration from a YAML file, falling back to
// environment variables when the file is absent. DATABASE_URL and NATS_URL
// must resolve to non-empty values or startup fails.
func LoadConfig(filename string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(filename)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}

	// --- OVERRIDE WITH ENV VARS IF PRESENT ---
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("NATS_URL"); v != "" {
		cfg.NATS.URL = v
	}
	if v := os.Getenv("HTTP_ADDR"); v != "" {
		cfg.HTTP.Addr = v
	}
	if v := os.Getenv("METRICS_ADDRESS"); v != "" {
		cfg.Observability.MetricsAddress = v
	}
	if v := os.Getenv("ENV"); v != "" {
		cfg.Observability.Environment = v
	}

	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = DefaultHTTPAddr
	}
	if cfg.HTTP.SubmitRatePerSec <= 0 {
		cfg.HTTP.SubmitRatePerSec = DefaultSubmitRatePerSec
	}
	if cfg.HTTP.SubmitBurst <= 0 {
		cfg.HTTP.SubmitBurst = DefaultSubmitBurst
	}

	// The store endpoint and credential travel in the DSN; without them no
	// ledger operation is reachable, so fail here rather than later.
	if cfg.Postgres.DSN == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable not set")
	}
	if cfg.NATS.URL == "" {
		return nil, fmt.Errorf("NATS_URL environment variable not set")
	}

	return &cfg, nil
}

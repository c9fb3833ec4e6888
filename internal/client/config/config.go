package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	TransportHTTP = "http"
	TransportGRPC = "grpc"
)

// Config holds runtime settings for the gophwallet CLI.
type Config struct {
	ServerURL      string        `env:"GOPHWALLET_SERVER_URL"`
	GRPCAddr       string        `env:"GOPHWALLET_GRPC_ADDR"`
	Transport      string        `env:"GOPHWALLET_TRANSPORT"`
	RequestTimeout time.Duration `env:"GOPHWALLET_TIMEOUT"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.GRPCAddr = "127.0.0.1:50051"
	c.Transport = TransportHTTP
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON, the environment and command-line flags. Later sources take
// precedence over earlier ones.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}

	if cfg.Transport != TransportHTTP && cfg.Transport != TransportGRPC {
		return nil, fmt.Errorf("unknown transport %q", cfg.Transport)
	}
	return cfg, nil
}

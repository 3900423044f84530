package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config defines server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Transport TransportConfig `yaml:"transport"`
	Store     StoreConfig     `yaml:"store"`
	Summary   SummaryConfig   `yaml:"summary"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Log       LogConfig       `yaml:"log"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// TransportConfig selects how clients reach the registry: "http" serves the
// REST API (with MCP mounted at /mcp), "stdio" serves MCP only.
type TransportConfig struct {
	Mode string `yaml:"mode"`
}

// StoreConfig selects the entry backend. Both backends are memory-only.
type StoreConfig struct {
	Driver string `yaml:"driver"`
	Name   string `yaml:"name"`
}

type SummaryConfig struct {
	MaxDepth int `yaml:"max_depth"`
}

// RateLimitConfig bounds API requests per second. A zero RPS disables limiting.
type RateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Transport: TransportConfig{
			Mode: "http",
		},
		Store: StoreConfig{
			Driver: "memory",
			Name:   "cookbook",
		},
		Summary: SummaryConfig{
			MaxDepth: 64,
		},
		RateLimit: RateLimitConfig{
			RPS:   100,
			Burst: 200,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv("COOKBOOK_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if host := os.Getenv("COOKBOOK_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if err := envInt("COOKBOOK_SERVER_PORT", &cfg.Server.Port); err != nil {
		return Config{}, err
	}
	if mode := os.Getenv("COOKBOOK_TRANSPORT"); mode != "" {
		cfg.Transport.Mode = mode
	}
	if driver := os.Getenv("COOKBOOK_STORE_DRIVER"); driver != "" {
		cfg.Store.Driver = driver
	}
	if err := envInt("COOKBOOK_SUMMARY_MAX_DEPTH", &cfg.Summary.MaxDepth); err != nil {
		return Config{}, err
	}
	if rps := os.Getenv("COOKBOOK_RATE_LIMIT"); rps != "" {
		v, err := strconv.ParseFloat(rps, 64)
		if err != nil {
			return Config{}, fmt.Errorf("invalid COOKBOOK_RATE_LIMIT: %w", err)
		}
		cfg.RateLimit.RPS = v
	}
	if err := envInt("COOKBOOK_RATE_BURST", &cfg.RateLimit.Burst); err != nil {
		return Config{}, err
	}
	if level := os.Getenv("COOKBOOK_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if format := os.Getenv("COOKBOOK_LOG_FORMAT"); format != "" {
		cfg.Log.Format = format
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot run with.
func (c Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	switch c.Transport.Mode {
	case "http", "stdio":
	default:
		return fmt.Errorf("invalid transport mode %q", c.Transport.Mode)
	}
	switch c.Store.Driver {
	case "memory", "sqlite":
	default:
		return fmt.Errorf("invalid store driver %q", c.Store.Driver)
	}
	if c.Summary.MaxDepth < 0 {
		return fmt.Errorf("invalid summary max depth %d", c.Summary.MaxDepth)
	}
	if c.RateLimit.RPS < 0 || c.RateLimit.Burst < 0 {
		return fmt.Errorf("invalid rate limit %v/%d", c.RateLimit.RPS, c.RateLimit.Burst)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q", c.Log.Format)
	}
	return nil
}

func envInt(key string, dst *int) error {
	s := os.Getenv(key)
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = v
	return nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

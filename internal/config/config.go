// Package config provides configuration management for chromagraph.
//
// Config file locations (priority order):
//  1. $CHROMAGRAPH_CONFIG
//  2. ./chromagraph.yaml or ./chromagraph.toml
//  3. ~/.config/chromagraph/config.yaml
//  4. /etc/chromagraph/config.yaml
//
// Files ending in .toml are decoded as TOML, everything else as YAML.
// Environment variables override the file.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Defaults
const (
	DefaultAddr             = ":3000"
	DefaultColoringEndpoint = "http://localhost:5000"
	DefaultColoringTimeout  = 10 * time.Second
	DefaultRadius           = 150.0
	DefaultLogLevel         = "info"
)

var validate = validator.New()

// Load finds and loads the config file, or returns defaults if none found
func Load() (*Config, string, error) {
	path := FindConfigPath()

	if path == "" {
		cfg := DefaultConfig()
		cfg.applyEnv()
		return cfg, "", cfg.Validate()
	}

	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if isTOML(path) {
		err = toml.Unmarshal(data, &cfg)
	} else {
		err = yaml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, path, err
	}

	return &cfg, path, nil
}

// Save writes config to the specified path
func (c *Config) Save(path string) error {
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := c.Encode(isTOML(path))
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Encode renders the config as YAML, or TOML when asTOML is set
func (c *Config) Encode(asTOML bool) ([]byte, error) {
	if asTOML {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(c); err != nil {
			return nil, fmt.Errorf("marshal config: %w", err)
		}
		return buf.Bytes(), nil
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return data, nil
}

// Validate checks field constraints
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// DefaultConfig returns sensible defaults for a new installation
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = Duration(15 * time.Second)
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = Duration(30 * time.Second)
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = Duration(60 * time.Second)
	}

	if c.Coloring.Endpoint == "" {
		c.Coloring.Endpoint = DefaultColoringEndpoint
	}
	if c.Coloring.Timeout == 0 {
		c.Coloring.Timeout = Duration(DefaultColoringTimeout)
	}
	b := &c.Coloring.Breaker
	if b.MaxRequests == 0 {
		b.MaxRequests = 1
	}
	if b.Interval == 0 {
		b.Interval = Duration(time.Minute)
	}
	if b.Timeout == 0 {
		b.Timeout = Duration(30 * time.Second)
	}
	if b.MinRequests == 0 {
		b.MinRequests = 3
	}
	if b.FailureRatio == 0 {
		b.FailureRatio = 0.6
	}

	if c.Canvas.Radius == 0 {
		c.Canvas.Radius = DefaultRadius
	}

	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	c.Log.Level = strings.ToLower(c.Log.Level)
}

// applyEnv overrides file values with environment variables
func (c *Config) applyEnv() {
	if addr := os.Getenv(EnvAddr); addr != "" {
		c.Server.Addr = addr
	}
	if endpoint := os.Getenv(EnvColoringEndpoint); endpoint != "" {
		c.Coloring.Endpoint = endpoint
	}
}

// Summary returns a human-readable config summary
func (c *Config) Summary() string {
	summary := fmt.Sprintf("Server: %s (read %s, write %s, idle %s)\n",
		c.Server.Addr, c.Server.ReadTimeout.Duration(), c.Server.WriteTimeout.Duration(), c.Server.IdleTimeout.Duration())
	summary += fmt.Sprintf("Coloring: %s (timeout %s)\n", c.Coloring.Endpoint, c.Coloring.Timeout.Duration())
	summary += fmt.Sprintf("Canvas radius: %g\n", c.Canvas.Radius)
	summary += fmt.Sprintf("Log level: %s", c.Log.Level)
	if c.Log.Development {
		summary += " (development)"
	}
	return summary
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

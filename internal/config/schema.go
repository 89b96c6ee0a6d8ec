package config

import (
	"time"
)

// Config is the root configuration structure
type Config struct {
	Server   ServerConfig   `yaml:"server" toml:"server"`
	Coloring ColoringConfig `yaml:"coloring" toml:"coloring"`
	Canvas   CanvasConfig   `yaml:"canvas" toml:"canvas"`
	Log      LogConfig      `yaml:"log" toml:"log"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Addr           string   `yaml:"addr" toml:"addr" validate:"required"`
	ReadTimeout    Duration `yaml:"read_timeout" toml:"read_timeout"`
	WriteTimeout   Duration `yaml:"write_timeout" toml:"write_timeout"`
	IdleTimeout    Duration `yaml:"idle_timeout" toml:"idle_timeout"`
	AllowedOrigins []string `yaml:"allowed_origins,omitempty" toml:"allowed_origins,omitempty"`
}

// ColoringConfig points at the external coloring service
type ColoringConfig struct {
	Endpoint string        `yaml:"endpoint" toml:"endpoint" validate:"required,url"`
	Timeout  Duration      `yaml:"timeout" toml:"timeout"`
	Breaker  BreakerConfig `yaml:"breaker" toml:"breaker"`
}

// BreakerConfig tunes the circuit breaker around the coloring service
type BreakerConfig struct {
	MaxRequests  uint32   `yaml:"max_requests" toml:"max_requests"`
	Interval     Duration `yaml:"interval" toml:"interval"`
	Timeout      Duration `yaml:"timeout" toml:"timeout"`
	MinRequests  uint32   `yaml:"min_requests" toml:"min_requests"`
	FailureRatio float64  `yaml:"failure_ratio" toml:"failure_ratio" validate:"gte=0,lte=1"`
}

// CanvasConfig holds layout settings
type CanvasConfig struct {
	Radius float64 `yaml:"radius" toml:"radius" validate:"gt=0,lte=190"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level       string `yaml:"level" toml:"level" validate:"oneof=debug info warn error"`
	Development bool   `yaml:"development" toml:"development"`
}

// Duration wraps time.Duration for YAML and TOML unmarshaling
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	return d.UnmarshalText([]byte(s))
}

// MarshalYAML implements yaml.Marshaler
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, used by the TOML decoder
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Duration returns the underlying time.Duration
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

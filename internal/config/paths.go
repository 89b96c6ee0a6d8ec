package config

import (
	"os"
	"path/filepath"
)

const (
	// EnvConfigPath is the environment variable for explicit config path
	EnvConfigPath = "CHROMAGRAPH_CONFIG"
	// EnvAddr overrides server.addr
	EnvAddr = "CHROMAGRAPH_ADDR"
	// EnvColoringEndpoint overrides coloring.endpoint
	EnvColoringEndpoint = "CHROMAGRAPH_COLORING_ENDPOINT"
	// ConfigFileName is the default config file name
	ConfigFileName = "chromagraph.yaml"
	// TOMLConfigFileName is the TOML alternative in the working directory
	TOMLConfigFileName = "chromagraph.toml"
	// ConfigDirName is the config directory name under XDG
	ConfigDirName = "chromagraph"
)

// FindConfigPath searches for config file in priority order:
// 1. $CHROMAGRAPH_CONFIG (explicit path)
// 2. ./chromagraph.yaml, then ./chromagraph.toml (working directory)
// 3. $XDG_CONFIG_HOME/chromagraph/config.yaml
// 4. ~/.config/chromagraph/config.yaml
// 5. /etc/chromagraph/config.yaml
//
// Returns empty string if no config file found
func FindConfigPath() string {
	if path := os.Getenv(EnvConfigPath); path != "" {
		if fileExists(path) {
			return path
		}
	}

	for _, name := range []string{ConfigFileName, TOMLConfigFileName} {
		if fileExists(name) {
			if abs, err := filepath.Abs(name); err == nil {
				return abs
			}
			return name
		}
	}

	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		path := filepath.Join(xdgHome, ConfigDirName, "config.yaml")
		if fileExists(path) {
			return path
		}
	}

	if home := os.Getenv("HOME"); home != "" {
		path := filepath.Join(home, ".config", ConfigDirName, "config.yaml")
		if fileExists(path) {
			return path
		}
	}

	systemPath := filepath.Join("/etc", ConfigDirName, "config.yaml")
	if fileExists(systemPath) {
		return systemPath
	}

	return ""
}

// DefaultConfigPath returns the preferred location for a new config file
// Prefers XDG config home, falls back to working directory
func DefaultConfigPath() string {
	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		return filepath.Join(xdgHome, ConfigDirName, "config.yaml")
	}

	if home := os.Getenv("HOME"); home != "" {
		return filepath.Join(home, ".config", ConfigDirName, "config.yaml")
	}

	return ConfigFileName
}

// EnsureConfigDir creates the config directory if it doesn't exist
func EnsureConfigDir(configPath string) error {
	dir := filepath.Dir(configPath)
	return os.MkdirAll(dir, 0755)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

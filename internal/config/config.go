// Package config loads user defaults for bank from a YAML file.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/d-kuro/bank/internal/errors"
	"github.com/d-kuro/bank/internal/fsops"
	"github.com/d-kuro/bank/internal/logging"
)

const (
	// EnvConfig names an alternative config file.
	EnvConfig = "BANK_CONFIG"
	// EnvLogLevel overrides log_level.
	EnvLogLevel = "LOG_LEVEL"

	configDirName  = "bank"
	configFileName = "config.yaml"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config holds user defaults. Explicit command-line flags take precedence.
type Config struct {
	LogLevel       string   `yaml:"log_level"`
	Color          string   `yaml:"color"`
	Mode           string   `yaml:"mode"`
	Parents        bool     `yaml:"parents"`
	Verbose        bool     `yaml:"verbose"`
	ProtectedPaths []string `yaml:"protected_paths"`
}

// Load reads the config file at path. With an empty path it uses
// $BANK_CONFIG, then the default location; a missing default file yields
// defaults, while a missing explicit file is an error.
func Load(path string) (*Config, error) {
	explicit := true
	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path == "" {
		explicit = false
		path = DefaultPath()
	}

	cfg, err := loadFromFile(path, explicit)
	if err != nil {
		return nil, err
	}

	if level := os.Getenv(EnvLogLevel); level != "" {
		cfg.LogLevel = level
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultPath returns $XDG_CONFIG_HOME/bank/config.yaml or the platform
// equivalent. It is empty when no config directory can be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, configDirName, configFileName)
}

func loadFromFile(path string, explicit bool) (*Config, error) {
	cfg := defaults()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, errors.ConfigurationWithCause(err, "reading config file %q", path)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.ConfigurationWithCause(err, "parsing config file %q", path)
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		LogLevel: "warn",
		Color:    ColorAuto,
	}
}

func (c *Config) validate() error {
	if _, ok := logging.ParseLevel(c.LogLevel); !ok {
		return errors.Configuration("log_level must be one of debug, info, warn, error, got %q", c.LogLevel)
	}
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return errors.Configuration("color must be one of auto, always, never, got %q", c.Color)
	}
	if c.Mode != "" {
		if _, err := fsops.ParseMode(c.Mode); err != nil {
			return errors.ConfigurationWithCause(err, "invalid mode in config")
		}
	}
	return nil
}

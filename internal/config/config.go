// Package config handles configuration loading for the mimeinspect tool.
//
// Configuration is loaded from a YAML file with support for environment
// variable expansion (${VAR} or $VAR syntax).
//
// # Configuration Sections
//
//   - logging: log level (debug, info, warn, error) and format (text, json)
//   - parse: whether the raw wire text of each message is kept
//   - output: report format (yaml or text)
//
// # Example Configuration
//
//	logging:
//	  level: ${LOG_LEVEL}
//	  format: json
//
//	parse:
//	  keepRaw: false
//
//	output:
//	  format: yaml
//
// See [Load] for loading configuration from a file and [Default] for the
// configuration used when no file is given.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Parse   ParseConfig   `yaml:"parse"`
	Output  OutputConfig  `yaml:"output"`
}

// LoggingConfig holds log settings
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ParseConfig holds entity parsing settings
type ParseConfig struct {
	// KeepRaw retains the wire text of top-level messages so that they
	// serialize byte for byte as received
	KeepRaw *bool `yaml:"keepRaw"`
}

// OutputConfig holds report settings
type OutputConfig struct {
	Format string `yaml:"format"`
}

// Default returns the configuration with every default applied
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// KeepRaw reports whether raw message text should be retained
func (c *Config) KeepRaw() bool {
	return c.Parse.KeepRaw != nil && *c.Parse.KeepRaw
}

// LogLevel returns the configured slog level
func (c *Config) LogLevel() slog.Level {
	switch strings.ToLower(c.Logging.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (c *Config) applyDefaults() {
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.Parse.KeepRaw == nil {
		keepRaw := true
		c.Parse.KeepRaw = &keepRaw
	}
	if c.Output.Format == "" {
		c.Output.Format = "yaml"
	}
}

func (c *Config) validate() error {
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level must be 'debug', 'info', 'warn' or 'error', got '%s'", c.Logging.Level)
	}

	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format must be 'text' or 'json', got '%s'", c.Logging.Format)
	}

	switch c.Output.Format {
	case "yaml", "text":
	default:
		return fmt.Errorf("output.format must be 'yaml' or 'text', got '%s'", c.Output.Format)
	}

	return nil
}

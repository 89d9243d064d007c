package config

// Configuration loading and validation for sadecode

import (
	"encoding/binary"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tturner/sadecode/internal/codec"
	"github.com/tturner/sadecode/internal/errors"
)

// DefaultPath is the config file looked up when --config is not given.
const DefaultPath = "sadecode.yaml"

// Config is the top-level sadecode configuration.
type Config struct {
	ByteOrder string        `yaml:"byte_order"` // "big" (default) or "little"
	Logging   LoggingConfig `yaml:"logging"`
	Output    OutputConfig  `yaml:"output"`
	Metrics   MetricsConfig `yaml:"metrics"`
}

// LoggingConfig controls the leveled logger.
type LoggingConfig struct {
	Level     string `yaml:"level"`                 // silent, error, info, verbose, debug
	File      string `yaml:"file,omitempty"`        // optional log file
	Format    string `yaml:"format,omitempty"`      // log file format: "text" or "json"
	LogEveryN int    `yaml:"log_every_n,omitempty"` // console sampling, 1 = every message
}

// OutputConfig controls how decoded records are rendered.
type OutputConfig struct {
	Format  string `yaml:"format"`             // text, json, yaml
	Color   bool   `yaml:"color"`              // styled text output
	HexDump bool   `yaml:"hex_dump,omitempty"` // append a hex dump of the decoded window
}

// MetricsConfig controls the decode counters.
type MetricsConfig struct {
	Enable bool `yaml:"enable"` // print counters in Prometheus text format after the command
}

var (
	validLevels  = []string{"silent", "error", "info", "verbose", "debug"}
	validFormats = []string{"text", "json", "yaml"}
)

// CreateDefaultConfig creates a default configuration
func CreateDefaultConfig() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	cfg.Output.Color = true
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.ByteOrder == "" {
		cfg.ByteOrder = "big"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Logging.LogEveryN == 0 {
		cfg.Logging.LogEveryN = 1
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = "text"
	}
}

// WriteDefaultConfig writes a default configuration to a file
func WriteDefaultConfig(path string) error {
	cfg := CreateDefaultConfig()
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal default config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// LoadConfig loads a configuration from a YAML file. A missing file yields
// the defaults when optional is true and an error otherwise.
func LoadConfig(path string, optional bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && optional {
			return CreateDefaultConfig(), nil
		}
		if os.IsNotExist(err) {
			return nil, errors.WrapConfigError(
				fmt.Errorf("config file not found: %s", path),
				path,
			)
		}
		return nil, errors.WrapConfigError(
			fmt.Errorf("read config file: %w", err),
			path,
		)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.WrapConfigError(fmt.Errorf("parse YAML: %w", err), path)
	}

	applyDefaults(&cfg)

	if err := ValidateConfig(&cfg); err != nil {
		return nil, errors.WrapConfigError(fmt.Errorf("validate config: %w", err), path)
	}

	return &cfg, nil
}

// ValidateConfig validates a configuration
func ValidateConfig(cfg *Config) error {
	if _, err := ParseByteOrder(cfg.ByteOrder); err != nil {
		return fmt.Errorf("byte_order: %w", err)
	}
	if !contains(validLevels, strings.ToLower(cfg.Logging.Level)) {
		return fmt.Errorf("logging.level must be one of %s, got %q", strings.Join(validLevels, ", "), cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" && cfg.Logging.Format != "json" {
		return fmt.Errorf("logging.format must be text or json, got %q", cfg.Logging.Format)
	}
	if cfg.Logging.LogEveryN < 1 {
		return fmt.Errorf("logging.log_every_n must be at least 1, got %d", cfg.Logging.LogEveryN)
	}
	if !contains(validFormats, cfg.Output.Format) {
		return fmt.Errorf("output.format must be one of %s, got %q", strings.Join(validFormats, ", "), cfg.Output.Format)
	}
	return nil
}

// ParseByteOrder maps "big"/"little" (and the "be"/"le" short forms) to a
// binary.ByteOrder. The empty string means big-endian.
func ParseByteOrder(s string) (binary.ByteOrder, error) {
	return codec.ParseByteOrder(s)
}

// Order returns the configured byte order, big-endian when invalid.
func (c *Config) Order() binary.ByteOrder {
	order, err := ParseByteOrder(c.ByteOrder)
	if err != nil {
		return binary.BigEndian
	}
	return order
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// Package config handles configuration loading from YAML files and environment variables.
// Configuration precedence: CLI flags > environment variables > config file > embedded > defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/stormshift/baytech-mmp-13de-pdu-monitoring/internal/models"
)

// Duration is a wrapper around time.Duration that supports YAML unmarshaling
// from human-readable strings like "900s", "15m".
type Duration struct {
	time.Duration
}

// UnmarshalYAML implements the yaml.Unmarshaler interface for Duration.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		parsed, err := time.ParseDuration(value.Value)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", value.Value, err)
		}
		d.Duration = parsed
		return nil
	default:
		return fmt.Errorf("unsupported duration format: %v", value.Kind)
	}
}

// MarshalYAML implements the yaml.Marshaler interface for Duration.
func (d Duration) MarshalYAML() (interface{}, error) {
	return d.Duration.String(), nil
}

// Config holds all probe configuration.
type Config struct {
	Probe   ProbeConfig   `yaml:"probe"`
	Logging LoggingConfig `yaml:"logging"`
}

// ProbeConfig holds snapshot resolution settings.
type ProbeConfig struct {
	// MaxAge is the freshness window; snapshots this old or older are stale.
	MaxAge          Duration `yaml:"max_age"`
	DefaultCategory string   `yaml:"default_category"`
	// StdinPath is the resolved path that skips the readability check.
	StdinPath string `yaml:"stdin_path"`
}

// LoggingConfig holds logging settings. An empty File disables logging;
// stdout and stderr belong to the monitoring supervisor.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// DefaultMaxAge is the default freshness window (15 minutes).
const DefaultMaxAge = 900 * time.Second

// DefaultStdinPath is the literal path that bypasses the readability check.
const DefaultStdinPath = "/dev/stdin"

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Probe: ProbeConfig{
			MaxAge:          Duration{DefaultMaxAge},
			DefaultCategory: string(models.DefaultCategory),
			StdinPath:       DefaultStdinPath,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "",
		},
	}
}

// CLIOverrides holds values from command-line flags.
// Zero values are treated as "not set" and skipped.
type CLIOverrides struct {
	MaxAge   time.Duration
	LogLevel string
	LogFile  string
}

// Locate searches standard config file paths and returns the first one found.
// Returns empty string if no config file exists.
func Locate() string {
	for _, p := range configSearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// LoadLayered loads configuration with the full precedence chain:
// CLI flags > env vars > external YAML file > embedded bytes > defaults.
//
// An optional configPath argument controls external-file discovery:
//   - omitted        → auto-discover via Locate()
//   - explicit value  → use that path ("" means no external file)
//
// Unlike discovered files, an explicitly named file must exist.
func LoadLayered(cli CLIOverrides, embedded []byte, configPath ...string) (*Config, error) {
	cfg := DefaultConfig()

	if len(embedded) > 0 {
		if err := yaml.Unmarshal(embedded, cfg); err != nil {
			return nil, fmt.Errorf("parsing embedded config: %w", err)
		}
	}

	var filePath string
	explicit := len(configPath) > 0
	if explicit {
		filePath = configPath[0]
	} else {
		filePath = Locate()
	}
	if filePath != "" {
		data, err := os.ReadFile(filePath)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config file %s: %w", filePath, err)
			}
		case explicit:
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if cli.MaxAge > 0 {
		cfg.Probe.MaxAge = Duration{cli.MaxAge}
	}
	if cli.LogLevel != "" {
		cfg.Logging.Level = cli.LogLevel
	}
	if cli.LogFile != "" {
		cfg.Logging.File = cli.LogFile
	}

	return cfg, nil
}

// WriteConfig serializes the config to a YAML file at the given path.
// Creates parent directories if needed.
func WriteConfig(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0640)
}

// applyEnvOverrides applies environment variable overrides to the configuration.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("PDU_PROBE_MAX_AGE"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid PDU_PROBE_MAX_AGE %q: %w", v, err)
		}
		cfg.Probe.MaxAge = Duration{d}
	}
	if v := os.Getenv("PDU_PROBE_DEFAULT_CATEGORY"); v != "" {
		cfg.Probe.DefaultCategory = v
	}
	if v := os.Getenv("PDU_PROBE_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("PDU_PROBE_LOG_FILE"); v != "" {
		cfg.Logging.File = v
	}
	return nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Probe.MaxAge.Duration <= 0 {
		return fmt.Errorf("probe.max_age must be positive (got: %s)", c.Probe.MaxAge.Duration)
	}
	if _, err := models.ParseCategory(c.Probe.DefaultCategory); err != nil {
		return fmt.Errorf("probe.default_category: %w", err)
	}
	if c.Probe.StdinPath == "" {
		return fmt.Errorf("probe.stdin_path is required")
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error (got: %s)", c.Logging.Level)
	}
	return nil
}

// Category returns the parsed default category. Call Validate first.
func (c *Config) Category() models.Category {
	cat, err := models.ParseCategory(c.Probe.DefaultCategory)
	if err != nil {
		return models.DefaultCategory
	}
	return cat
}

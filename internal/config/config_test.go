package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stormshift/baytech-mmp-13de-pdu-monitoring/internal/models"
)

func TestLoadLayered_CLIOverridesEverything(t *testing.T) {
	embedded := []byte("probe:\n  max_age: 600s\nlogging:\n  level: warn")
	t.Setenv("PDU_PROBE_MAX_AGE", "300s")
	cli := CLIOverrides{MaxAge: 120 * time.Second, LogLevel: "debug"}

	cfg, err := LoadLayered(cli, embedded, "")
	require.NoError(t, err)
	assert.Equal(t, 120*time.Second, cfg.Probe.MaxAge.Duration)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadLayered_EnvOverridesEmbed(t *testing.T) {
	embedded := []byte("probe:\n  max_age: 600s\n  default_category: KWH")
	t.Setenv("PDU_PROBE_MAX_AGE", "300s")

	cfg, err := LoadLayered(CLIOverrides{}, embedded, "")
	require.NoError(t, err)
	assert.Equal(t, 300*time.Second, cfg.Probe.MaxAge.Duration)
	assert.Equal(t, "KWH", cfg.Probe.DefaultCategory)
}

func TestLoadLayered_FileOverridesEmbed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("probe:\n  default_category: temp\n"), 0o600))

	cfg, err := LoadLayered(CLIOverrides{}, []byte("probe:\n  default_category: KWH"), path)
	require.NoError(t, err)
	assert.Equal(t, models.CategoryTemp, cfg.Category())
}

func TestLoadLayered_ExplicitMissingFile(t *testing.T) {
	_, err := LoadLayered(CLIOverrides{}, nil, filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadLayered_InvalidEnvDuration(t *testing.T) {
	t.Setenv("PDU_PROBE_MAX_AGE", "fifteen minutes")
	_, err := LoadLayered(CLIOverrides{}, nil, "")
	assert.ErrorContains(t, err, "PDU_PROBE_MAX_AGE")
}

func TestLoadLayered_DefaultsWhenEmpty(t *testing.T) {
	cfg, err := LoadLayered(CLIOverrides{}, nil, "")
	require.NoError(t, err)
	assert.Equal(t, DefaultMaxAge, cfg.Probe.MaxAge.Duration)
	assert.Equal(t, DefaultStdinPath, cfg.Probe.StdinPath)
	assert.Equal(t, models.CategoryAmps, cfg.Category())
	assert.Empty(t, cfg.Logging.File)
	assert.NoError(t, cfg.Validate())
}

func TestLoadLayered_InvalidFileDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("probe:\n  max_age: soon\n"), 0o600))

	_, err := LoadLayered(CLIOverrides{}, nil, path)
	assert.ErrorContains(t, err, `invalid duration "soon"`)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"zero max age", func(c *Config) { c.Probe.MaxAge = Duration{} }, "max_age"},
		{"bad category", func(c *Config) { c.Probe.DefaultCategory = "VA" }, "default_category"},
		{"empty stdin path", func(c *Config) { c.Probe.StdinPath = "" }, "stdin_path"},
		{"bad level", func(c *Config) { c.Logging.Level = "trace" }, "logging.level"},
		{"level case", func(c *Config) { c.Logging.Level = "DEBUG" }, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestWriteConfig_RoundTripsDuration(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "config.yaml")

	cfg := DefaultConfig()
	cfg.Probe.MaxAge = Duration{10 * time.Minute}

	require.NoError(t, WriteConfig(cfg, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "max_age: 10m0s")

	loaded, err := LoadLayered(CLIOverrides{}, nil, path)
	require.NoError(t, err)
	assert.Equal(t, 10*time.Minute, loaded.Probe.MaxAge.Duration)
}

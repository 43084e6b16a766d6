package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTestConfig() *Config {
	return &Config{
		Logging: LoggingConfig{Level: "info", Format: "json"},
		Transform: TransformConfig{
			Strategy:       "streaming",
			MaxPayloadSize: ByteSize(1 << 30),
		},
		Output: OutputConfig{Atomic: true},
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.False(t, cfg.Logging.AddSource)

	assert.Equal(t, "streaming", cfg.Transform.Strategy)
	assert.Equal(t, 0, cfg.Transform.Workers)
	assert.Equal(t, ByteSize(1<<30), cfg.Transform.MaxPayloadSize)

	assert.True(t, cfg.Output.Atomic)
	assert.False(t, cfg.Output.Progress)
	assert.True(t, cfg.Output.Report)
}

func TestLoad_SearchesWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", t.TempDir())
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".vidxform.yaml"), []byte("transform:\n  workers: 6\n"), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.Transform.Workers)
	assert.Equal(t, ".vidxform.yaml", filepath.Base(cfg.File))
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
logging:
  level: DEBUG
  format: json
transform:
  strategy: parallel
  workers: 4
  max_payload_size: 256MB
output:
  atomic: false
  progress: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "parallel", cfg.Transform.Strategy)
	assert.Equal(t, 4, cfg.Transform.Workers)
	assert.Equal(t, ByteSize(256<<20), cfg.Transform.MaxPayloadSize)
	assert.False(t, cfg.Output.Atomic)
	assert.True(t, cfg.Output.Progress)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("transform:\n  strategy: bulk\n"), 0o644))

	t.Setenv("VIDXFORM_TRANSFORM_STRATEGY", "parallel")
	t.Setenv("VIDXFORM_TRANSFORM_MAX_PAYLOAD_SIZE", "2GB")
	t.Setenv("VIDXFORM_LOGGING_LEVEL", "warning")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "parallel", cfg.Transform.Strategy)
	assert.Equal(t, ByteSize(2<<30), cfg.Transform.MaxPayloadSize)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoad_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("transform: [unclosed"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_InvalidValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("transform:\n  strategy: turbo\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "transform.strategy")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"bad strategy", func(c *Config) { c.Transform.Strategy = "turbo" }, "transform.strategy"},
		{"negative workers", func(c *Config) { c.Transform.Workers = -1 }, "transform.workers"},
		{"negative payload", func(c *Config) { c.Transform.MaxPayloadSize = -1 }, "transform.max_payload_size"},
		{"unlimited payload", func(c *Config) { c.Transform.MaxPayloadSize = 0 }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validTestConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

// Package config provides configuration management for vidxform using Viper.
// It supports configuration from files, environment variables, and defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment variable overrides.
const EnvPrefix = "VIDXFORM"

// Default configuration values.
const (
	defaultStrategy       = "streaming"
	defaultMaxPayloadSize = "1GB"
)

// Config holds all configuration for the application.
type Config struct {
	Logging   LoggingConfig   `mapstructure:"logging" yaml:"logging"`
	Transform TransformConfig `mapstructure:"transform" yaml:"transform"`
	Output    OutputConfig    `mapstructure:"output" yaml:"output"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-" yaml:"-"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level      string `mapstructure:"level" yaml:"level"`   // debug, info, warn, error
	Format     string `mapstructure:"format" yaml:"format"` // json, text
	AddSource  bool   `mapstructure:"add_source" yaml:"add_source"`
	TimeFormat string `mapstructure:"time_format" yaml:"time_format"`
}

// TransformConfig holds execution strategy configuration.
type TransformConfig struct {
	Strategy string `mapstructure:"strategy" yaml:"strategy"` // streaming, bulk, parallel
	Workers  int    `mapstructure:"workers" yaml:"workers"`   // 0 = GOMAXPROCS
	// MaxPayloadSize caps the in-memory payload for the bulk strategies.
	// Supports human-readable values like "512MB" or raw byte counts; 0 disables the cap.
	MaxPayloadSize ByteSize `mapstructure:"max_payload_size" yaml:"max_payload_size"`
}

// OutputConfig holds output file configuration.
type OutputConfig struct {
	Atomic   bool `mapstructure:"atomic" yaml:"atomic"`     // write to a temp file and rename on success
	Progress bool `mapstructure:"progress" yaml:"progress"` // render a progress bar on stderr
	Report   bool `mapstructure:"report" yaml:"report"`     // print timing and memory usage after each run
}

// Load reads configuration from file and environment variables.
// Environment variables take precedence over file configuration.
// Environment variables are prefixed with VIDXFORM_ and use underscores for nesting.
// Example: VIDXFORM_TRANSFORM_STRATEGY=parallel.
//
// With an empty configPath, .vidxform.yaml is searched for in the working
// directory, the home directory and /etc/vidxform; a missing file is not an
// error. An explicit configPath must exist.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	SetDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(".vidxform")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath("/etc/vidxform")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	cfg, err := FromViper(v)
	if err != nil {
		return nil, err
	}
	cfg.File = v.ConfigFileUsed()
	return cfg, nil
}

// FromViper decodes and validates the configuration held by v.
func FromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg, viper.DecodeHook(decodeHook())); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// decodeHook lets ByteSize fields accept "1GB" style strings.
func decodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
}

// SetDefaults configures default values for all configuration options.
// This should be called before reading the config file to ensure defaults are in place.
func SetDefaults(v *viper.Viper) {
	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.add_source", false)
	v.SetDefault("logging.time_format", time.RFC3339)

	// Transform defaults
	v.SetDefault("transform.strategy", defaultStrategy)
	v.SetDefault("transform.workers", 0)
	v.SetDefault("transform.max_payload_size", defaultMaxPayloadSize)

	// Output defaults
	v.SetDefault("output.atomic", true)
	v.SetDefault("output.progress", false)
	v.SetDefault("output.report", true)
}

func (c *Config) normalize() {
	c.Logging.Level = strings.ToLower(c.Logging.Level)
	c.Logging.Format = strings.ToLower(c.Logging.Format)
	if c.Logging.Level == "warning" {
		c.Logging.Level = "warn"
	}
	c.Transform.Strategy = strings.ToLower(strings.TrimSpace(c.Transform.Strategy))
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	// Logging validation
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[c.Logging.Format] {
		return fmt.Errorf("logging.format must be one of: json, text")
	}

	// Transform validation
	validStrategies := map[string]bool{"streaming": true, "bulk": true, "parallel": true}
	if !validStrategies[c.Transform.Strategy] {
		return fmt.Errorf("transform.strategy must be one of: streaming, bulk, parallel")
	}
	if c.Transform.Workers < 0 {
		return fmt.Errorf("transform.workers must not be negative")
	}
	if c.Transform.MaxPayloadSize < 0 {
		return fmt.Errorf("transform.max_payload_size must not be negative")
	}

	return nil
}

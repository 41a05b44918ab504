// Package config defines the parallels configuration, resolved through
// viper in the usual order: command-line flag, PARALLELS_* environment
// variable, config file, built-in default.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// DefaultBufferSize is the per-tab output buffer capacity in lines.
const DefaultBufferSize = 10000

// Config is the complete runtime configuration.
type Config struct {
	// BufferSize is the output buffer capacity in lines, per tab.
	BufferSize int `mapstructure:"buffer_size"`
	// RenderIntervalMs is the redraw timer interval in milliseconds.
	RenderIntervalMs int `mapstructure:"render_interval_ms"`
	// ShutdownTimeoutMs bounds the wait for subprocesses on quit.
	ShutdownTimeoutMs int `mapstructure:"shutdown_timeout_ms"`
	// LogFile enables debug logging to the given path. Empty disables.
	LogFile string `mapstructure:"log_file"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `mapstructure:"log_level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		BufferSize:        DefaultBufferSize,
		RenderIntervalMs:  16, // ~60 Hz
		ShutdownTimeoutMs: 2000,
		LogLevel:          "info",
	}
}

// SetDefaults registers the built-in values with viper so they apply even
// without a config file.
func SetDefaults() {
	defaults := Default()
	viper.SetDefault("buffer_size", defaults.BufferSize)
	viper.SetDefault("render_interval_ms", defaults.RenderIntervalMs)
	viper.SetDefault("shutdown_timeout_ms", defaults.ShutdownTimeoutMs)
	viper.SetDefault("log_file", defaults.LogFile)
	viper.SetDefault("log_level", defaults.LogLevel)
}

// Load resolves and validates the configuration.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}
	return &cfg, nil
}

// RenderInterval returns the redraw timer interval as a duration.
func (c *Config) RenderInterval() time.Duration {
	return time.Duration(c.RenderIntervalMs) * time.Millisecond
}

// ShutdownTimeout returns the quit-time process wait as a duration.
func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutMs) * time.Millisecond
}

// ConfigDir returns the user's config directory for parallels.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "parallels")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".parallels"
	}
	return filepath.Join(home, ".config", "parallels")
}

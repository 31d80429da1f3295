package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete stepwise configuration
type Config struct {
	Schedule ScheduleConfig `mapstructure:"schedule" yaml:"schedule" json:"schedule"`
	Output   OutputConfig   `mapstructure:"output" yaml:"output" json:"output"`
	Logging  LoggingConfig  `mapstructure:"logging" yaml:"logging" json:"logging"`
	Watch    WatchConfig    `mapstructure:"watch" yaml:"watch" json:"watch"`
}

// ScheduleConfig controls the simulated workforce
type ScheduleConfig struct {
	// Workers is the size of the worker pool (default: 5)
	Workers int `mapstructure:"workers" yaml:"workers" json:"workers"`
	// BaseDelay is the fixed number of ticks added to every step (default: 60)
	BaseDelay int `mapstructure:"base_delay" yaml:"base_delay" json:"base_delay"`
}

// OutputConfig controls how results are rendered
type OutputConfig struct {
	// Format is the report format for solve
	// Options: "text", "json", "yaml"
	Format string `mapstructure:"format" yaml:"format" json:"format"`
	// Color enables styled text output when stdout is a terminal
	Color bool `mapstructure:"color" yaml:"color" json:"color"`
	// Timeline includes the per-worker assignment table in text reports
	Timeline bool `mapstructure:"timeline" yaml:"timeline" json:"timeline"`
}

// LoggingConfig controls debug logging
type LoggingConfig struct {
	// Level is the minimum level written (default: "warn")
	// Options: "debug", "info", "warn", "error"
	Level string `mapstructure:"level" yaml:"level" json:"level"`
	// Dir is the directory holding stepwise.log; empty logs to stderr
	Dir string `mapstructure:"dir" yaml:"dir" json:"dir"`
	// MaxSizeMB is the log size that triggers rotation (default: 10)
	MaxSizeMB int `mapstructure:"max_size_mb" yaml:"max_size_mb" json:"max_size_mb"`
	// MaxBackups is the number of rotated logs kept (default: 3)
	MaxBackups int `mapstructure:"max_backups" yaml:"max_backups" json:"max_backups"`
}

// WatchConfig controls re-solving on input changes
type WatchConfig struct {
	// DebounceMs coalesces bursts of file events (default: 100)
	DebounceMs int `mapstructure:"debounce_ms" yaml:"debounce_ms" json:"debounce_ms"`
}

// Debounce returns the debounce window as a time.Duration
func (c *WatchConfig) Debounce() time.Duration {
	return time.Duration(c.DebounceMs) * time.Millisecond
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Schedule: ScheduleConfig{
			Workers:   5,
			BaseDelay: 60,
		},
		Output: OutputConfig{
			Format:   "text",
			Color:    true,
			Timeline: false,
		},
		Logging: LoggingConfig{
			Level:      "warn",
			Dir:        "", // Empty means stderr
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
		Watch: WatchConfig{
			DebounceMs: 100,
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	viper.SetDefault("schedule.workers", defaults.Schedule.Workers)
	viper.SetDefault("schedule.base_delay", defaults.Schedule.BaseDelay)

	viper.SetDefault("output.format", defaults.Output.Format)
	viper.SetDefault("output.color", defaults.Output.Color)
	viper.SetDefault("output.timeline", defaults.Output.Timeline)

	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.dir", defaults.Logging.Dir)
	viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)

	viper.SetDefault("watch.debounce_ms", defaults.Watch.DebounceMs)
}

// Load reads the configuration from viper into a Config struct and validates it
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

// Get returns the current configuration, falling back to defaults when the
// loaded configuration is invalid
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// ConfigDir returns the directory holding the config file,
// $XDG_CONFIG_HOME/stepwise or ~/.config/stepwise
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "stepwise")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".stepwise"
	}
	return filepath.Join(home, ".config", "stepwise")
}

// ConfigFile returns the path of the default config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// Package config provides CLI commands for managing stepwise configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	appconfig "github.com/Iron-Ham/stepwise/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or modify stepwise configuration",
	Long: `View or modify stepwise configuration.

Use 'config show' to display the effective configuration.
Use subcommands to modify settings or create a config file.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the user's config file.

Keys use dot notation, e.g.:
  stepwise config set schedule.workers 2
  stepwise config set output.format json

Valid keys:
  schedule.workers      - Number of workers in the team
  schedule.base_delay   - Ticks added to every step's duration
  output.format         - Report format: text, json, yaml
  output.color          - Styled text on terminals (true/false)
  output.timeline       - Include the worker timeline (true/false)
  logging.level         - Log level: debug, info, warn, error
  logging.dir           - Directory for stepwise.log (empty for stderr)
  logging.max_size_mb   - Log size that triggers rotation
  logging.max_backups   - Rotated logs to keep
  watch.debounce_ms     - Settle window for --watch in milliseconds`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long:  `Create a default config file at ~/.config/stepwise/config.yaml with all available options.`,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	RunE:  runConfigPath,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
}

// Register adds all config-related commands to the given parent command.
func Register(parent *cobra.Command) {
	parent.AddCommand(configCmd)
}

// keyKinds lists every settable key and how its value is checked.
var keyKinds = map[string]string{
	"schedule.workers":    "int",
	"schedule.base_delay": "int",
	"output.format":       "format",
	"output.color":        "bool",
	"output.timeline":     "bool",
	"logging.level":       "level",
	"logging.dir":         "string",
	"logging.max_size_mb": "int",
	"logging.max_backups": "int",
	"watch.debounce_ms":   "int",
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := appconfig.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	out := cmd.OutOrStdout()
	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "# Config file: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintln(out, "# Config file: (none - using defaults)")
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}
	_, err = out.Write(data)
	return err
}

// parseValue checks value against the kind of key and converts it.
func parseValue(key, value string) (any, error) {
	kind, ok := keyKinds[key]
	if !ok {
		return nil, fmt.Errorf("unknown configuration key: %s\nRun 'stepwise config set --help' to see valid keys", key)
	}

	switch kind {
	case "format":
		if !slices.Contains(appconfig.ValidOutputFormats(), value) {
			return nil, fmt.Errorf("invalid value for %s: %s\nValid options: %s",
				key, value, strings.Join(appconfig.ValidOutputFormats(), ", "))
		}
		return value, nil
	case "level":
		if !slices.Contains(appconfig.ValidLogLevels(), value) {
			return nil, fmt.Errorf("invalid value for %s: %s\nValid options: %s",
				key, value, strings.Join(appconfig.ValidLogLevels(), ", "))
		}
		return value, nil
	case "bool":
		if value != "true" && value != "false" {
			return nil, fmt.Errorf("invalid value for %s: expected true or false", key)
		}
		return value == "true", nil
	case "int":
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: expected integer", key)
		}
		if n < 0 {
			return nil, fmt.Errorf("invalid value for %s: must be non-negative", key)
		}
		return n, nil
	default:
		return value, nil
	}
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	typedValue, err := parseValue(key, value)
	if err != nil {
		return err
	}

	configFile := targetFile()
	if err := os.MkdirAll(filepath.Dir(configFile), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	viper.Set(key, typedValue)
	if errs := validateViper(); errs != nil {
		return errs
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Set %s = %v\n", key, typedValue)
	fmt.Fprintf(out, "Config saved to %s\n", configFile)
	return nil
}

// validateViper rejects values that are well-typed but out of range, such
// as zero workers.
func validateViper() error {
	if _, err := appconfig.Load(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// targetFile is the file config set writes to: the active config file if
// one was loaded, else the default path.
func targetFile() string {
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}
	return appconfig.ConfigFile()
}

const defaultConfigContent = `# Stepwise Configuration

# Team simulation
schedule:
  # Number of workers sharing the steps
  workers: 5
  # Ticks added to every step on top of its letter duration (A=1 ... Z=26)
  base_delay: 60

# Report rendering
output:
  # Options: text, json, yaml
  format: text
  # Styled text when writing to a terminal (NO_COLOR also disables it)
  color: true
  # Include the per-worker assignment table
  timeline: false

# Debug logging
logging:
  # Options: debug, info, warn, error
  level: warn
  # Directory for stepwise.log; empty writes to stderr
  dir: ""
  # Rotate stepwise.log once it reaches this size
  max_size_mb: 10
  # Rotated files to keep
  max_backups: 3

# solve --watch
watch:
  # Wait this long for a burst of file events to settle
  debounce_ms: 100
`

func runConfigInit(cmd *cobra.Command, args []string) error {
	configFile := appconfig.ConfigFile()

	// Check if config file already exists
	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists at %s\nUse 'stepwise config set' to modify values", configFile)
	}

	if err := os.MkdirAll(appconfig.ConfigDir(), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(configFile, []byte(defaultConfigContent), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created config file at %s\n", configFile)
	fmt.Fprintln(out, "Edit this file to customize stepwise's behavior.")
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "Active config: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintf(out, "Default path: %s (not created)\n", appconfig.ConfigFile())
	}

	fmt.Fprintln(out, "\nSearch paths:")
	fmt.Fprintf(out, "  1. %s\n", appconfig.ConfigFile())
	fmt.Fprintln(out, "  2. ./config.yaml (current directory)")
	fmt.Fprintln(out, "\nEnvironment variables: STEPWISE_* (e.g., STEPWISE_SCHEDULE_WORKERS)")
	return nil
}

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	configcmd "github.com/Iron-Ham/stepwise/internal/cmd/config"
	"github.com/Iron-Ham/stepwise/internal/config"
	steperrors "github.com/Iron-Ham/stepwise/internal/errors"
	"github.com/Iron-Ham/stepwise/internal/logging"
	"github.com/Iron-Ham/stepwise/internal/report"
)

var rootCmd = &cobra.Command{
	Use:   "stepwise",
	Short: "Schedule steps that must finish in dependency order",
	Long: `Stepwise reads precedence records of the form

  Step C must be finished before step A can begin.

and answers two questions about them: the order a single worker completes
the steps in, and how many ticks a team of workers needs to finish them all.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: persistentPreRun,
}

var noColor bool

// globalFlags maps viper keys to the root's persistent flags.
var globalFlags = map[string]string{
	"config":        "config",
	"logging.level": "log-level",
	"logging.dir":   "log-dir",
}

// Execute runs the root command
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with ctx and prints any error that
// the command has not already reported.
func ExecuteContext(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if err == nil || isSilent(err) {
		return err
	}

	fmt.Fprintln(os.Stderr, "Error:", err)
	if steperrors.GetSeverity(err) == steperrors.SeverityWarning {
		fmt.Fprintln(os.Stderr, "Run 'stepwise validate <file>' for a line-by-line check of an input.")
	}
	return err
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/stepwise/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-dir", "", "write logs to stepwise.log in this directory instead of stderr")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable styled output")

	rootCmd.AddCommand(orderCmd)
	rootCmd.AddCommand(timeCmd)
	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(validateCmd)
	configcmd.Register(rootCmd)
}

func persistentPreRun(cmd *cobra.Command, args []string) error {
	if err := bindFlags(cmd.Root().PersistentFlags(), globalFlags); err != nil {
		return err
	}
	initConfig()
	return nil
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("STEPWISE")
	// Replace dots with underscores for nested keys in env vars
	// e.g., STEPWISE_SCHEDULE_BASE_DELAY for schedule.base_delay
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}

// bindFlags binds each named flag in flags to its viper key. Commands bind
// their own flags when they run, so two commands may share a key.
func bindFlags(flags *pflag.FlagSet, keys map[string]string) error {
	for key, name := range keys {
		if err := viper.BindPFlag(key, flags.Lookup(name)); err != nil {
			return fmt.Errorf("failed to bind --%s: %w", name, err)
		}
	}
	return nil
}

// setup loads the effective configuration and opens the logger it
// describes. The caller must close the logger.
func setup() (*config.Config, *logging.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := logging.NewLoggerWithRotation(cfg.Logging.Dir, cfg.Logging.Level, logging.RotationConfig{
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
	})
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

// colorFor reports whether styled text should be written to w.
func colorFor(w io.Writer, want bool) bool {
	f, ok := w.(*os.File)
	if !ok || noColor {
		return false
	}
	return report.ColorEnabled(f, want)
}

// silentError signals that a command failed but its output already says
// why. Used to set exit code 1 without printing a duplicate error message.
type silentError struct{}

func (e *silentError) Error() string {
	return "validation failed"
}

func isSilent(err error) bool {
	var silent *silentError
	return errors.As(err, &silent)
}

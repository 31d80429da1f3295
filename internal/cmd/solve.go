package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/stepwise/internal/config"
	steperrors "github.com/Iron-Ham/stepwise/internal/errors"
	"github.com/Iron-Ham/stepwise/internal/logging"
	"github.com/Iron-Ham/stepwise/internal/precedence"
	"github.com/Iron-Ham/stepwise/internal/report"
	"github.com/Iron-Ham/stepwise/internal/solver"
	"github.com/Iron-Ham/stepwise/internal/watch"
)

var solveCmd = &cobra.Command{
	Use:   "solve <file>...",
	Short: "Compute the order and the team time for one or more inputs",
	Long: `Compute both answers for each input: the single-worker order and the
number of ticks a team needs. Inputs are solved concurrently and reported in
the order given.

The exit code indicates the result:
  0 - Every input was solved
  1 - At least one input could not be parsed or scheduled

Examples:
  stepwise solve input.txt
  stepwise solve --format json a.txt b.txt
  stepwise solve --workers 2 --delay 0 --timeline input.txt
  stepwise solve --watch input.txt`,
	Args: cobra.MinimumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if err := bindFlags(cmd.Flags(), scheduleFlags); err != nil {
			return err
		}
		return bindFlags(cmd.Flags(), outputFlags)
	},
	RunE: runSolve,
}

// outputFlags maps viper keys to solve's rendering flags.
var outputFlags = map[string]string{
	"output.format":   "format",
	"output.timeline": "timeline",
}

var (
	solveWatch    bool
	solveParallel int
)

func init() {
	addScheduleFlags(solveCmd)
	solveCmd.Flags().StringP("format", "f", string(report.FormatText), "Output format: text, json, yaml")
	solveCmd.Flags().Bool("timeline", false, "Include which worker ran each step")
	solveCmd.Flags().BoolVar(&solveWatch, "watch", false, "Re-solve inputs whenever they change")
	solveCmd.Flags().IntVar(&solveParallel, "parallel", 0, "Maximum inputs solved at once (0 = GOMAXPROCS)")
}

func runSolve(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Close() }()

	format, err := report.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	opts := solver.Options{
		Workers:     cfg.Schedule.Workers,
		BaseDelay:   cfg.Schedule.BaseDelay,
		Logger:      logger,
		MaxParallel: solveParallel,
	}
	renderOpts := report.Options{
		Format:   format,
		Color:    colorFor(out, cfg.Output.Color),
		Timeline: cfg.Output.Timeline,
	}

	if solveWatch {
		return watchAndSolve(cmd.Context(), out, args, cfg, logger, opts, renderOpts)
	}

	reports, _ := solver.SolveFiles(cmd.Context(), args, opts)
	if err := report.Write(out, reports, renderOpts); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	if slices.ContainsFunc(reports, (*report.Report).Failed) {
		return &silentError{}
	}
	return nil
}

// watchAndSolve solves every input once, then again for each batch of
// changed inputs until ctx is canceled.
func watchAndSolve(ctx context.Context, out io.Writer, paths []string, cfg *config.Config,
	logger *logging.Logger, opts solver.Options, renderOpts report.Options) error {
	if slices.Contains(paths, precedence.StdinPath) {
		return steperrors.NewValidationError("cannot watch stdin").
			WithField("watch").
			WithValue(precedence.StdinPath)
	}

	w, err := watch.New(
		watch.WithDebounce(cfg.Watch.Debounce()),
		watch.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	defer func() { _ = w.Close() }()

	for _, path := range paths {
		if err := w.Add(path); err != nil {
			return err
		}
	}

	solveAndWrite := func(changed []string) {
		reports, _ := solver.SolveFiles(ctx, changed, opts)
		if err := report.Write(out, reports, renderOpts); err != nil {
			logger.Error("failed to write report", "error", err.Error())
		}
	}

	solveAndWrite(paths)
	err = w.Run(ctx, solveAndWrite)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

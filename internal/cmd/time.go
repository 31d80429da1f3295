package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/stepwise/internal/precedence"
	"github.com/Iron-Ham/stepwise/internal/report"
	"github.com/Iron-Ham/stepwise/internal/schedule"
	"github.com/Iron-Ham/stepwise/internal/tracker"
)

var timeCmd = &cobra.Command{
	Use:   "time <file>",
	Short: "Print how many ticks a team needs to finish every step",
	Long: `Print how many ticks a team needs to finish every step.

Each step takes its letter position (A=1 ... Z=26) plus the base delay.
Idle workers pick up ready steps in alphabetical order every tick.

Examples:
  stepwise time input.txt
  stepwise time --workers 2 --delay 0 input.txt`,
	Args:    cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error { return bindFlags(cmd.Flags(), scheduleFlags) },
	RunE:    runTime,
}

// scheduleFlags maps viper keys to the flags time and solve share.
var scheduleFlags = map[string]string{
	"schedule.workers":    "workers",
	"schedule.base_delay": "delay",
}

var timeTimeline bool

func init() {
	addScheduleFlags(timeCmd)
	timeCmd.Flags().BoolVar(&timeTimeline, "timeline", false, "Also print which worker ran each step")
}

func addScheduleFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("workers", "w", schedule.DefaultWorkers, "Number of workers")
	cmd.Flags().IntP("delay", "d", schedule.DefaultBaseDelay, "Ticks added to every step")
}

func runTime(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Close() }()

	set, err := precedence.ReadFile(args[0])
	if err != nil {
		return err
	}

	team := schedule.NewTeam(
		schedule.WithWorkers(cfg.Schedule.Workers),
		schedule.WithBaseDelay(cfg.Schedule.BaseDelay),
		schedule.WithLogger(logger.WithInput(args[0])),
	)
	result, err := team.Run(cmd.Context(), tracker.New(set))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, result.Ticks)
	if timeTimeline && len(result.Assignments) > 0 {
		table := report.Timeline(&report.Report{Timeline: result.Assignments})
		if !colorFor(out, cfg.Output.Color) {
			table = report.Plain(table)
		}
		fmt.Fprintln(out, table)
	}
	return nil
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/stepwise/internal/precedence"
	"github.com/Iron-Ham/stepwise/internal/schedule"
)

var orderCmd = &cobra.Command{
	Use:   "order <file>",
	Short: "Print the order a single worker completes the steps in",
	Long: `Print the order a single worker completes the steps in.

Whenever several steps are ready, the alphabetically first one goes next.
Use "-" to read the records from stdin.

Examples:
  stepwise order input.txt
  cat input.txt | stepwise order -`,
	Args: cobra.ExactArgs(1),
	RunE: runOrder,
}

func runOrder(cmd *cobra.Command, args []string) error {
	_, logger, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Close() }()

	set, err := precedence.ReadFile(args[0])
	if err != nil {
		return err
	}

	order, err := schedule.OrderString(set)
	if err != nil {
		logger.WithInput(args[0]).Warn("order incomplete", "order", order, "error", err.Error())
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), order)
	return nil
}

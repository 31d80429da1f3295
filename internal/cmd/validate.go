package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	steperrors "github.com/Iron-Ham/stepwise/internal/errors"
	"github.com/Iron-Ham/stepwise/internal/precedence"
	"github.com/Iron-Ham/stepwise/internal/schedule"
	"github.com/Iron-Ham/stepwise/internal/step"
	"github.com/Iron-Ham/stepwise/internal/tracker"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check an input for malformed records and dependency cycles",
	Long: `Check an input for malformed records and dependency cycles.

This command checks:
  - Every line is a well-formed precedence record
  - Every step is a single letter A-Z
  - The requirements can all be satisfied (no cycles)

The exit code indicates the result:
  0 - Input is valid
  1 - Input has errors or could not be read

Examples:
  stepwise validate input.txt
  stepwise validate --json input.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

var validateJSON bool

func init() {
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "Output validation result as JSON")
}

// ValidationOutput represents the JSON output format for validation results.
type ValidationOutput struct {
	Valid        bool     `json:"valid"`
	FilePath     string   `json:"file_path"`
	Steps        int      `json:"steps"`
	Requirements int      `json:"requirements"`
	Order        string   `json:"order,omitempty"`
	Cycle        []string `json:"cycle,omitempty"`
	Stranded     []string `json:"stranded,omitempty"`
	Line         int      `json:"line,omitempty"`
	ParseError   string   `json:"parse_error,omitempty"`
}

// validateInput reads and schedules path, describing every problem found.
func validateInput(path string) ValidationOutput {
	output := ValidationOutput{FilePath: path}

	set, err := precedence.ReadFile(path)
	if err != nil {
		var parseErr *steperrors.ParseError
		if errors.As(err, &parseErr) {
			output.Line = parseErr.Line
		}
		output.ParseError = err.Error()
		return output
	}
	output.Steps = len(set.Universe())
	output.Requirements = set.Len()

	order, err := schedule.NewSequence(tracker.New(set)).Order()
	output.Order = step.Join(order)
	if err != nil {
		var schedErr *steperrors.ScheduleError
		if errors.As(err, &schedErr) {
			output.Cycle = schedErr.Cycle
			output.Stranded = schedErr.Stranded
		}
		return output
	}

	output.Valid = true
	return output
}

func runValidate(cmd *cobra.Command, args []string) error {
	output := validateInput(args[0])
	out := cmd.OutOrStdout()

	if validateJSON {
		return outputJSON(out, output)
	}
	return outputHuman(out, output)
}

// outputJSON marshals and prints the validation output as formatted JSON.
// Returns a silentError if validation failed to signal exit code 1.
func outputJSON(w io.Writer, output ValidationOutput) error {
	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		// Fallback: output a minimal valid JSON error response
		fmt.Fprintf(w, "{\"valid\": false, \"file_path\": %q, \"parse_error\": %q}\n",
			output.FilePath, "internal error: failed to marshal output: "+err.Error())
		return &silentError{}
	}
	fmt.Fprintln(w, string(data))

	if !output.Valid {
		return &silentError{}
	}
	return nil
}

// outputHuman prints validation results in a human-readable format.
func outputHuman(w io.Writer, output ValidationOutput) error {
	fmt.Fprintf(w, "Validating: %s\n", output.FilePath)
	fmt.Fprintln(w)

	if output.ParseError != "" {
		fmt.Fprintln(w, "Status: INVALID")
		fmt.Fprintf(w, "  %s\n", output.ParseError)
		return &silentError{}
	}

	fmt.Fprintf(w, "  Steps: %d\n", output.Steps)
	fmt.Fprintf(w, "  Requirements: %d\n", output.Requirements)
	fmt.Fprintln(w)

	if output.Valid {
		fmt.Fprintln(w, "Status: VALID")
		fmt.Fprintf(w, "  Order: %s\n", output.Order)
		return nil
	}

	fmt.Fprintln(w, "Status: INVALID")
	if len(output.Cycle) > 0 {
		fmt.Fprintf(w, "  Cycle: %s\n", strings.Join(output.Cycle, " -> "))
	}
	if len(output.Stranded) > 0 {
		fmt.Fprintf(w, "  Never ready: %s\n", strings.Join(output.Stranded, ", "))
	}
	return &silentError{}
}

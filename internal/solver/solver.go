// Package solver runs both schedulers over a precedence set and collects
// the results into a report.
package solver

import (
	"context"
	"runtime"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc/iter"

	"github.com/Iron-Ham/stepwise/internal/errors"
	"github.com/Iron-Ham/stepwise/internal/logging"
	"github.com/Iron-Ham/stepwise/internal/precedence"
	"github.com/Iron-Ham/stepwise/internal/report"
	"github.com/Iron-Ham/stepwise/internal/schedule"
	"github.com/Iron-Ham/stepwise/internal/step"
	"github.com/Iron-Ham/stepwise/internal/tracker"
)

// Options configures a solve.
type Options struct {
	Workers   int
	BaseDelay int
	Durations step.DurationPolicy
	Logger    *logging.Logger

	// MaxParallel bounds concurrent solves in SolveFiles. Zero means
	// GOMAXPROCS.
	MaxParallel int
}

func (o Options) logger() *logging.Logger {
	if o.Logger == nil {
		return logging.NopLogger()
	}
	return o.Logger
}

// Solve computes the single-worker order and the team completion time for
// set. Each scheduler gets its own tracker.
func Solve(ctx context.Context, input string, set *precedence.Set, opts Options) (*report.Report, error) {
	runID := uuid.NewString()
	logger := opts.logger().WithRun(runID).WithInput(input)

	team := schedule.NewTeam(
		schedule.WithWorkers(opts.Workers),
		schedule.WithBaseDelay(opts.BaseDelay),
		schedule.WithDurations(opts.Durations),
		schedule.WithLogger(logger),
	)

	rep := &report.Report{
		Input:        input,
		RunID:        runID,
		Steps:        len(set.Universe()),
		Requirements: set.Len(),
		Workers:      team.Size(),
		BaseDelay:    team.BaseDelay(),
	}

	order, err := schedule.NewSequence(tracker.New(set)).Order()
	rep.Order = step.Join(order)
	if err != nil {
		logger.WithScheduler(schedule.SchedulerSequence).Warn("sequence incomplete",
			"order", rep.Order, "error", err.Error())
		return rep, err
	}

	result, err := team.Run(ctx, tracker.New(set))
	if err != nil {
		return rep, err
	}
	rep.Ticks = result.Ticks
	rep.Timeline = result.Assignments

	logger.Info("solved", "order", rep.Order, "ticks", rep.Ticks)
	return rep, nil
}

// SolveFile reads the requirements at path ("-" for stdin) and solves them.
// The returned report is never nil; on failure its Error field is set.
func SolveFile(ctx context.Context, path string, opts Options) (*report.Report, error) {
	set, err := precedence.ReadFile(path)
	if err != nil {
		return &report.Report{Input: path, Error: err.Error()}, err
	}

	rep, err := Solve(ctx, path, set, opts)
	if err != nil {
		rep.Error = err.Error()
		return rep, errors.Wrapf(err, "%s", path)
	}
	return rep, nil
}

// SolveFiles solves every path concurrently. Reports keep the order of
// paths; failures are recorded on their report and joined into the returned
// error.
func SolveFiles(ctx context.Context, paths []string, opts Options) ([]*report.Report, error) {
	workers := opts.MaxParallel
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	mapper := iter.Mapper[string, *report.Report]{MaxGoroutines: workers}
	return mapper.MapErr(paths, func(path *string) (*report.Report, error) {
		return SolveFile(ctx, *path, opts)
	})
}

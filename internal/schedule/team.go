package schedule

import (
	"context"

	"github.com/Iron-Ham/stepwise/internal/errors"
	"github.com/Iron-Ham/stepwise/internal/logging"
	"github.com/Iron-Ham/stepwise/internal/step"
	"github.com/Iron-Ham/stepwise/internal/tracker"
)

// Team simulates a fixed pool of workers on a discrete clock.
// A Team may be reused; its workers are reset at the start of every Run.
type Team struct {
	size      int
	baseDelay int
	durations step.DurationPolicy
	logger    *logging.Logger
	observer  Observer

	workers []worker
}

// NewTeam creates a Team with the given options.
// Unset options use defaults: five workers, a base delay of 60 and
// step.LetterDurations.
func NewTeam(opts ...Option) *Team {
	t := &Team{
		size:      DefaultWorkers,
		baseDelay: DefaultBaseDelay,
		durations: step.LetterDurations,
		logger:    logging.NopLogger(),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.workers = make([]worker, t.size)
	for i := range t.workers {
		t.workers[i].id = i
	}
	return t
}

// Size returns the number of workers.
func (t *Team) Size() int {
	return t.size
}

// BaseDelay returns the fixed cost added to every step.
func (t *Team) BaseDelay() int {
	return t.baseDelay
}

// Run drives tr to completion and returns the clock value at which the last
// step finished.
//
// Each tick first advances every busy worker, finishing steps whose time
// ran out. If the tracker is then complete the run ends. Otherwise idle
// workers claim doable steps in ascending order, and the clock advances.
// A tick that ends with every worker idle and the tracker incomplete can
// never make progress, so Run fails with errors.ErrCyclicDependency.
func (t *Team) Run(ctx context.Context, tr *tracker.Tracker) (*Result, error) {
	logger := t.logger.WithScheduler(SchedulerTeam)
	for i := range t.workers {
		t.workers[i].reset()
	}

	result := &Result{Workers: t.size, BaseDelay: t.baseDelay}
	open := make(map[step.Step]int)

	for clock := 0; ; clock++ {
		if err := ctx.Err(); err != nil {
			return nil, errors.NewScheduleError("run canceled", errors.Join(errors.ErrCanceled, err)).
				WithScheduler(SchedulerTeam).
				WithTick(clock)
		}

		for i := range t.workers {
			w := &t.workers[i]
			done, ok := w.work()
			if !ok {
				continue
			}
			unblocked := tr.Finish(done)
			result.Assignments[open[done]].End = clock
			delete(open, done)

			logger.Debug("step finished",
				"tick", clock,
				"worker", w.id,
				"step", done.String(),
				"unblocked", step.Join(unblocked))
			t.emit(Event{Kind: EventFinished, Tick: clock, Worker: w.id, Step: done})
		}

		if tr.IsComplete() {
			result.Ticks = clock
			logger.Info("run complete",
				"ticks", clock,
				"workers", t.size,
				"base_delay", t.baseDelay,
				"steps", len(result.Assignments))
			return result, nil
		}

		if err := t.assign(clock, tr, result, open, logger); err != nil {
			return nil, err
		}

		if !t.anyBusy() {
			err := stuckError(SchedulerTeam, tr).WithTick(clock)
			logger.Warn("run stuck", "tick", clock, "error", err.Error())
			return nil, err
		}
	}
}

// assign hands doable steps to idle workers, smallest step to lowest
// worker ID, until either runs out.
func (t *Team) assign(clock int, tr *tracker.Tracker, result *Result, open map[step.Step]int, logger *logging.Logger) error {
	for _, s := range tr.Doable() {
		w := t.firstIdle()
		if w == nil {
			return nil
		}

		d, err := t.durations.Duration(s)
		if err != nil {
			return errors.NewScheduleError("cannot determine step duration", err).
				WithScheduler(SchedulerTeam).
				WithTick(clock).
				WithStep(s.String())
		}
		ticks := t.baseDelay + d
		if ticks < 1 {
			return errors.NewScheduleError("step duration must be positive", errors.ErrInvalidInput).
				WithScheduler(SchedulerTeam).
				WithTick(clock).
				WithStep(s.String())
		}

		w.assign(s, ticks)
		tr.Begin(s)
		open[s] = len(result.Assignments)
		result.Assignments = append(result.Assignments, Assignment{
			Step:   s,
			Worker: w.id,
			Start:  clock,
		})

		logger.Debug("step assigned",
			"tick", clock,
			"worker", w.id,
			"step", s.String(),
			"ticks", ticks)
		t.emit(Event{Kind: EventAssigned, Tick: clock, Worker: w.id, Step: s})
	}
	return nil
}

func (t *Team) firstIdle() *worker {
	for i := range t.workers {
		if t.workers[i].idle() {
			return &t.workers[i]
		}
	}
	return nil
}

func (t *Team) anyBusy() bool {
	for i := range t.workers {
		if !t.workers[i].idle() {
			return true
		}
	}
	return false
}

func (t *Team) emit(ev Event) {
	if t.observer != nil {
		t.observer(ev)
	}
}

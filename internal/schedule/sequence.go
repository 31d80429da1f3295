package schedule

import (
	"iter"

	"github.com/Iron-Ham/stepwise/internal/errors"
	"github.com/Iron-Ham/stepwise/internal/precedence"
	"github.com/Iron-Ham/stepwise/internal/step"
	"github.com/Iron-Ham/stepwise/internal/tracker"
)

// Sequence completes one step at a time, always the smallest doable one.
// A Sequence consumes its tracker and cannot be restarted.
type Sequence struct {
	tracker *tracker.Tracker
}

// NewSequence creates a Sequence over tr.
func NewSequence(tr *tracker.Tracker) *Sequence {
	return &Sequence{tracker: tr}
}

// NextReady begins and finishes the smallest doable step and returns it.
// It returns false once no step is doable.
func (s *Sequence) NextReady() (step.Step, bool) {
	doable := s.tracker.Doable()
	if len(doable) == 0 {
		return 0, false
	}
	next := doable[0]
	s.tracker.Begin(next)
	s.tracker.Finish(next)
	return next, true
}

// Steps yields each step as NextReady produces it.
func (s *Sequence) Steps() iter.Seq[step.Step] {
	return func(yield func(step.Step) bool) {
		for {
			next, ok := s.NextReady()
			if !ok || !yield(next) {
				return
			}
		}
	}
}

// Order drains the sequence. If steps remain unfinished when nothing more is
// doable, the partial order is returned together with a *errors.ScheduleError
// that wraps errors.ErrCyclicDependency and lists the stranded steps.
func (s *Sequence) Order() ([]step.Step, error) {
	var order []step.Step
	for next := range s.Steps() {
		order = append(order, next)
	}
	if !s.tracker.IsComplete() {
		return order, stuckError(SchedulerSequence, s.tracker)
	}
	return order, nil
}

// OrderString returns the single-worker order for set as a string of
// letters.
func OrderString(set *precedence.Set) (string, error) {
	order, err := NewSequence(tracker.New(set)).Order()
	return step.Join(order), err
}

// stuckError describes a tracker that can make no further progress.
func stuckError(scheduler string, tr *tracker.Tracker) *errors.ScheduleError {
	stranded := append(tr.Pending(), tr.InProgress()...)
	step.Sort(stranded)

	err := errors.NewScheduleError("no step can start", errors.ErrCyclicDependency).
		WithScheduler(scheduler).
		WithStranded(step.Strings(stranded)...)
	if cycle := precedence.FindCycle(tr.Set()); cycle != nil {
		err = err.WithCycle(step.Strings(cycle)...)
	}
	return err
}

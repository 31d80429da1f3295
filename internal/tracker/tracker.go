package tracker

import (
	"github.com/Iron-Ham/stepwise/internal/precedence"
	"github.com/Iron-Ham/stepwise/internal/step"
)

// Tracker holds the pending and done sets for one run over a precedence set.
type Tracker struct {
	set      *precedence.Set
	universe []step.Step
	known    map[step.Step]struct{}
	pending  map[step.Step]struct{}
	done     map[step.Step]struct{}
}

// New creates a Tracker where every step named by set is pending.
func New(set *precedence.Set) *Tracker {
	universe := set.Universe()
	t := &Tracker{
		set:      set,
		universe: universe,
		known:    make(map[step.Step]struct{}, len(universe)),
		pending:  make(map[step.Step]struct{}, len(universe)),
		done:     make(map[step.Step]struct{}, len(universe)),
	}
	for _, s := range universe {
		t.known[s] = struct{}{}
		t.pending[s] = struct{}{}
	}
	return t
}

// Set returns the precedence set the tracker was built from.
func (t *Tracker) Set() *precedence.Set {
	return t.set
}

// Universe returns every step known to the tracker, ascending.
func (t *Tracker) Universe() []step.Step {
	out := make([]step.Step, len(t.universe))
	copy(out, t.universe)
	return out
}

// Contains reports whether s belongs to the tracker's universe.
func (t *Tracker) Contains(s step.Step) bool {
	_, ok := t.known[s]
	return ok
}

// IsDoable returns true if s is pending and all of its predecessors are done.
func (t *Tracker) IsDoable(s step.Step) bool {
	if _, ok := t.pending[s]; !ok {
		return false
	}
	for _, before := range t.set.Predecessors(s) {
		if _, ok := t.done[before]; !ok {
			return false
		}
	}
	return true
}

// Doable returns every doable step in ascending order.
func (t *Tracker) Doable() []step.Step {
	var out []step.Step
	for _, s := range t.universe {
		if t.IsDoable(s) {
			out = append(out, s)
		}
	}
	return out
}

// Begin moves s out of the pending set. Beginning a step twice, or a step
// outside the universe, has no effect. Begin does not check doability.
func (t *Tracker) Begin(s step.Step) {
	delete(t.pending, s)
}

// Finish marks s done and returns the steps that became doable as a
// result, ascending. Finishing a step twice, or a step outside the
// universe, has no effect and returns nil. Finish does not remove s from
// the pending set; a step finished without Begin keeps the tracker
// incomplete.
func (t *Tracker) Finish(s step.Step) []step.Step {
	if _, ok := t.done[s]; ok || !t.Contains(s) {
		return nil
	}
	t.done[s] = struct{}{}
	return t.unblockedBy(s)
}

// IsComplete returns true when no step is pending and every step in the
// universe is done.
func (t *Tracker) IsComplete() bool {
	return len(t.pending) == 0 && len(t.done) == len(t.universe)
}

// State returns the progress of s.
func (t *Tracker) State(s step.Step) State {
	if _, ok := t.done[s]; ok {
		return StateDone
	}
	if _, ok := t.pending[s]; ok {
		return StatePending
	}
	if t.Contains(s) {
		return StateInProgress
	}
	return StateUnknown
}

// Pending returns the steps that have not begun, ascending.
func (t *Tracker) Pending() []step.Step {
	return t.filter(StatePending)
}

// InProgress returns the steps that have begun but not finished, ascending.
func (t *Tracker) InProgress() []step.Step {
	return t.filter(StateInProgress)
}

// Done returns the finished steps, ascending.
func (t *Tracker) Done() []step.Step {
	return t.filter(StateDone)
}

// Status returns a snapshot of the current state counts.
func (t *Tracker) Status() Status {
	var s Status
	s.Total = len(t.universe)
	for _, st := range t.universe {
		switch t.State(st) {
		case StatePending:
			s.Pending++
		case StateInProgress:
			s.InProgress++
		case StateDone:
			s.Done++
		}
	}
	return s
}

func (t *Tracker) filter(state State) []step.Step {
	var out []step.Step
	for _, s := range t.universe {
		if t.State(s) == state {
			out = append(out, s)
		}
	}
	return out
}

// unblockedBy returns the steps that become doable now that s is done.
// A step is newly doable if s is one of its predecessors, all of its
// predecessors are done, and it is still pending.
func (t *Tracker) unblockedBy(s step.Step) []step.Step {
	var unblocked []step.Step
	for _, after := range t.set.Successors(s) {
		if t.IsDoable(after) {
			unblocked = append(unblocked, after)
		}
	}
	return unblocked
}

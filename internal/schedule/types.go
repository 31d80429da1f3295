package schedule

import "github.com/Iron-Ham/stepwise/internal/step"

// Scheduler names used in logs and errors.
const (
	SchedulerSequence = "sequence"
	SchedulerTeam     = "team"
)

// Assignment records one step's stay on a worker. The step was claimed when
// the clock read Start and finished when the clock read End.
type Assignment struct {
	Step   step.Step `json:"step" yaml:"step"`
	Worker int       `json:"worker" yaml:"worker"`
	Start  int       `json:"start" yaml:"start"`
	End    int       `json:"end" yaml:"end"`
}

// Duration returns the number of ticks the step occupied its worker.
func (a Assignment) Duration() int {
	return a.End - a.Start
}

// Result is the outcome of a completed Team run.
type Result struct {
	// Ticks is the clock value at which the last step finished.
	Ticks int `json:"ticks" yaml:"ticks"`

	// Workers is the size of the pool that produced the result.
	Workers int `json:"workers" yaml:"workers"`

	// BaseDelay is the fixed cost added to every step.
	BaseDelay int `json:"base_delay" yaml:"base_delay"`

	// Assignments lists every step in the order it was claimed.
	Assignments []Assignment `json:"assignments" yaml:"assignments"`
}

// EventKind identifies a transition reported to an Observer.
type EventKind string

const (
	// EventAssigned fires when an idle worker claims a step.
	EventAssigned EventKind = "assigned"

	// EventFinished fires when a worker's remaining time reaches zero.
	EventFinished EventKind = "finished"
)

// String returns the string representation of the event kind.
func (k EventKind) String() string {
	return string(k)
}

// Event describes a single worker transition during a Team run.
type Event struct {
	Kind   EventKind `json:"kind"`
	Tick   int       `json:"tick"`
	Worker int       `json:"worker"`
	Step   step.Step `json:"step"`
}

// Observer receives every Event of a Team run, in order, on the caller's
// goroutine.
type Observer func(Event)

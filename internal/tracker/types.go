package tracker

// State is the progress of a single step.
type State string

const (
	// StateUnknown is reported for steps outside the tracker's universe.
	StateUnknown State = "unknown"

	// StatePending indicates the step has not been started.
	StatePending State = "pending"

	// StateInProgress indicates the step was started but not finished.
	StateInProgress State = "in_progress"

	// StateDone indicates the step finished.
	StateDone State = "done"
)

// String returns the string representation of the state.
func (s State) String() string {
	return string(s)
}

// Status is a snapshot of the tracker's state counts.
type Status struct {
	Total      int `json:"total" yaml:"total"`
	Pending    int `json:"pending" yaml:"pending"`
	InProgress int `json:"in_progress" yaml:"in_progress"`
	Done       int `json:"done" yaml:"done"`
}

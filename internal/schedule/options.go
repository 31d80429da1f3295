package schedule

import (
	"github.com/Iron-Ham/stepwise/internal/logging"
	"github.com/Iron-Ham/stepwise/internal/step"
)

// Default team values.
const (
	DefaultWorkers   = 5
	DefaultBaseDelay = 60
)

// Option configures a Team.
type Option func(*Team)

// WithWorkers sets the size of the worker pool. Values below 1 are ignored.
func WithWorkers(n int) Option {
	return func(t *Team) {
		if n >= 1 {
			t.size = n
		}
	}
}

// WithBaseDelay sets the fixed number of ticks added to every step.
// Negative values are ignored.
func WithBaseDelay(d int) Option {
	return func(t *Team) {
		if d >= 0 {
			t.baseDelay = d
		}
	}
}

// WithDurations sets the policy for a step's intrinsic duration.
func WithDurations(policy step.DurationPolicy) Option {
	return func(t *Team) {
		if policy != nil {
			t.durations = policy
		}
	}
}

// WithLogger sets the logger for assignment and completion messages.
func WithLogger(logger *logging.Logger) Option {
	return func(t *Team) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithObserver registers a callback that receives every worker transition.
func WithObserver(fn Observer) Option {
	return func(t *Team) { t.observer = fn }
}

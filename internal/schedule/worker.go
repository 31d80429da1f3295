package schedule

import "github.com/Iron-Ham/stepwise/internal/step"

// worker is one member of a Team. A worker with no remaining time is idle.
type worker struct {
	id        int
	step      step.Step
	remaining int
}

func (w *worker) idle() bool {
	return w.remaining == 0
}

func (w *worker) assign(s step.Step, ticks int) {
	w.step = s
	w.remaining = ticks
}

// work advances the worker by one tick and returns the step it finished,
// if this tick finished one. Idle workers do nothing.
func (w *worker) work() (step.Step, bool) {
	switch w.remaining {
	case 0:
		return 0, false
	case 1:
		w.remaining = 0
		return w.step, true
	default:
		w.remaining--
		return 0, false
	}
}

func (w *worker) reset() {
	w.step = 0
	w.remaining = 0
}

package step

import (
	"fmt"

	"github.com/Iron-Ham/stepwise/internal/errors"
)

// DurationPolicy maps a step to the number of ticks of work it needs,
// excluding any fixed per-step delay added by the scheduler.
type DurationPolicy interface {
	Duration(s Step) (int, error)
}

// DurationFunc adapts a plain function to the DurationPolicy interface.
type DurationFunc func(s Step) (int, error)

// Duration calls f(s).
func (f DurationFunc) Duration(s Step) (int, error) {
	return f(s)
}

// letterTable holds the duration of every letter: A=1 through Z=26.
var letterTable = func() [AlphabetSize]int {
	var t [AlphabetSize]int
	for i := range t {
		t[i] = i + 1
	}
	return t
}()

// LetterDurations is the default policy: a step takes as many ticks as its
// position in the alphabet. Steps outside the alphabet are rejected with
// ErrUnsupportedStep.
var LetterDurations DurationPolicy = DurationFunc(letterDuration)

func letterDuration(s Step) (int, error) {
	if !s.Valid() {
		return 0, fmt.Errorf("%w: %q", errors.ErrUnsupportedStep, rune(s))
	}
	return letterTable[s-First], nil
}

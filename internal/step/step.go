// Package step defines the step identifier used throughout stepwise and the
// policies that map a step to its intrinsic work duration.
//
// A step is a single uppercase letter. Letters are totally ordered by their
// natural byte order, which is the tie-break rule for every scheduler.
package step

import (
	"fmt"
	"slices"

	"github.com/Iron-Ham/stepwise/internal/errors"
)

// Step identifies a unit of work.
type Step byte

// Bounds of the supported alphabet.
const (
	First Step = 'A'
	Last  Step = 'Z'
)

// AlphabetSize is the number of distinct steps.
const AlphabetSize = int(Last-First) + 1

// Valid reports whether s is inside the supported alphabet.
func (s Step) Valid() bool {
	return s >= First && s <= Last
}

// String returns the letter for s.
func (s Step) String() string {
	return string(rune(s))
}

// Parse converts a one-letter string into a Step.
func Parse(text string) (Step, error) {
	if len(text) != 1 {
		return 0, fmt.Errorf("%w: %q", errors.ErrUnsupportedStep, text)
	}
	s := Step(text[0])
	if !s.Valid() {
		return 0, fmt.Errorf("%w: %q", errors.ErrUnsupportedStep, text)
	}
	return s, nil
}

// Sort orders steps ascending in place.
func Sort(steps []Step) {
	slices.Sort(steps)
}

// Strings converts steps to their letters, preserving order.
func Strings(steps []Step) []string {
	out := make([]string, len(steps))
	for i, s := range steps {
		out[i] = s.String()
	}
	return out
}

// Join concatenates the letters of steps.
func Join(steps []Step) string {
	buf := make([]byte, len(steps))
	for i, s := range steps {
		buf[i] = byte(s)
	}
	return string(buf)
}

// MarshalText encodes s as its letter.
func (s Step) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %q", errors.ErrUnsupportedStep, rune(s))
	}
	return []byte{byte(s)}, nil
}

// UnmarshalText decodes a one-letter step.
func (s *Step) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

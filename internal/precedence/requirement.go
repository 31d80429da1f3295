// Package precedence holds the "must finish before" relation between steps
// and the parser for its textual record format.
package precedence

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Iron-Ham/stepwise/internal/errors"
	"github.com/Iron-Ham/stepwise/internal/step"
)

// Requirement states that Before must finish before After can begin.
type Requirement struct {
	Before step.Step `json:"before" yaml:"before"`
	After  step.Step `json:"after" yaml:"after"`
}

// recordPattern matches a single precedence record. Letters are captured
// loosely so out-of-alphabet identifiers get a precise error from step.Parse.
var recordPattern = regexp.MustCompile(`^Step (\S+) must be finished before step (\S+) can begin\.$`)

// New builds a Requirement.
func New(before, after step.Step) Requirement {
	return Requirement{Before: before, After: after}
}

// ParseRequirement parses one record of the form
// "Step X must be finished before step Y can begin.".
func ParseRequirement(line string) (Requirement, error) {
	text := strings.TrimSpace(line)
	m := recordPattern.FindStringSubmatch(text)
	if m == nil {
		return Requirement{}, errors.NewParseError(text)
	}

	before, err := step.Parse(m[1])
	if err != nil {
		return Requirement{}, errors.NewParseError(text).WithCause(err)
	}
	after, err := step.Parse(m[2])
	if err != nil {
		return Requirement{}, errors.NewParseError(text).WithCause(err)
	}
	return Requirement{Before: before, After: after}, nil
}

// String formats r as a canonical record line.
func (r Requirement) String() string {
	return fmt.Sprintf("Step %s must be finished before step %s can begin.", r.Before, r.After)
}

// less orders requirements by Before, then After.
func (r Requirement) less(o Requirement) bool {
	if r.Before != o.Before {
		return r.Before < o.Before
	}
	return r.After < o.After
}

package precedence

import (
	"slices"

	"github.com/Iron-Ham/stepwise/internal/step"
)

// Set is an unordered, de-duplicated collection of requirements.
// The zero value is not usable; create one with NewSet.
type Set struct {
	reqs  map[Requirement]struct{}
	preds map[step.Step][]step.Step // after -> befores, sorted
	steps map[step.Step]struct{}
}

// NewSet creates a Set holding the given requirements.
func NewSet(reqs ...Requirement) *Set {
	s := &Set{
		reqs:  make(map[Requirement]struct{}, len(reqs)),
		preds: make(map[step.Step][]step.Step),
		steps: make(map[step.Step]struct{}),
	}
	for _, r := range reqs {
		s.Add(r)
	}
	return s
}

// Add inserts r. Adding the same requirement twice has no effect.
func (s *Set) Add(r Requirement) {
	if _, ok := s.reqs[r]; ok {
		return
	}
	s.reqs[r] = struct{}{}
	s.steps[r.Before] = struct{}{}
	s.steps[r.After] = struct{}{}

	preds := append(s.preds[r.After], r.Before)
	step.Sort(preds)
	s.preds[r.After] = preds
}

// Len returns the number of distinct requirements.
func (s *Set) Len() int {
	return len(s.reqs)
}

// Contains reports whether r is in the set.
func (s *Set) Contains(r Requirement) bool {
	_, ok := s.reqs[r]
	return ok
}

// Requirements returns every requirement ordered by Before, then After.
func (s *Set) Requirements() []Requirement {
	out := make([]Requirement, 0, len(s.reqs))
	for r := range s.reqs {
		out = append(out, r)
	}
	slices.SortFunc(out, func(a, b Requirement) int {
		switch {
		case a.less(b):
			return -1
		case b.less(a):
			return 1
		default:
			return 0
		}
	})
	return out
}

// Universe returns every step named by any requirement, ascending.
func (s *Set) Universe() []step.Step {
	out := make([]step.Step, 0, len(s.steps))
	for st := range s.steps {
		out = append(out, st)
	}
	step.Sort(out)
	return out
}

// Predecessors returns the steps that must finish before st can begin,
// ascending. The returned slice must not be modified.
func (s *Set) Predecessors(st step.Step) []step.Step {
	return s.preds[st]
}

// Successors returns the steps that wait on st, ascending.
func (s *Set) Successors(st step.Step) []step.Step {
	var out []step.Step
	for r := range s.reqs {
		if r.Before == st {
			out = append(out, r.After)
		}
	}
	step.Sort(out)
	return out
}

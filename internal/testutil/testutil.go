// Package testutil provides testing utilities for stepwise tests.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pgregory.net/rapid"

	"github.com/Iron-Ham/stepwise/internal/precedence"
	"github.com/Iron-Ham/stepwise/internal/step"
)

// SampleInput is the seven-requirement example used across the test suite.
// Its single-worker order is CABDFE; two workers with no base delay finish
// it in 15 ticks.
const SampleInput = `Step C must be finished before step A can begin.
Step C must be finished before step F can begin.
Step A must be finished before step B can begin.
Step A must be finished before step D can begin.
Step B must be finished before step E can begin.
Step D must be finished before step E can begin.
Step F must be finished before step E can begin.
`

// SampleSet parses SampleInput.
func SampleSet(t testing.TB) *precedence.Set {
	t.Helper()
	return MustParse(t, SampleInput)
}

// MustParse parses input or fails the test.
func MustParse(t testing.TB, input string) *precedence.Set {
	t.Helper()

	set, err := precedence.ReadRequirements(strings.NewReader(input))
	if err != nil {
		t.Fatalf("failed to parse requirements: %v", err)
	}
	return set
}

// WriteInput writes content to name inside a fresh temporary directory and
// returns the full path. The directory is removed when the test completes.
func WriteInput(t testing.TB, name, content string) string {
	t.Helper()
	return WriteInputIn(t, t.TempDir(), name, content)
}

// WriteInputIn writes content to name inside dir and returns the full path.
func WriteInputIn(t testing.TB, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create directory for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write file %s: %v", name, err)
	}
	return path
}

// AcyclicSet generates precedence sets that are guaranteed to have no
// cycle. Steps are drawn as a random permutation of a prefix of the
// alphabet, and requirements only ever point forward in that permutation.
func AcyclicSet() *rapid.Generator[*precedence.Set] {
	return rapid.Custom(func(t *rapid.T) *precedence.Set {
		n := rapid.IntRange(2, 10).Draw(t, "steps")
		letters := make([]step.Step, n)
		for i := range letters {
			letters[i] = step.First + step.Step(i)
		}
		order := rapid.Permutation(letters).Draw(t, "order")

		set := precedence.NewSet()
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if rapid.Bool().Draw(t, "edge") {
					set.Add(precedence.New(order[i], order[j]))
				}
			}
		}
		return set
	})
}

// IsTopological reports whether order lists every step of set exactly once
// with each requirement's Before placed ahead of its After.
func IsTopological(set *precedence.Set, order []step.Step) bool {
	pos := make(map[step.Step]int, len(order))
	for i, s := range order {
		if _, dup := pos[s]; dup {
			return false
		}
		pos[s] = i
	}
	if len(pos) != len(set.Universe()) {
		return false
	}
	for _, r := range set.Requirements() {
		bi, okB := pos[r.Before]
		ai, okA := pos[r.After]
		if !okB || !okA || bi >= ai {
			return false
		}
	}
	return true
}

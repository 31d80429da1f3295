package solver

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	steperrors "github.com/Iron-Ham/stepwise/internal/errors"
	"github.com/Iron-Ham/stepwise/internal/logging"
	"github.com/Iron-Ham/stepwise/internal/schedule"
	"github.com/Iron-Ham/stepwise/internal/testutil"
)

const cyclicInput = `Step A must be finished before step B can begin.
Step B must be finished before step A can begin.
`

func TestSolve_Sample(t *testing.T) {
	rep, err := Solve(context.Background(), "sample", testutil.SampleSet(t), Options{Workers: 2, BaseDelay: 0})
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}

	if rep.Order != "CABDFE" {
		t.Errorf("Order = %q, want %q", rep.Order, "CABDFE")
	}
	if rep.Ticks != 15 {
		t.Errorf("Ticks = %d, want 15", rep.Ticks)
	}
	if rep.Steps != 6 || rep.Requirements != 7 {
		t.Errorf("Steps, Requirements = %d, %d; want 6, 7", rep.Steps, rep.Requirements)
	}
	if rep.RunID == "" {
		t.Error("RunID is empty")
	}
	if len(rep.Timeline) != 6 {
		t.Errorf("Timeline has %d assignments, want 6", len(rep.Timeline))
	}
}

func TestSolve_UniqueRunIDs(t *testing.T) {
	set := testutil.SampleSet(t)
	a, err := Solve(context.Background(), "a", set, Options{Workers: 2})
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	b, err := Solve(context.Background(), "b", set, Options{Workers: 2})
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	if a.RunID == b.RunID {
		t.Errorf("two solves share run ID %q", a.RunID)
	}
}

func TestSolve_Cycle(t *testing.T) {
	set := testutil.MustParse(t, cyclicInput)

	rep, err := Solve(context.Background(), "cycle", set, Options{Workers: 2})
	if !errors.Is(err, steperrors.ErrCyclicDependency) {
		t.Fatalf("Solve() error = %v, want ErrCyclicDependency", err)
	}
	if rep == nil {
		t.Fatal("Solve() returned nil report")
	}
	if rep.Order != "" || rep.Ticks != 0 {
		t.Errorf("Order, Ticks = %q, %d; want empty, 0", rep.Order, rep.Ticks)
	}
}

// A failed run still reports the workforce the team would have used.
func TestSolve_ReportsEffectiveWorkforce(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		opts      Options
		wantErr   bool
		wantSize  int
		wantDelay int
	}{
		{"cycle with unset workers", cyclicInput, Options{BaseDelay: -1}, true, schedule.DefaultWorkers, schedule.DefaultBaseDelay},
		{"sample with unset workers", testutil.SampleInput, Options{Workers: 0, BaseDelay: 0}, false, schedule.DefaultWorkers, 0},
		{"explicit", testutil.SampleInput, Options{Workers: 2, BaseDelay: 3}, false, 2, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rep, err := Solve(context.Background(), tt.name, testutil.MustParse(t, tt.input), tt.opts)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Solve() error = %v, wantErr %v", err, tt.wantErr)
			}
			if rep.Workers != tt.wantSize || rep.BaseDelay != tt.wantDelay {
				t.Errorf("Workers, BaseDelay = %d, %d; want %d, %d", rep.Workers, rep.BaseDelay, tt.wantSize, tt.wantDelay)
			}
		})
	}
}

func TestSolve_Logs(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewLoggerWithWriter(&buf, logging.LevelInfo)

	rep, err := Solve(context.Background(), "sample", testutil.SampleSet(t), Options{Workers: 2, Logger: logger})
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{`"msg":"solved"`, `"run_id":"` + rep.RunID + `"`, `"input":"sample"`} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %s:\n%s", want, out)
		}
	}
}

func TestSolveFile(t *testing.T) {
	path := testutil.WriteInput(t, "input.txt", testutil.SampleInput)

	rep, err := SolveFile(context.Background(), path, Options{Workers: 2})
	if err != nil {
		t.Fatalf("SolveFile() error = %v", err)
	}
	if rep.Input != path || rep.Failed() {
		t.Errorf("report = %+v, want a successful report for %s", rep, path)
	}
}

func TestSolveFile_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{
			name:    "malformed",
			path:    testutil.WriteInputIn(t, dir, "bad.txt", "Step A must finish before B.\n"),
			wantErr: steperrors.ErrMalformedRecord,
		},
		{
			name:    "cycle",
			path:    testutil.WriteInputIn(t, dir, "cycle.txt", cyclicInput),
			wantErr: steperrors.ErrCyclicDependency,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rep, err := SolveFile(context.Background(), tt.path, Options{Workers: 2})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("SolveFile() error = %v, want %v", err, tt.wantErr)
			}
			if rep == nil || !rep.Failed() {
				t.Fatalf("report = %+v, want a failed report", rep)
			}
			if rep.Input != tt.path {
				t.Errorf("Input = %q, want %q", rep.Input, tt.path)
			}
		})
	}
}

func TestSolveFile_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.txt")

	rep, err := SolveFile(context.Background(), path, Options{})
	if err == nil {
		t.Fatal("SolveFile() expected error for missing file")
	}
	if !rep.Failed() {
		t.Error("report not marked failed")
	}
}

func TestSolveFiles_KeepsOrder(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		testutil.WriteInputIn(t, dir, "a.txt", testutil.SampleInput),
		testutil.WriteInputIn(t, dir, "b.txt", cyclicInput),
		testutil.WriteInputIn(t, dir, "c.txt", "Step Q must be finished before step P can begin.\n"),
	}

	reports, err := SolveFiles(context.Background(), paths, Options{Workers: 2, BaseDelay: 0, MaxParallel: 2})
	if !errors.Is(err, steperrors.ErrCyclicDependency) {
		t.Errorf("SolveFiles() error = %v, want ErrCyclicDependency", err)
	}

	type summary struct {
		Input  string
		Order  string
		Failed bool
	}
	var got []summary
	for _, r := range reports {
		got = append(got, summary{r.Input, r.Order, r.Failed()})
	}
	want := []summary{
		{paths[0], "CABDFE", false},
		{paths[1], "", true},
		{paths[2], "QP", false},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("reports mismatch (-want +got):\n%s", diff)
	}
}

func TestSolveFiles_Canceled(t *testing.T) {
	path := testutil.WriteInput(t, "input.txt", testutil.SampleInput)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reports, err := SolveFiles(ctx, []string{path}, Options{Workers: 2})
	if !errors.Is(err, steperrors.ErrCanceled) {
		t.Fatalf("SolveFiles() error = %v, want ErrCanceled", err)
	}
	if len(reports) != 1 || !reports[0].Failed() {
		t.Errorf("reports = %+v, want one failed report", reports)
	}
}

package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// decodeEntries parses JSON log lines, failing the test on any bad line.
func decodeEntries(t *testing.T, data []byte) []map[string]any {
	t.Helper()

	var entries []map[string]any
	for n, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("log line %d is not JSON: %v\n%s", n+1, err, line)
		}
		entries = append(entries, entry)
	}
	return entries
}

func readEntries(t *testing.T, dir string) []map[string]any {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		t.Fatalf("failed to read %s: %v", FileName, err)
	}
	return decodeEntries(t, data)
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name string
		dir  func(t *testing.T) string
	}{
		{"existing directory", func(t *testing.T) string { return t.TempDir() }},
		{"nested missing directory", func(t *testing.T) string {
			return filepath.Join(t.TempDir(), "runs", "logs")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := tt.dir(t)
			logger, err := NewLogger(dir, LevelInfo)
			if err != nil {
				t.Fatalf("NewLogger(%q) error = %v", dir, err)
			}
			defer func() { _ = logger.Close() }()

			if _, err := os.Stat(filepath.Join(dir, FileName)); err != nil {
				t.Errorf("%s not created: %v", FileName, err)
			}
		})
	}
}

func TestNewLogger_EmptyDirUsesStderr(t *testing.T) {
	logger, err := NewLogger("", LevelWarn)
	if err != nil {
		t.Fatalf("NewLogger(\"\") error = %v", err)
	}
	if logger.closer != nil {
		t.Error("stderr logger should own no file")
	}
	if err := logger.Close(); err != nil {
		t.Errorf("Close() = %v", err)
	}
}

func TestLogger_LevelsAndFiltering(t *testing.T) {
	tests := []struct {
		level string
		want  []string
	}{
		{LevelDebug, []string{"DEBUG", "INFO", "WARN", "ERROR"}},
		{LevelInfo, []string{"INFO", "WARN", "ERROR"}},
		{"warn", []string{"WARN", "ERROR"}},
		{LevelError, []string{"ERROR"}},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLoggerWithWriter(&buf, tt.level)

			logger.Debug("step assigned", "step", "C")
			logger.Info("run complete", "ticks", 15)
			logger.Warn("run stuck", "tick", 1)
			logger.Error("failed to write report")

			var got []string
			for _, entry := range decodeEntries(t, buf.Bytes()) {
				got = append(got, entry["level"].(string))
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("levels written (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLogger_Enabled(t *testing.T) {
	logger := NewLoggerWithWriter(&bytes.Buffer{}, LevelWarn)

	if logger.Enabled(LevelInfo) {
		t.Error("Enabled(INFO) = true on a WARN logger")
	}
	if !logger.Enabled("error") {
		t.Error("Enabled(error) = false on a WARN logger")
	}
}

func TestLogger_RunAttributes(t *testing.T) {
	var buf bytes.Buffer
	root := NewLoggerWithWriter(&buf, LevelInfo)

	run := root.WithRun("run-7").WithInput("input.txt")
	run.WithScheduler("team").Info("run complete", "ticks", 15)
	run.WithScheduler("sequence").Info("order", "order", "CABDFE")
	root.Info("idle")

	got := decodeEntries(t, buf.Bytes())
	if len(got) != 3 {
		t.Fatalf("got %d entries, want 3", len(got))
	}

	pick := func(e map[string]any, keys ...string) map[string]any {
		out := make(map[string]any)
		for _, k := range keys {
			if v, ok := e[k]; ok {
				out[k] = v
			}
		}
		return out
	}
	keys := []string{"run_id", "input", "scheduler", "ticks", "order"}

	want := []map[string]any{
		{"run_id": "run-7", "input": "input.txt", "scheduler": "team", "ticks": float64(15)},
		{"run_id": "run-7", "input": "input.txt", "scheduler": "sequence", "order": "CABDFE"},
		{},
	}
	for i := range want {
		if diff := cmp.Diff(want[i], pick(got[i], keys...)); diff != "" {
			t.Errorf("entry %d attributes (-want +got):\n%s", i, diff)
		}
	}
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, LevelInfo)

	if logger.With() != logger {
		t.Error("With() with no pairs should return the receiver")
	}

	// A non-string key is skipped along with its value.
	logger.With("workers", 2, 99, "dropped", "base_delay", 0).Info("team ready")

	entry := decodeEntries(t, buf.Bytes())[0]
	if entry["workers"] != float64(2) || entry["base_delay"] != float64(0) {
		t.Errorf("entry = %v, want workers=2 base_delay=0", entry)
	}
	if _, ok := entry["99"]; ok {
		t.Error("non-string key was logged")
	}
}

func TestNopLogger(t *testing.T) {
	logger := NopLogger()
	logger.Error("discarded")

	if logger.Enabled(LevelWarn) {
		t.Error("NopLogger enables WARN")
	}
	if err := logger.Close(); err != nil {
		t.Errorf("Close() = %v", err)
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]string{
		"DEBUG":   LevelDebug,
		"debug":   LevelDebug,
		"Info":    LevelInfo,
		"warn":    LevelWarn,
		"ERROR":   LevelError,
		"verbose": LevelInfo,
		"":        LevelInfo,
	}

	for input, want := range tests {
		if got := ParseLevel(input); got != want {
			t.Errorf("ParseLevel(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestValidLevels(t *testing.T) {
	want := []string{LevelDebug, LevelInfo, LevelWarn, LevelError}
	if diff := cmp.Diff(want, ValidLevels()); diff != "" {
		t.Errorf("ValidLevels() (-want +got):\n%s", diff)
	}
}

func TestLogger_CloseIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	logger, err := NewLogger(dir, LevelInfo)
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}
	child := logger.WithRun("run-1")
	child.Info("solved")

	for i := 0; i < 2; i++ {
		if err := logger.Close(); err != nil {
			t.Errorf("Close() #%d = %v", i+1, err)
		}
	}

	if got := readEntries(t, dir); len(got) != 1 {
		t.Errorf("got %d entries, want 1", len(got))
	}
}

func TestLogger_ConcurrentRuns(t *testing.T) {
	dir := t.TempDir()
	logger, err := NewLogger(dir, LevelInfo)
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}

	const runs, perRun = 8, 50
	var wg sync.WaitGroup
	for r := 0; r < runs; r++ {
		wg.Add(1)
		go func(r int) {
			defer wg.Done()
			runLogger := logger.WithRun(string(rune('a' + r)))
			for tick := 0; tick < perRun; tick++ {
				runLogger.Info("tick", "tick", tick)
			}
		}(r)
	}
	wg.Wait()
	_ = logger.Close()

	perID := make(map[string]int)
	for _, entry := range readEntries(t, dir) {
		perID[entry["run_id"].(string)]++
	}
	if len(perID) != runs {
		t.Fatalf("got %d run IDs, want %d", len(perID), runs)
	}
	for id, n := range perID {
		if n != perRun {
			t.Errorf("run %s wrote %d entries, want %d", id, n, perRun)
		}
	}
}

package step

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	steperrors "github.com/Iron-Ham/stepwise/internal/errors"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input   string
		want    Step
		wantErr bool
	}{
		{"A", 'A', false},
		{"Z", 'Z', false},
		{"M", 'M', false},
		{"a", 0, true},
		{"", 0, true},
		{"AB", 0, true},
		{"1", 0, true},
		{"[", 0, true},
		{"@", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) = %v, want error", tt.input, got)
				}
				if !errors.Is(err, steperrors.ErrUnsupportedStep) {
					t.Errorf("Parse(%q) error = %v, want ErrUnsupportedStep", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestStep_String(t *testing.T) {
	if got := Step('Q').String(); got != "Q" {
		t.Errorf("String() = %q, want %q", got, "Q")
	}
}

func TestSortAndJoin(t *testing.T) {
	steps := []Step{'F', 'C', 'A', 'E'}
	Sort(steps)

	if diff := cmp.Diff([]Step{'A', 'C', 'E', 'F'}, steps); diff != "" {
		t.Errorf("Sort() mismatch (-want +got):\n%s", diff)
	}
	if got := Join(steps); got != "ACEF" {
		t.Errorf("Join() = %q, want %q", got, "ACEF")
	}
	if diff := cmp.Diff([]string{"A", "C", "E", "F"}, Strings(steps)); diff != "" {
		t.Errorf("Strings() mismatch (-want +got):\n%s", diff)
	}
	if got := Join(nil); got != "" {
		t.Errorf("Join(nil) = %q, want empty", got)
	}
}

func TestLetterDurations(t *testing.T) {
	tests := []struct {
		step Step
		want int
	}{
		{'A', 1},
		{'B', 2},
		{'C', 3},
		{'Z', 26},
	}

	for _, tt := range tests {
		t.Run(tt.step.String(), func(t *testing.T) {
			got, err := LetterDurations.Duration(tt.step)
			if err != nil {
				t.Fatalf("Duration(%v) unexpected error: %v", tt.step, err)
			}
			if got != tt.want {
				t.Errorf("Duration(%v) = %d, want %d", tt.step, got, tt.want)
			}
		})
	}
}

func TestLetterDurations_RejectsOutOfAlphabet(t *testing.T) {
	for _, s := range []Step{0, '@', '[', 'a', 'z', '0'} {
		_, err := LetterDurations.Duration(s)
		if !errors.Is(err, steperrors.ErrUnsupportedStep) {
			t.Errorf("Duration(%q) error = %v, want ErrUnsupportedStep", rune(s), err)
		}
	}
}

func TestDurationFunc(t *testing.T) {
	policy := DurationFunc(func(Step) (int, error) { return 7, nil })
	got, err := policy.Duration('A')
	if err != nil || got != 7 {
		t.Errorf("Duration() = %d, %v; want 7, nil", got, err)
	}
}

func TestStep_TextMarshaling(t *testing.T) {
	text, err := Step('K').MarshalText()
	if err != nil || string(text) != "K" {
		t.Fatalf("MarshalText() = %q, %v; want \"K\", nil", text, err)
	}

	var s Step
	if err := s.UnmarshalText([]byte("D")); err != nil || s != 'D' {
		t.Errorf("UnmarshalText(D) = %v, %v; want D, nil", s, err)
	}
	if err := s.UnmarshalText([]byte("d")); !errors.Is(err, steperrors.ErrUnsupportedStep) {
		t.Errorf("UnmarshalText(d) error = %v, want ErrUnsupportedStep", err)
	}
	if _, err := Step('!').MarshalText(); err == nil {
		t.Error("MarshalText('!') expected error")
	}
}

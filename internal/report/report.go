// Package report renders solve results as styled text, JSON or YAML.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Iron-Ham/stepwise/internal/errors"
	"github.com/Iron-Ham/stepwise/internal/schedule"
)

// Format selects a renderer.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Formats returns every supported format.
func Formats() []Format {
	return []Format{FormatText, FormatJSON, FormatYAML}
}

// ParseFormat converts a flag or config value to a Format.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(Formats(), f) {
		return "", errors.NewValidationError("unknown format (want text, json or yaml)").
			WithField("format").
			WithValue(s)
	}
	return f, nil
}

// Report is the outcome of solving one input.
type Report struct {
	Input        string                `json:"input" yaml:"input"`
	RunID        string                `json:"run_id" yaml:"run_id"`
	Steps        int                   `json:"steps" yaml:"steps"`
	Requirements int                   `json:"requirements" yaml:"requirements"`
	Order        string                `json:"order" yaml:"order"`
	Ticks        int                   `json:"ticks" yaml:"ticks"`
	Workers      int                   `json:"workers" yaml:"workers"`
	BaseDelay    int                   `json:"base_delay" yaml:"base_delay"`
	Timeline     []schedule.Assignment `json:"timeline,omitempty" yaml:"timeline,omitempty"`
	Error        string                `json:"error,omitempty" yaml:"error,omitempty"`
}

// Failed reports whether solving the input failed.
func (r *Report) Failed() bool {
	return r.Error != ""
}

// Options controls rendering.
type Options struct {
	Format   Format
	Color    bool
	Timeline bool
}

// Write renders reports to w in the requested format. JSON and YAML always
// emit a list so the shape does not depend on how many inputs were solved.
func Write(w io.Writer, reports []*Report, opts Options) error {
	if !opts.Timeline {
		reports = withoutTimeline(reports)
	}

	switch opts.Format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(reports)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(reports); err != nil {
			return err
		}
		return enc.Close()
	case FormatText, "":
		_, err := io.WriteString(w, Text(reports, opts))
		return err
	default:
		return fmt.Errorf("unknown format %q", opts.Format)
	}
}

func withoutTimeline(reports []*Report) []*Report {
	out := make([]*Report, len(reports))
	for i, r := range reports {
		cp := *r
		cp.Timeline = nil
		out[i] = &cp
	}
	return out
}

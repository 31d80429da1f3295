package report

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/x/ansi"
	"golang.org/x/term"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A78BFA"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF")).Width(7)
	valueStyle = lipgloss.NewStyle().Bold(true)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F87171"))
	headerCell = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	bodyCell   = lipgloss.NewStyle().Padding(0, 1)
)

// maxErrorWidth caps the visible width of a failed report's error line.
const maxErrorWidth = 160

// ColorEnabled reports whether styled output should be written to f.
// want is the user's preference; NO_COLOR and non-terminal outputs
// always disable color.
func ColorEnabled(f *os.File, want bool) bool {
	if !want || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Text renders reports as human-readable blocks separated by blank lines.
func Text(reports []*Report, opts Options) string {
	blocks := make([]string, 0, len(reports))
	for _, r := range reports {
		blocks = append(blocks, textBlock(r, opts.Timeline))
	}
	out := strings.Join(blocks, "\n")
	if !opts.Color {
		out = Plain(out)
	}
	return out
}

// Plain removes terminal styling from s.
func Plain(s string) string {
	return ansi.Strip(s)
}

func textBlock(r *Report, timeline bool) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(r.Input))
	b.WriteString("\n")

	if r.Failed() {
		b.WriteString("  ")
		b.WriteString(ansi.Truncate(errorStyle.Render("error: "+r.Error), maxErrorWidth, "..."))
		b.WriteString("\n")
		return b.String()
	}

	line := func(label, value string) {
		b.WriteString("  ")
		b.WriteString(labelStyle.Render(label))
		b.WriteString(" ")
		b.WriteString(value)
		b.WriteString("\n")
	}
	line("Order", valueStyle.Render(r.Order))
	line("Time", fmt.Sprintf("%s ticks (%d workers, base delay %d)",
		valueStyle.Render(strconv.Itoa(r.Ticks)), r.Workers, r.BaseDelay))
	line("Steps", fmt.Sprintf("%d (%d requirements)", r.Steps, r.Requirements))

	if timeline && len(r.Timeline) > 0 {
		b.WriteString(Timeline(r))
		b.WriteString("\n")
	}
	return b.String()
}

// Timeline renders the assignment table for r.
func Timeline(r *Report) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Step", "Worker", "Start", "End", "Ticks").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerCell
			}
			return bodyCell
		})

	for _, a := range r.Timeline {
		t.Row(
			a.Step.String(),
			strconv.Itoa(a.Worker),
			strconv.Itoa(a.Start),
			strconv.Itoa(a.End),
			strconv.Itoa(a.Duration()),
		)
	}
	return t.String()
}

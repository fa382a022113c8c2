package scenario

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	Title     lipgloss.Style
	Header    lipgloss.Style
	Cell      lipgloss.Style
	Muted     lipgloss.Style
	Committed lipgloss.Style
	Dropped   lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7aa2f7")),

		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#c0caf5")).
			PaddingRight(2),

		Cell: lipgloss.NewStyle().
			PaddingRight(2),

		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#565f89")),

		Committed: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9ece6a")).
			PaddingRight(2),

		Dropped: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f7768e")).
			PaddingRight(2),
	}
}

var columns = []string{"step", "lanes", "state", "remaining", "applied", "skipped", "flags", "outcome", "callbacks"}

// Render lays the report out as a table with one row per pass.
func (r *Report) Render() string {
	st := defaultStyles()

	rows := make([][]string, 0, len(r.Passes))
	for _, p := range r.Passes {
		rows = append(rows, []string{
			fmt.Sprint(p.Step),
			p.Lanes.String(),
			quote(p.State),
			p.RemainingLanes.String(),
			fmt.Sprint(p.Applied),
			fmt.Sprint(p.Skipped),
			p.flags(),
			string(p.Outcome),
			strings.Join(p.Callbacks, ","),
		})
	}

	widths := make([]int, len(columns))
	for i, name := range columns {
		widths[i] = len(name)
		for _, row := range rows {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}

	var b strings.Builder
	b.WriteString(st.Title.Render(r.Name))
	b.WriteByte('\n')

	header := make([]string, len(columns))
	for i, name := range columns {
		header[i] = st.Header.Width(widths[i] + 2).Render(name)
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, header...))
	b.WriteByte('\n')

	for i, row := range rows {
		cells := make([]string, len(row))
		for j, text := range row {
			style := st.Cell
			if columns[j] == "outcome" {
				style = st.outcome(r.Passes[i].Outcome)
			}
			cells[j] = style.Width(widths[j] + 2).Render(text)
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		b.WriteByte('\n')
	}

	mounted := "mounted"
	if !r.Mounted {
		mounted = "unmounted"
	}
	b.WriteString(st.Muted.Render(fmt.Sprintf("final %s, pending %s, %s", quote(r.State), r.Pending, mounted)))
	b.WriteByte('\n')

	return b.String()
}

func (s styles) outcome(o Outcome) lipgloss.Style {
	switch o {
	case OutcomeCommitted:
		return s.Committed
	case OutcomeDiscarded, OutcomeSuperseded:
		return s.Dropped
	default:
		return s.Cell
	}
}

func (p *PassReport) flags() string {
	var flags []string
	if p.ForceUpdate {
		flags = append(flags, "force")
	}
	if p.DidCapture {
		flags = append(flags, "capture")
	}
	if len(flags) == 0 {
		return "-"
	}
	return strings.Join(flags, ",")
}

func quote(s string) string {
	return fmt.Sprintf("%q", s)
}

package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

type AppData struct {
	Header       string
	InputView    string
	AddPulse     bool
	Rows         []RowData
	EmptyText    string
	Counters     CountersData
	Filter       FilterBarData
	StatusLine   string
	Palette      string
	Help         string
	Notification string
	Footer       string
}

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	panelStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	emptyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
	buttonStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	pulseStyle    = lipgloss.NewStyle().Bold(true).Reverse(true)
	activeStyle   = lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color("11"))
	doneStyle     = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("8"))
	removingStyle = lipgloss.NewStyle().Faint(true)
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("13"))
)

// Compose renders the whole screen and returns the geometry used for mouse
// hit-testing. Everything above the footer sits at fixed columns, so the
// layout is exact without parsing the output.
func Compose(data AppData) (string, Layout) {
	var layout Layout
	lines := []string{headerStyle.Render(data.Header)}

	layout.InputLine = len(lines)
	inputRow, addSpan := renderInputRow(data.InputView, data.AddPulse)
	layout.Add = addSpan
	lines = append(lines, inputRow, "")

	layout.ListTop = len(lines)
	if len(data.Rows) == 0 {
		lines = append(lines, emptyStyle.Render(data.EmptyText))
	}
	for _, r := range data.Rows {
		lines = append(lines, RenderRow(r))
		layout.Rows = append(layout.Rows, rowHit{id: r.ID, removing: r.Removing})
	}

	lines = append(lines, "", RenderCounters(data.Counters))
	layout.FilterLine = len(lines)
	bar, filterSpans, clearSpan := renderFilterBar(data.Filter)
	layout.Filters = filterSpans
	layout.Clear = clearSpan
	layout.ClearVisible = data.Filter.ClearVisible
	lines = append(lines, bar)

	if data.StatusLine != "" {
		status := statusStyle.Render(data.StatusLine)
		if strings.Contains(strings.ToLower(data.StatusLine), "error") {
			status = errorStyle.Render(data.StatusLine)
		}
		lines = append(lines, status)
	}
	if data.Palette != "" {
		lines = append(lines, data.Palette)
	}
	if data.Help != "" {
		lines = append(lines, panelStyle.Render(data.Help))
	}
	if data.Notification != "" {
		lines = append(lines, data.Notification)
	}
	if data.Footer != "" {
		lines = append(lines, footerStyle.Render(data.Footer))
	}
	return strings.Join(lines, "\n"), layout
}

func RenderMarkdown(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	out, err := glamour.Render(md, "dark")
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}

func renderInputRow(inputView string, pulse bool) (string, span) {
	start := lipgloss.Width(inputView) + 2
	label := buttonStyle.Render(AddLabel)
	if pulse {
		label = pulseStyle.Render(AddLabel)
	}
	return inputView + "  " + label, span{start: start, end: start + runewidth.StringWidth(AddLabel)}
}

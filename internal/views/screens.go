package views

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
	"github.com/sandeepkv93/tasklist/internal/model"
)

const (
	AddLabel   = "[ Add ]"
	ClearLabel = "[ Clear completed ]"
	DeleteMark = "×"

	// TextWidth is the fixed text column of a row.
	TextWidth  = 40
	rowTextCol = 6
	// DeleteCol is the column of the per-row delete control.
	DeleteCol = rowTextCol + TextWidth + 1
)

type RowData struct {
	ID       int64
	Text     string
	Done     bool
	Selected bool
	Removing bool
	Collapse float64
}

type CountersData struct {
	Total        int
	Active       int
	Completed    int
	ProgressView string
}

type FilterBarData struct {
	Active       model.Filter
	ClearVisible bool
	ClearPulse   bool
}

type HelpPanelData struct {
	Intro    string
	Bindings []string
	HelpView string
}

// RenderRow lays a row out as: cursor(2) checkbox(3) space text(TextWidth) space delete.
func RenderRow(r RowData) string {
	cursor := "  "
	if r.Selected {
		cursor = cursorStyle.Render("> ")
	}
	box := "[ ]"
	if r.Done {
		box = "[x]"
	}

	width := TextWidth
	if r.Removing {
		width = int(float64(TextWidth) * clamp01(r.Collapse))
	}
	text := runewidth.Truncate(singleLine(r.Text), width, "…")
	padded := runewidth.FillRight(text, TextWidth)

	switch {
	case r.Removing:
		padded = removingStyle.Render(padded)
	case r.Done:
		padded = doneStyle.Render(padded)
	}
	del := DeleteMark
	if r.Removing {
		del = " "
	}
	return cursor + box + " " + padded + " " + del
}

// singleLine keeps a row on one screen line. Control characters such as
// newlines, tabs and escapes become spaces.
func singleLine(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, s)
}

func RenderCounters(c CountersData) string {
	line := fmt.Sprintf("total: %d | active: %d | completed: %d", c.Total, c.Active, c.Completed)
	if c.ProgressView != "" {
		line += "  " + c.ProgressView
	}
	return line
}

func renderFilterBar(data FilterBarData) (string, map[model.Filter]span, span) {
	var b strings.Builder
	col := 0
	write := func(plain, styled string) span {
		s := span{start: col, end: col + runewidth.StringWidth(plain)}
		b.WriteString(styled)
		col = s.end
		return s
	}

	spans := make(map[model.Filter]span, len(model.Filters))
	write("show: ", "show: ")
	for i, f := range model.Filters {
		if i > 0 {
			write(" ", " ")
		}
		label := "[" + f.Label() + "]"
		styled := buttonStyle.Render(label)
		if f == data.Active {
			styled = activeStyle.Render(label)
		}
		spans[f] = write(label, styled)
	}

	var clear span
	if data.ClearVisible {
		write("   ", "   ")
		clear = write(ClearLabel, RenderClearButton(true, data.ClearPulse))
	}
	return b.String(), spans, clear
}

func RenderFilterBar(data FilterBarData) string {
	out, _, _ := renderFilterBar(data)
	return out
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("notification: [%s] %s", strings.ToUpper(level), body)
}

func RenderHelpPanel(data HelpPanelData) string {
	var b strings.Builder
	b.WriteString("help:\n")
	if intro := RenderMarkdown(data.Intro); intro != "" {
		b.WriteString(intro + "\n")
	}
	b.WriteString(strings.Join(data.Bindings, "\n"))
	if data.HelpView != "" {
		b.WriteString("\n" + data.HelpView)
	}
	return strings.TrimSpace(b.String())
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// RenderClearButton is empty unless at least one task is completed.
func RenderClearButton(visible, pulse bool) string {
	if !visible {
		return ""
	}
	if pulse {
		return pulseStyle.Render(ClearLabel)
	}
	return buttonStyle.Render(ClearLabel)
}

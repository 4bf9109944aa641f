package views

import (
	"strings"
	"testing"

	"github.com/sandeepkv93/tasklist/internal/model"
)

func layoutFixture(clearVisible bool) (string, Layout) {
	return Compose(AppData{
		Header:    "tasklist",
		InputView: "> what needs to be done?",
		Rows: []RowData{
			{ID: 10, Text: "Buy milk"},
			{ID: 11, Text: "Walk dog", Done: true},
			{ID: 12, Text: "Leaving", Removing: true, Collapse: 0.5},
		},
		Counters: CountersData{Total: 3, Active: 2, Completed: 1},
		Filter:   FilterBarData{Active: model.FilterAll, ClearVisible: clearVisible},
		Footer:   "tab focus",
	})
}

func TestLayoutHitRows(t *testing.T) {
	_, layout := layoutFixture(true)

	if got := layout.Hit(3, layout.ListTop); got.Kind != TargetToggle || got.TaskID != 10 {
		t.Fatalf("expected toggle on row 10, got %+v", got)
	}
	if got := layout.Hit(rowTextCol+2, layout.ListTop+1); got.Kind != TargetToggle || got.TaskID != 11 {
		t.Fatalf("expected toggle on row 11 label, got %+v", got)
	}
	if got := layout.Hit(DeleteCol, layout.ListTop+1); got.Kind != TargetDelete || got.TaskID != 11 {
		t.Fatalf("expected delete on row 11, got %+v", got)
	}
	if got := layout.Hit(3, layout.ListTop+2); got.Kind != TargetNone {
		t.Fatalf("expected removing row to swallow click, got %+v", got)
	}
	if got := layout.Hit(3, layout.ListTop+3); got.Kind != TargetNone {
		t.Fatalf("expected blank line below rows to be inert, got %+v", got)
	}
}

func TestLayoutHitControls(t *testing.T) {
	_, layout := layoutFixture(true)

	if got := layout.Hit(layout.Add.start, layout.InputLine); got.Kind != TargetAdd {
		t.Fatalf("expected add target, got %+v", got)
	}
	for _, f := range model.Filters {
		s := layout.Filters[f]
		if got := layout.Hit(s.start, layout.FilterLine); got.Kind != TargetFilter || got.Filter != f {
			t.Fatalf("expected filter %s, got %+v", f, got)
		}
	}
	if got := layout.Hit(layout.Clear.start, layout.FilterLine); got.Kind != TargetClear {
		t.Fatalf("expected clear target, got %+v", got)
	}

	_, hidden := layoutFixture(false)
	if got := hidden.Hit(layout.Clear.start, hidden.FilterLine); got.Kind == TargetClear {
		t.Fatal("hidden clear control must not be clickable")
	}
}

func TestComposeLinesMatchLayout(t *testing.T) {
	out, layout := layoutFixture(true)
	lines := strings.Split(out, "\n")
	if !strings.Contains(lines[layout.InputLine], AddLabel) {
		t.Fatalf("expected add button on input line, got %q", lines[layout.InputLine])
	}
	if !strings.Contains(lines[layout.ListTop], "Buy milk") {
		t.Fatalf("expected first row at list top, got %q", lines[layout.ListTop])
	}
	if !strings.Contains(lines[layout.FilterLine], "[Completed]") {
		t.Fatalf("expected filter bar on filter line, got %q", lines[layout.FilterLine])
	}
	if !strings.Contains(out, "total: 3 | active: 2 | completed: 1") {
		t.Fatalf("expected counters in output, got %q", out)
	}
}

func TestRenderFilterBarClearVisibility(t *testing.T) {
	bar := RenderFilterBar(FilterBarData{Active: model.FilterActive})
	if strings.Contains(bar, ClearLabel) {
		t.Fatalf("clear control should be hidden, got %q", bar)
	}
	bar = RenderFilterBar(FilterBarData{Active: model.FilterActive, ClearVisible: true})
	if !strings.Contains(bar, ClearLabel) {
		t.Fatalf("clear control should be visible, got %q", bar)
	}
	if RenderClearButton(false, false) != "" {
		t.Fatal("expected empty clear button when nothing completed")
	}
}

func TestRenderRowShape(t *testing.T) {
	row := RenderRow(RowData{ID: 1, Text: strings.Repeat("x", 80), Done: true})
	if !strings.HasPrefix(row, "  [x] ") {
		t.Fatalf("unexpected row prefix: %q", row)
	}
	if !strings.HasSuffix(row, DeleteMark) {
		t.Fatalf("expected delete mark at end, got %q", row)
	}
	leaving := RenderRow(RowData{ID: 1, Text: "Buy milk", Removing: true, Collapse: 0})
	if strings.Contains(leaving, "Buy") || strings.HasSuffix(leaving, DeleteMark) {
		t.Fatalf("collapsed row should hide text and delete mark, got %q", leaving)
	}
}

func TestComposeKeepsMultilineTextOnOneRow(t *testing.T) {
	out, layout := Compose(AppData{
		Header:    "tasklist",
		InputView: "> ",
		Rows: []RowData{
			{ID: 1, Text: "line1\nline2\ttabbed"},
			{ID: 2, Text: "second"},
		},
		Filter: FilterBarData{Active: model.FilterAll},
	})
	lines := strings.Split(out, "\n")
	if !strings.Contains(lines[layout.ListTop], "line1 line2 tabbed") {
		t.Fatalf("expected control characters flattened to spaces, got %q", lines[layout.ListTop])
	}
	if !strings.Contains(lines[layout.ListTop+1], "second") {
		t.Fatalf("expected second row on the next line, got %q", lines[layout.ListTop+1])
	}
	if got := layout.Hit(3, layout.ListTop+1); got.Kind != TargetToggle || got.TaskID != 2 {
		t.Fatalf("expected click on second line to toggle row 2, got %+v", got)
	}
	if !strings.Contains(lines[layout.FilterLine], "[All]") {
		t.Fatalf("expected filter bar on filter line, got %q", lines[layout.FilterLine])
	}
}

func TestRenderFilterBarUsesClearButton(t *testing.T) {
	bar := RenderFilterBar(FilterBarData{Active: model.FilterAll, ClearVisible: true, ClearPulse: true})
	if !strings.HasSuffix(bar, RenderClearButton(true, true)) {
		t.Fatalf("expected pulsing clear button at end of bar, got %q", bar)
	}
}

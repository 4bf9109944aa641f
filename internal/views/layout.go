package views

import "github.com/sandeepkv93/tasklist/internal/model"

type TargetKind int

const (
	TargetNone TargetKind = iota
	TargetToggle
	TargetDelete
	TargetAdd
	TargetFilter
	TargetClear
)

func (k TargetKind) String() string {
	switch k {
	case TargetToggle:
		return "toggle"
	case TargetDelete:
		return "delete"
	case TargetAdd:
		return "add"
	case TargetFilter:
		return "filter"
	case TargetClear:
		return "clear"
	default:
		return "none"
	}
}

type Target struct {
	Kind   TargetKind
	TaskID int64
	Filter model.Filter
}

// span is a half-open column range.
type span struct {
	start int
	end   int
}

func (s span) contains(x int) bool { return x >= s.start && x < s.end }

type rowHit struct {
	id       int64
	removing bool
}

type Layout struct {
	InputLine    int
	Add          span
	ListTop      int
	Rows         []rowHit
	FilterLine   int
	Filters      map[model.Filter]span
	Clear        span
	ClearVisible bool
}

// Hit resolves a click at cell (x, y). Rows that are being removed swallow clicks.
func (l Layout) Hit(x, y int) Target {
	switch {
	case y == l.InputLine:
		if l.Add.contains(x) {
			return Target{Kind: TargetAdd}
		}
	case y >= l.ListTop && y < l.ListTop+len(l.Rows):
		row := l.Rows[y-l.ListTop]
		if row.removing {
			return Target{}
		}
		if x >= DeleteCol && x < DeleteCol+1 {
			return Target{Kind: TargetDelete, TaskID: row.id}
		}
		if x < rowTextCol+TextWidth {
			return Target{Kind: TargetToggle, TaskID: row.id}
		}
	case y == l.FilterLine:
		for f, s := range l.Filters {
			if s.contains(x) {
				return Target{Kind: TargetFilter, Filter: f}
			}
		}
		if l.ClearVisible && l.Clear.contains(x) {
			return Target{Kind: TargetClear}
		}
	}
	return Target{}
}

// Cell helpers return a screen position that Hit resolves to the named control.

func (l Layout) AddCell() (int, int) {
	return l.Add.start, l.InputLine
}

func (l Layout) ToggleCell(id int64) (int, int, bool) {
	for i, r := range l.Rows {
		if r.id == id {
			return rowTextCol, l.ListTop + i, true
		}
	}
	return 0, 0, false
}

func (l Layout) DeleteCell(id int64) (int, int, bool) {
	_, y, ok := l.ToggleCell(id)
	if !ok {
		return 0, 0, false
	}
	return DeleteCol, y, true
}

func (l Layout) FilterCell(f model.Filter) (int, int, bool) {
	s, ok := l.Filters[f]
	return s.start, l.FilterLine, ok
}

func (l Layout) ClearCell() (int, int, bool) {
	return l.Clear.start, l.FilterLine, l.ClearVisible
}

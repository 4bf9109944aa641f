package views

import "github.com/sandeepkv93/tasklist/internal/model"

// Row is the on-screen state of one task. It mirrors the task record and adds
// display-only flags.
type Row struct {
	ID       int64
	Text     string
	Done     bool
	Hidden   bool
	Removing bool
	Collapse float64
	Velocity float64
}

// ItemList is the retained display list. After Build, every change is a patch
// on a single row; the whole list is never re-derived from the collection.
type ItemList struct {
	rows   []Row
	cursor int
	builds int
}

func NewItemList() *ItemList {
	return &ItemList{}
}

// Build replaces every row. Called once at startup.
func (l *ItemList) Build(tasks []model.Task, f model.Filter) {
	l.rows = make([]Row, 0, len(tasks))
	for _, t := range tasks {
		l.rows = append(l.rows, newRow(t, f))
	}
	l.cursor = 0
	l.builds++
}

func (l *ItemList) Builds() int { return l.builds }

func (l *ItemList) Append(t model.Task, f model.Filter) {
	l.rows = append(l.rows, newRow(t, f))
}

func (l *ItemList) SetDone(id int64, done bool, f model.Filter) bool {
	i := l.indexOf(id)
	if i < 0 {
		return false
	}
	l.rows[i].Done = done
	l.rows[i].Hidden = !f.Visible(done)
	l.clampCursor()
	return true
}

func (l *ItemList) MarkRemoving(id int64) bool {
	i := l.indexOf(id)
	if i < 0 || l.rows[i].Removing {
		return false
	}
	l.rows[i].Removing = true
	return true
}

func (l *ItemList) SetCollapse(id int64, pos, vel float64) {
	if i := l.indexOf(id); i >= 0 {
		l.rows[i].Collapse = pos
		l.rows[i].Velocity = vel
	}
}

func (l *ItemList) Remove(id int64) bool {
	i := l.indexOf(id)
	if i < 0 {
		return false
	}
	l.rows = append(l.rows[:i], l.rows[i+1:]...)
	l.clampCursor()
	return true
}

// Prune drops rows whose task no longer exists.
func (l *ItemList) Prune(exists func(id int64) bool) int {
	kept := l.rows[:0]
	dropped := 0
	for _, r := range l.rows {
		if exists(r.ID) {
			kept = append(kept, r)
			continue
		}
		dropped++
	}
	l.rows = kept
	l.clampCursor()
	return dropped
}

// ApplyFilter re-evaluates visibility of every row without touching anything else.
func (l *ItemList) ApplyFilter(f model.Filter) {
	for i := range l.rows {
		l.rows[i].Hidden = !f.Visible(l.rows[i].Done)
	}
	l.clampCursor()
}

func (l *ItemList) Get(id int64) (Row, bool) {
	if i := l.indexOf(id); i >= 0 {
		return l.rows[i], true
	}
	return Row{}, false
}

func (l *ItemList) Rows() []Row {
	return append([]Row(nil), l.rows...)
}

func (l *ItemList) Len() int { return len(l.rows) }

func (l *ItemList) VisibleRows() []Row {
	out := make([]Row, 0, len(l.rows))
	for _, r := range l.rows {
		if !r.Hidden {
			out = append(out, r)
		}
	}
	return out
}

func (l *ItemList) Animating() []Row {
	var out []Row
	for _, r := range l.rows {
		if r.Removing {
			out = append(out, r)
		}
	}
	return out
}

// Cursor indexes VisibleRows.
func (l *ItemList) Cursor() int { return l.cursor }

func (l *ItemList) MoveCursor(delta int) {
	l.cursor += delta
	l.clampCursor()
}

func (l *ItemList) Selected() (Row, bool) {
	visible := l.VisibleRows()
	if len(visible) == 0 {
		return Row{}, false
	}
	return visible[l.cursor], true
}

func (l *ItemList) clampCursor() {
	n := 0
	for _, r := range l.rows {
		if !r.Hidden {
			n++
		}
	}
	if l.cursor >= n {
		l.cursor = n - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
}

func (l *ItemList) indexOf(id int64) int {
	for i, r := range l.rows {
		if r.ID == id {
			return i
		}
	}
	return -1
}

func newRow(t model.Task, f model.Filter) Row {
	return Row{
		ID:       t.ID,
		Text:     t.Text,
		Done:     t.Done,
		Hidden:   !f.Visible(t.Done),
		Collapse: 1,
	}
}

// Unmark restores a row whose removal could not be committed.
func (l *ItemList) Unmark(id int64) {
	if i := l.indexOf(id); i >= 0 {
		l.rows[i].Removing = false
		l.rows[i].Collapse = 1
		l.rows[i].Velocity = 0
	}
}

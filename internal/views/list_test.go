package views

import (
	"testing"

	"github.com/sandeepkv93/tasklist/internal/model"
)

func sampleTasks() []model.Task {
	return []model.Task{
		{ID: 1, Text: "Buy milk"},
		{ID: 2, Text: "Walk dog", Done: true},
		{ID: 3, Text: "Write report"},
	}
}

func TestItemListPatchesNeverRebuild(t *testing.T) {
	l := NewItemList()
	l.Build(sampleTasks(), model.FilterAll)

	l.Append(model.Task{ID: 4, Text: "Call mom"}, model.FilterAll)
	if !l.SetDone(1, true, model.FilterAll) {
		t.Fatal("expected SetDone to find row 1")
	}
	if !l.Remove(3) {
		t.Fatal("expected Remove to find row 3")
	}
	l.ApplyFilter(model.FilterActive)

	if l.Builds() != 1 {
		t.Fatalf("expected exactly one full build, got %d", l.Builds())
	}
	if l.Len() != 3 {
		t.Fatalf("expected 3 rows, got %d", l.Len())
	}
	visible := l.VisibleRows()
	if len(visible) != 1 || visible[0].ID != 4 {
		t.Fatalf("expected only row 4 visible under active, got %+v", visible)
	}
}

func TestItemListApplyFilterTracksDone(t *testing.T) {
	l := NewItemList()
	l.Build(sampleTasks(), model.FilterCompleted)
	if got := l.VisibleRows(); len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("unexpected completed rows: %+v", got)
	}
	l.SetDone(1, true, model.FilterCompleted)
	if got := l.VisibleRows(); len(got) != 2 {
		t.Fatalf("expected toggled row to appear under completed, got %+v", got)
	}
}

func TestItemListPruneAndCursor(t *testing.T) {
	l := NewItemList()
	l.Build(sampleTasks(), model.FilterAll)
	l.MoveCursor(5)
	if l.Cursor() != 2 {
		t.Fatalf("expected cursor clamped to 2, got %d", l.Cursor())
	}
	dropped := l.Prune(func(id int64) bool { return id != 2 })
	if dropped != 1 || l.Len() != 2 {
		t.Fatalf("expected one pruned row, dropped=%d len=%d", dropped, l.Len())
	}
	if l.Cursor() != 1 {
		t.Fatalf("expected cursor clamped to 1, got %d", l.Cursor())
	}
	row, ok := l.Selected()
	if !ok || row.ID != 3 {
		t.Fatalf("unexpected selection: %+v ok=%v", row, ok)
	}
}

func TestItemListMarkRemovingOnce(t *testing.T) {
	l := NewItemList()
	l.Build(sampleTasks(), model.FilterAll)
	if !l.MarkRemoving(1) {
		t.Fatal("expected first mark to succeed")
	}
	if l.MarkRemoving(1) {
		t.Fatal("expected second mark to be ignored")
	}
	l.SetCollapse(1, 0.5, -1)
	row, _ := l.Get(1)
	if row.Collapse != 0.5 || row.Velocity != -1 {
		t.Fatalf("unexpected collapse state: %+v", row)
	}
	if len(l.Animating()) != 1 {
		t.Fatalf("expected one animating row")
	}
}

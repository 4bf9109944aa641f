package model

import (
	"errors"
	"testing"
)

func TestTaskValidateSuccess(t *testing.T) {
	task := Task{ID: 1760871600000, Text: "Buy milk"}
	if err := task.Validate(); err != nil {
		t.Fatalf("expected valid task, got error: %v", err)
	}
}

func TestTaskValidateRejectsBlankTextAndBadID(t *testing.T) {
	err := Task{ID: 1, Text: "   "}.Validate()
	if err == nil || !errors.Is(err, ErrInvalidTask) {
		t.Fatalf("expected ErrInvalidTask for blank text, got: %v", err)
	}
	err = Task{ID: 0, Text: "ok"}.Validate()
	if err == nil || !errors.Is(err, ErrInvalidTask) {
		t.Fatalf("expected ErrInvalidTask for zero id, got: %v", err)
	}
}

func TestFilterVisibilityIsPureFunctionOfFilterAndDone(t *testing.T) {
	cases := []struct {
		filter Filter
		done   bool
		want   bool
	}{
		{FilterAll, false, true},
		{FilterAll, true, true},
		{FilterActive, false, true},
		{FilterActive, true, false},
		{FilterCompleted, false, false},
		{FilterCompleted, true, true},
		{Filter("bogus"), true, true},
	}
	for _, tc := range cases {
		if got := tc.filter.Visible(tc.done); got != tc.want {
			t.Fatalf("Visible(%q, done=%v) = %v, want %v", tc.filter, tc.done, got, tc.want)
		}
	}
}

func TestParseFilter(t *testing.T) {
	if f, ok := ParseFilter(" Completed "); !ok || f != FilterCompleted {
		t.Fatalf("expected completed, got %q ok=%v", f, ok)
	}
	if f, ok := ParseFilter("later"); ok || f != FilterAll {
		t.Fatalf("expected fallback to all, got %q ok=%v", f, ok)
	}
}

func TestCountTasks(t *testing.T) {
	c := CountTasks([]Task{
		{ID: 1, Text: "a"},
		{ID: 2, Text: "b", Done: true},
		{ID: 3, Text: "c"},
	})
	if c.Total != 3 || c.Active != 2 || c.Completed != 1 {
		t.Fatalf("unexpected counts: %+v", c)
	}
	if c.ItemsLeftLabel() != "2 items left" {
		t.Fatalf("unexpected label: %q", c.ItemsLeftLabel())
	}
	if (Counts{Active: 1, Total: 1}).ItemsLeftLabel() != "1 item left" {
		t.Fatal("expected singular label")
	}
	if (Counts{}).CompletedRatio() != 0 {
		t.Fatal("expected zero ratio for empty collection")
	}
}

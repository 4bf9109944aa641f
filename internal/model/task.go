package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidFilter = errors.New("model: invalid filter")
	ErrInvalidTask   = errors.New("model: invalid task")
)

type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// Filters lists the selector controls in display order.
var Filters = []Filter{FilterAll, FilterActive, FilterCompleted}

func (f Filter) IsValid() bool {
	switch f {
	case FilterAll, FilterActive, FilterCompleted:
		return true
	default:
		return false
	}
}

// Visible reports whether a task with the given done flag is shown under f.
// Unknown filters behave like all.
func (f Filter) Visible(done bool) bool {
	switch f {
	case FilterActive:
		return !done
	case FilterCompleted:
		return done
	default:
		return true
	}
}

func (f Filter) Label() string {
	switch f {
	case FilterActive:
		return "Active"
	case FilterCompleted:
		return "Completed"
	default:
		return "All"
	}
}

// ParseFilter is case-insensitive. Unknown input yields FilterAll and false.
func ParseFilter(raw string) (Filter, bool) {
	f := Filter(strings.ToLower(strings.TrimSpace(raw)))
	if !f.IsValid() {
		return FilterAll, false
	}
	return f, true
}

type Task struct {
	ID   int64  `json:"id" yaml:"id"`
	Text string `json:"text" yaml:"text"`
	Done bool   `json:"done" yaml:"done"`
}

func (t Task) Validate() error {
	if t.ID <= 0 {
		return fmt.Errorf("%w: id must be positive, got %d", ErrInvalidTask, t.ID)
	}
	if strings.TrimSpace(t.Text) == "" {
		return fmt.Errorf("%w: text is required", ErrInvalidTask)
	}
	return nil
}

type Counts struct {
	Total     int
	Active    int
	Completed int
}

func CountTasks(tasks []Task) Counts {
	var c Counts
	for _, t := range tasks {
		c.Total++
		if t.Done {
			c.Completed++
		} else {
			c.Active++
		}
	}
	return c
}

func (c Counts) ItemsLeftLabel() string {
	if c.Active == 1 {
		return "1 item left"
	}
	return fmt.Sprintf("%d items left", c.Active)
}

// CompletedRatio is 0 for an empty collection.
func (c Counts) CompletedRatio() float64 {
	if c.Total == 0 {
		return 0
	}
	return float64(c.Completed) / float64(c.Total)
}

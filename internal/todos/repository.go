// Package todos holds the in-memory task collection. Every accepted mutation
// is written through the Saver before it becomes visible, so the persisted
// collection always equals the in-memory one.
package todos

import (
	"context"
	"strings"
	"time"

	"github.com/sandeepkv93/tasklist/internal/model"
)

type Saver interface {
	Save(ctx context.Context, tasks []model.Task) error
}

type Repository struct {
	tasks  []model.Task
	saver  Saver
	now    func() time.Time
	lastID int64
}

type Option func(*Repository)

func WithClock(now func() time.Time) Option {
	return func(r *Repository) {
		if now != nil {
			r.now = now
		}
	}
}

// New takes ownership of initial, normally the hydrated collection.
func New(saver Saver, initial []model.Task, opts ...Option) *Repository {
	r := &Repository{
		tasks: append([]model.Task(nil), initial...),
		saver: saver,
		now:   time.Now,
	}
	for _, t := range r.tasks {
		if t.ID > r.lastID {
			r.lastID = t.ID
		}
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Tasks returns a copy in display order. It is never nil.
func (r *Repository) Tasks() []model.Task {
	out := make([]model.Task, len(r.tasks))
	copy(out, r.tasks)
	return out
}

func (r *Repository) Len() int { return len(r.tasks) }

func (r *Repository) Get(id int64) (model.Task, bool) {
	if i := r.indexOf(id); i >= 0 {
		return r.tasks[i], true
	}
	return model.Task{}, false
}

func (r *Repository) Counts() model.Counts {
	return model.CountTasks(r.tasks)
}

func (r *Repository) HasCompleted() bool {
	for _, t := range r.tasks {
		if t.Done {
			return true
		}
	}
	return false
}

// Add appends a new active task. Blank text is rejected without error.
func (r *Repository) Add(ctx context.Context, text string) (model.Task, bool, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return model.Task{}, false, nil
	}
	task := model.Task{ID: r.nextID(), Text: trimmed}
	next := make([]model.Task, 0, len(r.tasks)+1)
	next = append(next, r.tasks...)
	next = append(next, task)
	if err := r.commit(ctx, next); err != nil {
		return model.Task{}, false, err
	}
	r.lastID = task.ID
	return task, true, nil
}

func (r *Repository) Toggle(ctx context.Context, id int64) (model.Task, bool, error) {
	i := r.indexOf(id)
	if i < 0 {
		return model.Task{}, false, nil
	}
	next := r.Tasks()
	next[i].Done = !next[i].Done
	if err := r.commit(ctx, next); err != nil {
		return model.Task{}, false, err
	}
	return next[i], true, nil
}

func (r *Repository) Remove(ctx context.Context, id int64) (bool, error) {
	i := r.indexOf(id)
	if i < 0 {
		return false, nil
	}
	next := make([]model.Task, 0, len(r.tasks)-1)
	next = append(next, r.tasks[:i]...)
	next = append(next, r.tasks[i+1:]...)
	if err := r.commit(ctx, next); err != nil {
		return false, err
	}
	return true, nil
}

// ClearCompleted drops every done task in one replacement and returns their ids.
func (r *Repository) ClearCompleted(ctx context.Context) ([]int64, error) {
	next := make([]model.Task, 0, len(r.tasks))
	var removed []int64
	for _, t := range r.tasks {
		if t.Done {
			removed = append(removed, t.ID)
			continue
		}
		next = append(next, t)
	}
	if len(removed) == 0 {
		return nil, nil
	}
	if err := r.commit(ctx, next); err != nil {
		return nil, err
	}
	return removed, nil
}

func (r *Repository) commit(ctx context.Context, next []model.Task) error {
	if r.saver != nil {
		if err := r.saver.Save(ctx, next); err != nil {
			return err
		}
	}
	r.tasks = next
	return nil
}

func (r *Repository) indexOf(id int64) int {
	for i, t := range r.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// nextID is the creation time in milliseconds, bumped past the last issued id
// when the clock has not advanced.
func (r *Repository) nextID() int64 {
	id := r.now().UnixMilli()
	if id <= r.lastID {
		id = r.lastID + 1
	}
	return id
}

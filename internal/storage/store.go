package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sandeepkv93/tasklist/internal/model"
)

const (
	TasksKey  = "todos"
	FilterKey = "filter"
)

// Store maps the task collection and the selected filter onto two keys of a KV
// backend. Reads never fail: anything unreadable is treated as absent.
type Store struct {
	kv     KV
	logger *slog.Logger
}

func NewStore(kv KV, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{kv: kv, logger: logger}
}

func (s *Store) Load(ctx context.Context) []model.Task {
	raw, err := s.kv.GetItem(ctx, TasksKey)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logger.Warn("read tasks failed, starting empty", "error", err)
		}
		return []model.Task{}
	}
	tasks, err := decodeTasks(raw)
	if err != nil {
		s.logger.Warn("stored tasks are malformed, starting empty", "error", err)
		return []model.Task{}
	}
	return tasks
}

func (s *Store) Save(ctx context.Context, tasks []model.Task) error {
	if tasks == nil {
		tasks = []model.Task{}
	}
	payload, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	if err := s.kv.SetItem(ctx, TasksKey, string(payload)); err != nil {
		return fmt.Errorf("write tasks: %w", err)
	}
	return nil
}

func (s *Store) LoadFilter(ctx context.Context) model.Filter {
	raw, err := s.kv.GetItem(ctx, FilterKey)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logger.Warn("read filter failed, using all", "error", err)
		}
		return model.FilterAll
	}
	f, ok := model.ParseFilter(raw)
	if !ok {
		s.logger.Warn("stored filter is unknown, using all", "value", raw)
	}
	return f
}

func (s *Store) SaveFilter(ctx context.Context, f model.Filter) error {
	if !f.IsValid() {
		return fmt.Errorf("%w: %q", model.ErrInvalidFilter, f)
	}
	if err := s.kv.SetItem(ctx, FilterKey, string(f)); err != nil {
		return fmt.Errorf("write filter: %w", err)
	}
	return nil
}

// decodeTasks rejects the whole value when any record is invalid or an id repeats.
func decodeTasks(raw string) ([]model.Task, error) {
	var tasks []model.Task
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		return nil, errors.New("stored tasks value is null")
	}
	seen := make(map[int64]bool, len(tasks))
	for _, t := range tasks {
		if err := t.Validate(); err != nil {
			return nil, err
		}
		if seen[t.ID] {
			return nil, fmt.Errorf("duplicate task id %d", t.ID)
		}
		seen[t.ID] = true
	}
	return tasks, nil
}

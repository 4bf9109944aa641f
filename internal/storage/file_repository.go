package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FileRepository keeps every key in one JSON object on disk. Each write
// replaces the file through a temporary sibling and a rename.
type FileRepository struct {
	mu    sync.Mutex
	path  string
	items map[string]string
}

func OpenFile(path string) (*FileRepository, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, fmt.Errorf("storage: file path is empty")
	}
	items, err := readFileItems(trimmed)
	if err != nil {
		return nil, err
	}
	return &FileRepository{path: trimmed, items: items}, nil
}

func (r *FileRepository) GetItem(_ context.Context, key string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.items[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (r *FileRepository) SetItem(_ context.Context, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	prev, had := r.items[key]
	r.items[key] = value
	if err := r.flushLocked(); err != nil {
		if had {
			r.items[key] = prev
		} else {
			delete(r.items, key)
		}
		return err
	}
	return nil
}

func (r *FileRepository) RemoveItem(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	prev, ok := r.items[key]
	if !ok {
		return ErrNotFound
	}
	delete(r.items, key)
	if err := r.flushLocked(); err != nil {
		r.items[key] = prev
		return err
	}
	return nil
}

func (r *FileRepository) Close() error { return nil }

func (r *FileRepository) flushLocked() error {
	dir := filepath.Dir(r.path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create state directory: %w", err)
		}
	}
	payload, err := json.MarshalIndent(r.items, "", "  ")
	if err != nil {
		return err
	}
	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, append(payload, '\n'), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, r.path)
}

func readFileItems(path string) (map[string]string, error) {
	out := make(map[string]string)
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return out, nil
		}
		return nil, err
	}
	if strings.TrimSpace(string(raw)) == "" {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode state file %s: %w", path, err)
	}
	return out, nil
}

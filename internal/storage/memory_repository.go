package storage

import (
	"context"
	"sync"
)

type MemoryRepository struct {
	mu    sync.Mutex
	items map[string]string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: make(map[string]string)}
}

func (r *MemoryRepository) GetItem(_ context.Context, key string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.items[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (r *MemoryRepository) SetItem(_ context.Context, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[key] = value
	return nil
}

func (r *MemoryRepository) RemoveItem(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[key]; !ok {
		return ErrNotFound
	}
	delete(r.items, key)
	return nil
}

func (r *MemoryRepository) Close() error { return nil }

package kv

import (
	"context"
	"sync"
)

type MemoryRepository struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{data: make(map[string][]byte)}
}

func (r *MemoryRepository) Get(_ context.Context, keys ...string) (map[string][]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[string][]byte, len(keys))
	if len(keys) == 0 {
		for k, v := range r.data {
			result[k] = append([]byte(nil), v...)
		}
		return result, nil
	}
	for _, k := range keys {
		if v, ok := r.data[k]; ok {
			result[k] = append([]byte(nil), v...)
		}
	}
	return result, nil
}

func (r *MemoryRepository) Set(_ context.Context, items map[string][]byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for k, v := range items {
		r.data[k] = append([]byte(nil), v...)
	}
	return nil
}

func (r *MemoryRepository) Clear(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.data = make(map[string][]byte)
	return nil
}

func (r *MemoryRepository) Close() error { return nil }

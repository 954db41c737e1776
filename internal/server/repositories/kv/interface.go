package kv

import "context"

type Repository interface {
	// Get returns the stored values for keys; absent keys are missing from
	// the map. With no keys it returns every stored pair.
	Get(ctx context.Context, keys ...string) (map[string][]byte, error)
	// Set writes all items or none of them.
	Set(ctx context.Context, items map[string][]byte) error
	Clear(ctx context.Context) error
	Close() error
}

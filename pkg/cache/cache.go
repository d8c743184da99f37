package cache

import (
	"context"
	"time"
)

// Store is a JSON value cache. Get reports whether the key was present.
type Store interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Name() string
}

// NopStore never holds anything. It is used when caching is disabled or the
// backing server was unreachable at startup.
type NopStore struct{}

func (NopStore) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	return false, nil
}

func (NopStore) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}

func (NopStore) Delete(ctx context.Context, keys ...string) error {
	return nil
}

func (NopStore) Name() string {
	return "none"
}

package cache

import (
	"context"
	"time"
)

type warnLogger interface {
	Warn(module, message string, details map[string]interface{})
}

// SafeStore wraps a Store so cache failures are logged and treated as misses.
// A broken cache must never fail a request.
type SafeStore struct {
	store Store
	log   warnLogger
}

func NewSafeStore(store Store, log warnLogger) *SafeStore {
	if store == nil {
		store = NopStore{}
	}
	return &SafeStore{store: store, log: log}
}

func (s *SafeStore) Get(ctx context.Context, key string, dest interface{}) bool {
	found, err := s.store.Get(ctx, key, dest)
	if err != nil {
		s.log.Warn("CACHE", "Cache read failed", map[string]interface{}{"key": key, "error": err.Error()})
		return false
	}
	return found
}

func (s *SafeStore) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if err := s.store.Set(ctx, key, value, ttl); err != nil {
		s.log.Warn("CACHE", "Cache write failed", map[string]interface{}{"key": key, "error": err.Error()})
	}
}

func (s *SafeStore) Delete(ctx context.Context, keys ...string) {
	if err := s.store.Delete(ctx, keys...); err != nil {
		s.log.Warn("CACHE", "Cache invalidation failed", map[string]interface{}{"keys": keys, "error": err.Error()})
	}
}

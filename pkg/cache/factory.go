package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type Options struct {
	Driver   string // redis, memory, none
	RedisURL string
	Password string
}

// New builds the store for the configured driver. Redis is pinged once; if it
// does not answer the returned store is a NopStore together with the ping error,
// and caching stays off for the life of the process.
func New(ctx context.Context, opts Options) (Store, *redis.Client, error) {
	switch opts.Driver {
	case "none":
		return NopStore{}, nil, nil
	case "memory":
		return NewMemoryStore(), nil, nil
	}

	redisOpts, err := redis.ParseURL(opts.RedisURL)
	if err != nil {
		return NopStore{}, nil, fmt.Errorf("parse redis url: %w", err)
	}
	if opts.Password != "" {
		redisOpts.Password = opts.Password
	}
	client := redis.NewClient(redisOpts)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return NopStore{}, nil, fmt.Errorf("redis ping: %w", err)
	}
	return NewRedisStore(client), client, nil
}

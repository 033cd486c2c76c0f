package cache

import (
	"context"
	"time"
)

// Noop is a Cache that stores nothing. Used when caching is disabled
// or Redis is unreachable; every Get is a miss.
type Noop struct{}

func NewNoop() *Noop {
	return &Noop{}
}

func (Noop) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	return false, nil
}

func (Noop) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}

func (Noop) Delete(ctx context.Context, keys ...string) error {
	return nil
}

func (Noop) Ping(ctx context.Context) error {
	return nil
}

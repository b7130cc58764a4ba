package cache

import (
	"context"
	"time"
)

// Cache stores JSON values by key. A miss is (false, nil), not an error.
type Cache interface {
	GetJSON(ctx context.Context, key string, dst any) (hit bool, err error)
	SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// Remember reads key through c, calling load on a miss and storing the result
// for ttl. A nil cache always loads. Cache failures never fail the read.
func Remember[T any](ctx context.Context, c Cache, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, error) {
	var v T
	if c != nil {
		if hit, err := c.GetJSON(ctx, key, &v); err == nil && hit {
			return v, nil
		}
	}

	v, err := load(ctx)
	if err != nil {
		return v, err
	}
	if c != nil && ttl > 0 {
		_ = c.SetJSON(ctx, key, v, ttl)
	}
	return v, nil
}

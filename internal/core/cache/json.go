package cache

import (
	"context"
	"encoding/json"
	"time"
)

// GetOrLoadJSON is GetOrLoad for values stored as JSON. An entry that no
// longer decodes into T (e.g. after a field rename) is dropped and rebuilt
// from load.
func GetOrLoadJSON[T any](ctx context.Context, c *Cache, key string, ttl time.Duration,
	load func(context.Context) (*T, error),
) (*T, error) {
	fill := func(ctx context.Context) ([]byte, error) {
		v, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return json.Marshal(v)
	}
	b, err := c.GetOrLoad(ctx, key, ttl, fill)
	if err != nil {
		return nil, err
	}
	out := new(T)
	if json.Unmarshal(b, out) == nil {
		return out, nil
	}

	// 旧格式：删掉重建
	_ = c.Invalidate(ctx, key)
	if b, err = c.GetOrLoad(ctx, key, ttl, fill); err != nil {
		return nil, err
	}
	out = new(T)
	if err := json.Unmarshal(b, out); err != nil {
		return nil, err
	}
	return out, nil
}

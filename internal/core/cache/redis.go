package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

type Cache struct {
	RDB *redis.Client
	sf  singleflight.Group
}

func New(addr, pass string, db int) *Cache {
	return NewWithClient(redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}))
}

func NewWithClient(rdb *redis.Client) *Cache { return &Cache{RDB: rdb} }

func (c *Cache) Ping(ctx context.Context) error { return c.RDB.Ping(ctx).Err() }

func (c *Cache) Close() error { return c.RDB.Close() }

// GetOrLoad returns the cached bytes for key, or runs load once per key across
// concurrent callers and stores its result for ttl.
func (c *Cache) GetOrLoad(ctx context.Context, key string, ttl time.Duration, load func(context.Context) ([]byte, error)) ([]byte, error) {
	if b, err := c.RDB.Get(ctx, key).Bytes(); err == nil {
		return b, nil
	}
	v, err, _ := c.sf.Do(key, func() (any, error) {
		b, e := load(ctx)
		if e != nil {
			return nil, e
		}
		_ = c.RDB.Set(ctx, key, b, ttl).Err()
		return b, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// Generation reads the counter at name, 0 when it is missing or redis is down.
// Callers fold it into their cache keys.
func (c *Cache) Generation(ctx context.Context, name string) int64 {
	n, err := c.RDB.Get(ctx, name).Int64()
	if err != nil {
		return 0
	}
	return n
}

// Bump advances the counter at name. Entries keyed by an older generation are
// never read again, even when a slow loader writes one after the bump; they
// age out by TTL.
func (c *Cache) Bump(ctx context.Context, name string) error {
	return c.RDB.Incr(ctx, name).Err()
}

// Invalidate drops keys; a missing key is not an error.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.RDB.Del(ctx, keys...).Err()
}

package redisad

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"hotelavail/internal/adapters/observability"
)

// Cache stores rendered response bodies as raw bytes. Bodies are already
// serialized JSON, so no codec sits between the service and Redis.
type Cache struct{ c *redis.Client }

func New(addr, pass string, db int) *Cache {
	return &Cache{c: redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db})}
}

func (r *Cache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	v, err := r.c.Get(ctx, key).Bytes()
	if err == redis.Nil {
		observability.ObserveCache("redis", "miss")
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	observability.ObserveCache("redis", "hit")
	return v, true, nil
}

func (r *Cache) Set(ctx context.Context, key string, body []byte, ttlSec int) error {
	observability.ObserveCache("redis", "set")
	return r.c.Set(ctx, key, body, time.Duration(ttlSec)*time.Second).Err()
}

// Ping verifies connectivity at startup so a bad Redis address fails loudly
// instead of silently disabling the cache.
func (r *Cache) Ping(ctx context.Context) error {
	return r.c.Ping(ctx).Err()
}

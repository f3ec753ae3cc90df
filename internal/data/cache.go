package data

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/redis/go-redis/v9"

	"github.com/retail-pulse/analytics/internal/biz"
	"github.com/retail-pulse/analytics/internal/conf"
)

// redisCache is the redis-backed dashboard response cache.
// Values are stored as JSON under "<prefix>:<key>" with the configured TTL.
type redisCache struct {
	rdb    *redis.Client
	prefix string
	log    *log.Helper
}

// NewCache creates the biz.Cache backed by redis.
func NewCache(d *Data, c *conf.Data, logger log.Logger) biz.Cache {
	var cacheConf *conf.Cache
	if c != nil {
		cacheConf = c.Cache
	}
	return &redisCache{
		rdb:    d.Redis(),
		prefix: cacheConf.GetKeyPrefix(),
		log:    log.NewHelper(log.With(logger, "module", "data/cache")),
	}
}

func (c *redisCache) key(k string) string {
	return c.prefix + ":" + k
}

func (c *redisCache) Get(ctx context.Context, key string, out any) (bool, error) {
	raw, err := c.rdb.Get(ctx, c.key(key)).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache get %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		// A stale or incompatible entry behaves like a miss.
		c.log.WithContext(ctx).Warnf("cache entry %s is not decodable: %v", key, err)
		return false, nil
	}
	return true, nil
}

func (c *redisCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("cache set %s: ttl must be positive, got %s", key, ttl)
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key, err)
	}
	if err := c.rdb.Set(ctx, c.key(key), raw, ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

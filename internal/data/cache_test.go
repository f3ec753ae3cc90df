//go:build integration

// Integration tests that require a local redis.
// Run with: go test -tags=integration ./internal/data/...

package data

import (
	"context"
	"testing"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retail-pulse/analytics/internal/biz"
	"github.com/retail-pulse/analytics/internal/conf"
)

func newTestCache(t *testing.T) biz.Cache {
	t.Helper()

	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:6379"})
	require.NoError(t, rdb.Ping(context.Background()).Err())
	t.Cleanup(func() { _ = rdb.Close() })

	d := &Data{rdb: rdb}
	return NewCache(d, &conf.Data{Cache: &conf.Cache{KeyPrefix: "retailpulse_test"}}, log.DefaultLogger)
}

func TestRedisCache_RoundTrip(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	in := biz.Summary{GrossRevenue: 1234.56, TotalOrders: 10, UniqueCustomers: 7, AvgOrderValue: 123.46}
	require.NoError(t, cache.Set(ctx, "summary:abc", in, time.Minute))

	var out biz.Summary
	ok, err := cache.Get(ctx, "summary:abc", &out)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, in, out)
}

func TestRedisCache_Miss(t *testing.T) {
	cache := newTestCache(t)

	var out biz.Summary
	ok, err := cache.Get(context.Background(), "summary:never-set", &out)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisCache_TTLExpires(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "summary:short", biz.Summary{GrossRevenue: 1}, 100*time.Millisecond))
	time.Sleep(200 * time.Millisecond)

	var out biz.Summary
	ok, err := cache.Get(ctx, "summary:short", &out)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisCache_RejectsNonPositiveTTL(t *testing.T) {
	cache := newTestCache(t)
	assert.Error(t, cache.Set(context.Background(), "summary:zero", biz.Summary{}, 0))
}

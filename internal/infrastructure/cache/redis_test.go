package cache

import (
	"context"
	"testing"
	"time"

	"github.com/ceodigitcare/fastflow01-sub002/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// unreachableClient points at a closed port so every command fails fast
func unreachableClient(t *testing.T) *redis.Client {
	t.Helper()
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRedisIdempotencyStore_WrapsErrors(t *testing.T) {
	store := NewRedisIdempotencyStore(unreachableClient(t), "")
	ctx := context.Background()

	_, err := store.MarkProcessed(ctx, "k", time.Minute)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to mark idempotency key")

	_, err = store.IsProcessed(ctx, "k")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to check idempotency key")

	assert.ErrorContains(t, store.Release(ctx, "k"), "failed to release idempotency key")

	assert.NoError(t, store.Close())
}

func TestRedisChartCache_WrapsErrors(t *testing.T) {
	cache := NewRedisChartCache(unreachableClient(t), 0)
	ctx := context.Background()
	storeID := uuid.New()

	assert.Equal(t, defaultChartTTL, cache.ttl)
	assert.Equal(t, "storefront:chart:"+storeID.String(), cache.key(storeID))

	_, err := cache.Get(ctx, storeID)
	assert.ErrorContains(t, err, "failed to read chart cache")
	assert.ErrorContains(t, cache.Invalidate(ctx, storeID), "failed to invalidate chart cache")
}

func TestStoresFactory(t *testing.T) {
	ctx := context.Background()

	t.Run("redis disabled uses memory", func(t *testing.T) {
		stores, err := NewStoresFactory(config.RedisConfig{Enabled: false}).Create(ctx)
		require.NoError(t, err)
		defer stores.Close()

		assert.IsType(t, &InMemoryIdempotencyStore{}, stores.Idempotency)
		assert.Nil(t, stores.ChartCache)
		assert.NoError(t, stores.Ping(ctx))
	})

	t.Run("unreachable redis falls back", func(t *testing.T) {
		cfg := config.RedisConfig{Enabled: true, Host: "127.0.0.1", Port: 1}
		stores, err := NewStoresFactory(cfg, WithLogger(zaptest.NewLogger(t))).Create(ctx)
		require.NoError(t, err)
		defer stores.Close()

		assert.IsType(t, &InMemoryIdempotencyStore{}, stores.Idempotency)
	})

	t.Run("fallback can be refused", func(t *testing.T) {
		cfg := config.RedisConfig{Enabled: true, Host: "127.0.0.1", Port: 1}
		_, err := NewStoresFactory(cfg, WithInMemoryFallback(false)).Create(ctx)
		assert.ErrorContains(t, err, "redis required but unavailable")
	})
}

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	financeapp "github.com/ceodigitcare/fastflow01-sub002/internal/application/finance"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	defaultChartPrefix = "storefront:chart:"
	defaultChartTTL    = 10 * time.Minute
)

// RedisChartCache keeps chart-of-accounts snapshots in Redis as JSON
type RedisChartCache struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// NewRedisChartCache creates a chart cache. A zero ttl uses ten minutes.
func NewRedisChartCache(client *redis.Client, ttl time.Duration) *RedisChartCache {
	if ttl <= 0 {
		ttl = defaultChartTTL
	}
	return &RedisChartCache{client: client, keyPrefix: defaultChartPrefix, ttl: ttl}
}

func (c *RedisChartCache) key(storeID uuid.UUID) string {
	return c.keyPrefix + storeID.String()
}

// Get returns nil on a miss
func (c *RedisChartCache) Get(ctx context.Context, storeID uuid.UUID) (*financeapp.ChartSnapshot, error) {
	data, err := c.client.Get(ctx, c.key(storeID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read chart cache: %w", err)
	}
	var snapshot financeapp.ChartSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode chart cache: %w", err)
	}
	return &snapshot, nil
}

// Set stores a snapshot for the cache TTL
func (c *RedisChartCache) Set(ctx context.Context, storeID uuid.UUID, snapshot *financeapp.ChartSnapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode chart cache: %w", err)
	}
	if err := c.client.Set(ctx, c.key(storeID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write chart cache: %w", err)
	}
	return nil
}

// Invalidate drops the store's snapshot
func (c *RedisChartCache) Invalidate(ctx context.Context, storeID uuid.UUID) error {
	if err := c.client.Del(ctx, c.key(storeID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate chart cache: %w", err)
	}
	return nil
}

var _ financeapp.ChartCache = (*RedisChartCache)(nil)

package cache

import (
	"context"
	"fmt"

	"github.com/ceodigitcare/fastflow01-sub002/internal/application/finance"
	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/shared"
	"github.com/ceodigitcare/fastflow01-sub002/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Stores bundles the cache-backed collaborators handed to the services.
// ChartCache is nil when Redis is not in use.
type Stores struct {
	Idempotency shared.IdempotencyStore
	ChartCache  finance.ChartCache
	client      *redis.Client
}

// Close releases the idempotency store and the Redis client
func (s *Stores) Close() error {
	err := s.Idempotency.Close()
	if s.client != nil {
		if cerr := s.client.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// Ping checks the Redis connection. It is a no-op for in-memory stores.
func (s *Stores) Ping(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Ping(ctx).Err()
}

// StoresFactory creates cache stores based on configuration
type StoresFactory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// StoresFactoryOption is a functional option for configuring the factory
type StoresFactoryOption func(*StoresFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) StoresFactoryOption {
	return func(f *StoresFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to in-memory stores
// when Redis is unavailable. Default is true.
func WithInMemoryFallback(allow bool) StoresFactoryOption {
	return func(f *StoresFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewStoresFactory creates a new factory
func NewStoresFactory(cfg config.RedisConfig, opts ...StoresFactoryOption) *StoresFactory {
	f := &StoresFactory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Create returns Redis-backed stores when Redis is enabled and reachable,
// otherwise an in-memory idempotency store and no chart cache
func (f *StoresFactory) Create(ctx context.Context) (*Stores, error) {
	if !f.redisConfig.Enabled {
		f.logger.Info("Redis disabled, using in-memory idempotency store")
		return &Stores{Idempotency: NewInMemoryIdempotencyStore()}, nil
	}

	client, err := NewRedisClient(ctx, f.redisConfig)
	if err == nil {
		f.logger.Info("using Redis idempotency store and chart cache", zap.String("addr", f.redisConfig.Addr()))
		return &Stores{
			Idempotency: NewRedisIdempotencyStore(client, ""),
			ChartCache:  NewRedisChartCache(client, 0),
			client:      client,
		}, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("redis required but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory idempotency store. "+
		"Submission keys will not be shared between instances.",
		zap.Error(err),
	)
	return &Stores{Idempotency: NewInMemoryIdempotencyStore()}, nil
}

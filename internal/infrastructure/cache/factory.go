package cache

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	applivestock "github.com/livestock/backend/internal/application/livestock"
	"github.com/livestock/backend/internal/domain/livestock"
	"github.com/livestock/backend/internal/infrastructure/config"
)

// QueryCache is an application QueryCache that owns resources
type QueryCache interface {
	applivestock.QueryCache
	Close() error
}

// QueryCacheFactory creates query caches based on configuration
type QueryCacheFactory struct {
	cacheConfig           config.CacheConfig
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// QueryCacheFactoryOption is a functional option for configuring the factory
type QueryCacheFactoryOption func(*QueryCacheFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) QueryCacheFactoryOption {
	return func(f *QueryCacheFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to the in-memory cache when Redis is unavailable.
// Default is true.
func WithInMemoryFallback(allow bool) QueryCacheFactoryOption {
	return func(f *QueryCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewQueryCacheFactory creates a new factory
func NewQueryCacheFactory(cacheCfg config.CacheConfig, redisCfg config.RedisConfig, opts ...QueryCacheFactoryOption) *QueryCacheFactory {
	f := &QueryCacheFactory{
		cacheConfig:           cacheCfg,
		redisConfig:           redisCfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateCache returns the configured cache:
//   - a no-op cache when caching is disabled
//   - an in-memory cache for the memory backend
//   - a Redis cache for the redis backend, or an in-memory cache when Redis is
//     unreachable and fallback is allowed
func (f *QueryCacheFactory) CreateCache() (QueryCache, error) {
	if !f.cacheConfig.Enabled {
		f.logger.Info("Query cache disabled")
		return disabledCache{}, nil
	}

	if f.cacheConfig.Backend == config.CacheBackendMemory {
		f.logger.Info("Using in-memory query cache", zap.Duration("ttl", f.cacheConfig.TTL))
		return NewInMemoryQueryCache(f.cacheConfig.TTL), nil
	}

	redisCache, err := NewRedisQueryCache(f.redisConfig, f.cacheConfig.TTL)
	if err == nil {
		f.logger.Info("Using Redis query cache",
			zap.String("addr", f.redisConfig.Addr()),
			zap.Duration("ttl", f.cacheConfig.TTL))
		return redisCache, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("redis required for query cache but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory query cache. "+
		"Invalidations will not be shared between instances.",
		zap.Error(err),
	)
	return NewInMemoryQueryCache(f.cacheConfig.TTL), nil
}

// disabledCache never stores anything
type disabledCache struct{}

func (disabledCache) Get(context.Context, string, any) error { return applivestock.ErrCacheMiss }

func (disabledCache) Set(context.Context, string, any) error { return nil }

func (disabledCache) InvalidateScope(context.Context, int64, livestock.Category) error { return nil }

func (disabledCache) Close() error { return nil }

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	applivestock "github.com/livestock/backend/internal/application/livestock"
	"github.com/livestock/backend/internal/domain/livestock"
	"github.com/livestock/backend/internal/infrastructure/config"
)

const (
	redisConnectTimeout = 5 * time.Second
	redisScanCount      = 100
)

// RedisQueryCache implements QueryCache using Redis.
// It is suitable for multi-instance deployments, which then share invalidations.
type RedisQueryCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisQueryCache connects to Redis and verifies the connection with PING
func NewRedisQueryCache(cfg config.RedisConfig, ttl time.Duration) (*RedisQueryCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisConnectTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisQueryCacheWithClient(client, ttl), nil
}

// NewRedisQueryCacheWithClient creates a cache over an existing client
func NewRedisQueryCacheWithClient(client *redis.Client, ttl time.Duration) *RedisQueryCache {
	return &RedisQueryCache{client: client, ttl: ttl}
}

// Get decodes the value under key into dest
func (c *RedisQueryCache) Get(ctx context.Context, key string, dest any) error {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return applivestock.ErrCacheMiss
	}
	if err != nil {
		return fmt.Errorf("redis get %s: %w", key, err)
	}
	return json.Unmarshal(data, dest)
}

// Set stores value under key with the configured TTL
func (c *RedisQueryCache) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// InvalidateScope SCANs the scope prefix and deletes each batch of matches
func (c *RedisQueryCache) InvalidateScope(ctx context.Context, userID int64, category livestock.Category) error {
	pattern := applivestock.ScopePrefix(userID, category) + "*"
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, pattern, redisScanCount).Result()
		if err != nil {
			return fmt.Errorf("redis scan %s: %w", pattern, err)
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("redis del: %w", err)
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

// Close closes the Redis client
func (c *RedisQueryCache) Close() error {
	return c.client.Close()
}

// Client returns the underlying Redis client
func (c *RedisQueryCache) Client() *redis.Client {
	return c.client
}

var _ applivestock.QueryCache = (*RedisQueryCache)(nil)

package livestock

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/livestock/backend/internal/domain/livestock"
)

// ErrCacheMiss is returned by QueryCache.Get when the key holds no value
var ErrCacheMiss = errors.New("cache miss")

// Cached read operations, used as the <op> segment of cache keys
const (
	CacheOpCount            = "count"
	CacheOpEvents           = "events"
	CacheOpProfit           = "profit"
	CacheOpExpenses         = "expenses"
	CacheOpExpenseSummaries = "expense-summaries"
)

// QueryCache memoizes read-side results. Values are stored as JSON.
type QueryCache interface {
	// Get decodes the value stored under key into dest, or returns ErrCacheMiss
	Get(ctx context.Context, key string, dest any) error
	// Set stores value under key
	Set(ctx context.Context, key string, value any) error
	// InvalidateScope removes every key of a (user, category) scope
	InvalidateScope(ctx context.Context, userID int64, category livestock.Category) error
}

// ScopePrefix returns the key prefix shared by every cached result of a (user, category)
func ScopePrefix(userID int64, category livestock.Category) string {
	return fmt.Sprintf("livestock:%d:%s:", userID, category)
}

// CacheKey builds livestock:<user>:<category>:<op>:<filters>. Empty filters are kept
// so that positions stay stable.
func CacheKey(userID int64, category livestock.Category, op string, filters ...string) string {
	return ScopePrefix(userID, category) + op + ":" + strings.Join(filters, ":")
}

// scopeGenerations counts invalidations per scope. Cache keys carry the
// generation they were computed under, so a result loaded before an
// invalidation is stored under a key that later reads never ask for.
type scopeGenerations struct {
	counters sync.Map // scope prefix -> *atomic.Uint64
}

func (g *scopeGenerations) counter(scope string) *atomic.Uint64 {
	c, _ := g.counters.LoadOrStore(scope, new(atomic.Uint64))
	return c.(*atomic.Uint64)
}

func (g *scopeGenerations) current(scope string) uint64 {
	return g.counter(scope).Load()
}

func (g *scopeGenerations) bump(scope string) {
	g.counter(scope).Add(1)
}

type noopCache struct{}

func (noopCache) Get(context.Context, string, any) error { return ErrCacheMiss }

func (noopCache) Set(context.Context, string, any) error { return nil }

func (noopCache) InvalidateScope(context.Context, int64, livestock.Category) error { return nil }

// cachedQuery serves key from the cache, or runs load and stores its result.
// Cache failures are logged and never fail the query.
func cachedQuery[T any](ctx context.Context, cache QueryCache, log *zap.Logger, key string, load func() (T, error)) (T, error) {
	var cached T
	err := cache.Get(ctx, key, &cached)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		log.Warn("Query cache read failed", zap.String("key", key), zap.Error(err))
	}

	value, err := load()
	if err != nil {
		return value, err
	}
	if err := cache.Set(ctx, key, value); err != nil {
		log.Warn("Query cache write failed", zap.String("key", key), zap.Error(err))
	}
	return value, nil
}

package cache

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	applivestock "github.com/livestock/backend/internal/application/livestock"
	"github.com/livestock/backend/internal/domain/livestock"
)

const inMemoryCleanupInterval = 5 * time.Minute

// entry is a JSON-encoded value with its expiry. A zero expiresAt never expires.
type entry struct {
	value     []byte
	expiresAt time.Time
}

func (e *entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// InMemoryQueryCache implements QueryCache in process memory.
// It is suitable for single-instance deployments and tests; instances do not
// share invalidations.
type InMemoryQueryCache struct {
	entries   sync.Map // string -> *entry
	ttl       time.Duration
	now       func() time.Time
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemoryQueryCache creates an in-memory cache whose entries live for ttl.
// It starts a background goroutine to drop expired entries; call Close to stop it.
func NewInMemoryQueryCache(ttl time.Duration) *InMemoryQueryCache {
	c := &InMemoryQueryCache{
		ttl:      ttl,
		now:      time.Now,
		stopChan: make(chan struct{}),
	}
	c.wg.Add(1)
	go c.cleanupLoop()
	return c
}

// Get decodes the live value under key into dest
func (c *InMemoryQueryCache) Get(_ context.Context, key string, dest any) error {
	raw, ok := c.entries.Load(key)
	if !ok {
		return applivestock.ErrCacheMiss
	}
	e := raw.(*entry)
	if e.expired(c.now()) {
		c.entries.CompareAndDelete(key, raw)
		return applivestock.ErrCacheMiss
	}
	return json.Unmarshal(e.value, dest)
}

// Set stores value under key
func (c *InMemoryQueryCache) Set(_ context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	e := &entry{value: data}
	if c.ttl > 0 {
		e.expiresAt = c.now().Add(c.ttl)
	}
	c.entries.Store(key, e)
	return nil
}

// InvalidateScope deletes every key under the scope prefix
func (c *InMemoryQueryCache) InvalidateScope(_ context.Context, userID int64, category livestock.Category) error {
	prefix := applivestock.ScopePrefix(userID, category)
	c.entries.Range(func(key, _ any) bool {
		if strings.HasPrefix(key.(string), prefix) {
			c.entries.Delete(key)
		}
		return true
	})
	return nil
}

// Len returns the number of stored entries, expired ones included
func (c *InMemoryQueryCache) Len() int {
	n := 0
	c.entries.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// Close stops the cleanup goroutine. Safe to call multiple times.
func (c *InMemoryQueryCache) Close() error {
	c.closeOnce.Do(func() {
		close(c.stopChan)
		c.wg.Wait()
	})
	return nil
}

func (c *InMemoryQueryCache) cleanupLoop() {
	defer c.wg.Done()

	ticker := time.NewTicker(inMemoryCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopChan:
			return
		case <-ticker.C:
			c.cleanup()
		}
	}
}

func (c *InMemoryQueryCache) cleanup() {
	now := c.now()
	c.entries.Range(func(key, raw any) bool {
		if raw.(*entry).expired(now) {
			c.entries.CompareAndDelete(key, raw)
		}
		return true
	})
}

var _ applivestock.QueryCache = (*InMemoryQueryCache)(nil)

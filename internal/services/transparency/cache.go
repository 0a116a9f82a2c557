package transparency

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/j-veylop/gasflow-dashboard-tui/internal/logger"
	"github.com/j-veylop/gasflow-dashboard-tui/internal/models"
)

// Fetcher retrieves a single series.
type Fetcher interface {
	Fetch(ctx context.Context, q Query) (models.NamedSeries, error)
}

// CacheStats summarises cache activity.
type CacheStats struct {
	Entries int
	Hits    int64
	Misses  int64
	Shared  int64
}

type cacheEntry struct {
	series    models.NamedSeries
	fetchedAt time.Time
}

// Cache deduplicates identical in-flight queries and reuses completed results
// for a freshness window. Errors are never cached.
type Cache struct {
	fetcher Fetcher
	ttl     time.Duration
	now     func() time.Time

	mu      sync.RWMutex
	entries map[string]cacheEntry
	group   singleflight.Group

	hits   atomic.Int64
	misses atomic.Int64
	shared atomic.Int64
}

// NewCache wraps fetcher. A ttl of zero disables reuse but keeps deduplication.
func NewCache(fetcher Fetcher, ttl time.Duration) *Cache {
	return &Cache{
		fetcher: fetcher,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
	}
}

// Fetch returns a fresh cached result or fetches it.
func (c *Cache) Fetch(ctx context.Context, q Query) (models.NamedSeries, error) {
	key := q.Key()

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if ok && c.ttl > 0 && c.now().Sub(entry.fetchedAt) < c.ttl {
		c.hits.Add(1)
		return entry.series, nil
	}

	return c.load(ctx, key, q)
}

// Refresh fetches q regardless of any cached result.
func (c *Cache) Refresh(ctx context.Context, q Query) (models.NamedSeries, error) {
	return c.load(ctx, q.Key(), q)
}

func (c *Cache) load(ctx context.Context, key string, q Query) (models.NamedSeries, error) {
	c.misses.Add(1)

	// The fetch is shared by every caller that joins it, so no single caller's
	// cancellation may end it. The client timeout still bounds it.
	fetchCtx := context.WithoutCancel(ctx)

	ch := c.group.DoChan(key, func() (any, error) {
		s, err := c.fetcher.Fetch(fetchCtx, q)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.entries[key] = cacheEntry{series: s, fetchedAt: c.now()}
		c.mu.Unlock()

		logger.Debug("series fetched", "point", q.PointID, "indicator", q.Indicator.String(), "points", s.Len())
		return s, nil
	})

	select {
	case res := <-ch:
		if res.Shared {
			c.shared.Add(1)
		}
		if res.Err != nil {
			return models.NamedSeries{}, res.Err
		}
		return res.Val.(models.NamedSeries), nil
	case <-ctx.Done():
		return models.NamedSeries{}, ctx.Err()
	}
}

// Purge drops every cached result.
func (c *Cache) Purge() {
	c.mu.Lock()
	c.entries = make(map[string]cacheEntry)
	c.mu.Unlock()
}

// Stats returns a point-in-time view of cache activity.
func (c *Cache) Stats() CacheStats {
	c.mu.RLock()
	n := len(c.entries)
	c.mu.RUnlock()

	return CacheStats{
		Entries: n,
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
		Shared:  c.shared.Load(),
	}
}

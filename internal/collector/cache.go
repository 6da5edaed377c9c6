package collector

import (
	"context"
	"sync"
	"time"

	"B3Radar/internal/model"
)

// Entry is a cached series and the moment it was stored.
type Entry struct {
	Series     *model.PriceSeries
	InsertedAt time.Time
}

// IsFresh reports whether the entry is younger than ttl at now.
func IsFresh(e Entry, now time.Time, ttl time.Duration) bool {
	return e.Series != nil && now.Sub(e.InsertedAt) < ttl
}

// Cache is a ticker-keyed store of fetched series. It is safe for concurrent use.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

func NewCache() *Cache {
	return &Cache{entries: make(map[string]Entry)}
}

func (c *Cache) Get(ticker string) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[ticker]
	return e, ok
}

func (c *Cache) Put(ticker string, e Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[ticker] = e
}

// Len returns the number of cached tickers.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// CachedFetcher serves fresh series from the cache and delegates the rest.
type CachedFetcher struct {
	Next  Fetcher
	Cache *Cache
	TTL   time.Duration
	Now   func() time.Time
}

// NewCachedFetcher wraps next with a TTL cache.
func NewCachedFetcher(next Fetcher, ttl time.Duration) *CachedFetcher {
	return &CachedFetcher{Next: next, Cache: NewCache(), TTL: ttl, Now: time.Now}
}

func (f *CachedFetcher) Name() string { return f.Next.Name() + "+cache" }

func (f *CachedFetcher) FetchSeries(ctx context.Context, ticker string) (*model.PriceSeries, error) {
	now := f.Now()
	if e, ok := f.Cache.Get(ticker); ok && IsFresh(e, now, f.TTL) {
		return e.Series, nil
	}
	series, err := f.Next.FetchSeries(ctx, ticker)
	if err != nil {
		return nil, err
	}
	f.Cache.Put(ticker, Entry{Series: series, InsertedAt: now})
	return series, nil
}

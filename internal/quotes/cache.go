package quotes

import (
	"sync"
	"time"
)

// DefaultCacheDuration is the freshness window for cached quotes.
const DefaultCacheDuration = 5 * time.Minute

type cacheEntry struct {
	quote     *StockQuote
	fetchedAt time.Time
}

// Cache holds the last successfully fetched quote per symbol. Entries past
// the configured duration are expired but retained for stale-serve fallback.
type Cache struct {
	mu       sync.RWMutex
	entries  map[string]cacheEntry
	duration time.Duration
	now      func() time.Time
}

// NewCache creates a Cache with the given freshness duration.
// A non-positive duration falls back to the default.
func NewCache(duration time.Duration) *Cache {
	if duration <= 0 {
		duration = DefaultCacheDuration
	}
	return &Cache{
		entries:  make(map[string]cacheEntry),
		duration: duration,
		now:      time.Now,
	}
}

// Get returns the cached quote for symbol together with whether the entry is
// still fresh. A nil quote means no entry exists at all.
func (c *Cache) Get(symbol string) (quote *StockQuote, fresh bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[symbol]
	if !ok {
		return nil, false
	}
	return entry.quote, c.now().Sub(entry.fetchedAt) <= c.duration
}

// Put stores a freshly fetched quote for symbol.
func (c *Cache) Put(symbol string, quote *StockQuote) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[symbol] = cacheEntry{quote: quote, fetchedAt: c.now()}
}

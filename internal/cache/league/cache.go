// Package league provides the in-process TTL cache for per-league market
// snapshots. The cache lives for the lifetime of one process and is never
// persisted or shared across instances.
package league

import (
	"sync"
	"time"

	"github.com/kalshme/kalshme/internal/domain"
)

// DefaultTTL is the window during which a league's markets are served from
// memory instead of the exchange.
const DefaultTTL = 5 * time.Minute

type entry struct {
	markets  []domain.Market
	storedAt time.Time
}

// Cache maps a league to its most recently fetched markets. Expiry is lazy:
// an entry past its TTL is deleted as a side effect of the read that finds
// it stale; there is no background eviction. Concurrent fetches for the same
// league may both write; last write wins, which is harmless for idempotent
// reads of the same upstream resource.
type Cache struct {
	mu      sync.Mutex
	entries map[domain.League]entry
	ttl     time.Duration
	now     func() time.Time
}

// New creates a Cache with the given TTL. The clock is injected so tests can
// drive expiry deterministically; pass time.Now in production. A nil clock
// or non-positive TTL falls back to the defaults.
func New(ttl time.Duration, now func() time.Time) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if now == nil {
		now = time.Now
	}
	return &Cache{
		entries: make(map[domain.League]entry),
		ttl:     ttl,
		now:     now,
	}
}

// Get returns the cached markets for a league. The second return is false on
// a miss, including the case where the entry just expired; an expired entry
// is removed before returning.
func (c *Cache) Get(lg domain.League) ([]domain.Market, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[lg]
	if !ok {
		return nil, false
	}

	if c.now().Sub(e.storedAt) > c.ttl {
		delete(c.entries, lg)
		return nil, false
	}

	return e.markets, true
}

// Set stores a league's markets, overwriting any previous entry.
func (c *Cache) Set(lg domain.League, markets []domain.Market) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[lg] = entry{
		markets:  markets,
		storedAt: c.now(),
	}
}

// Len reports the number of live entries, counting stale ones that have not
// been read (and therefore not yet evicted).
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

package evvclient

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// readCache is an advisory in-memory cache for GET responses. Entries
// younger than the TTL may be served without a network call; correctness
// never depends on a hit.
type readCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	ttl     time.Duration
	clock   clock.Clock
}

type cacheEntry struct {
	payload  []byte
	cachedAt time.Time
}

func newReadCache(ttl time.Duration, clk clock.Clock) *readCache {
	return &readCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		clock:   clk,
	}
}

func (c *readCache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.clock.Now().Sub(entry.cachedAt) >= c.ttl {
		delete(c.entries, key)
		return nil, false
	}
	return entry.payload, true
}

func (c *readCache) Set(key string, payload []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{
		payload:  payload,
		cachedAt: c.clock.Now(),
	}
}

func (c *readCache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

func (c *readCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
}

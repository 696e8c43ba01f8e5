// Package resultcache stores aggregate scan results keyed by identifier for a
// limited time.
package resultcache

import (
	"fmt"
	"sync"
	"time"

	"handlescan/pkg/domain"

	"github.com/hashicorp/golang-lru/v2/simplelru"
	"github.com/jonboulle/clockwork"
)

// DefaultMaxEntries bounds the cache when no explicit size is configured.
const DefaultMaxEntries = 10000

type entry struct {
	storedAt time.Time
	result   domain.ScanResult
}

// Cache is a TTL cache with least-recently-used eviction. A single mutex
// covers every read and write. Expired entries are deleted when read.
type Cache struct {
	ttl   time.Duration
	clock clockwork.Clock

	mu      sync.Mutex
	entries *simplelru.LRU[string, entry]
}

// New creates a cache whose entries are valid for ttl and which holds at most
// maxEntries identifiers. A ttl of zero makes every entry immediately stale.
func New(ttl time.Duration, maxEntries int, clock clockwork.Clock) (*Cache, error) {
	if ttl < 0 {
		return nil, fmt.Errorf("cache ttl must not be negative, got %s", ttl)
	}
	if maxEntries < 1 {
		return nil, fmt.Errorf("cache size must be >= 1, got %d", maxEntries)
	}

	lru, err := simplelru.NewLRU[string, entry](maxEntries, nil)
	if err != nil {
		return nil, fmt.Errorf("could not create lru: %w", err)
	}

	return &Cache{
		ttl:     ttl,
		clock:   clock,
		entries: lru,
	}, nil
}

// Get returns a copy of the cached result for identifier if one was stored
// less than ttl ago.
func (c *Cache) Get(identifier string) (domain.ScanResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries.Get(identifier)
	if !ok {
		return domain.ScanResult{}, false
	}
	if c.clock.Since(e.storedAt) >= c.ttl {
		c.entries.Remove(identifier)

		return domain.ScanResult{}, false
	}

	return e.result.Clone(), true
}

// Put stores a copy of result for identifier, replacing any previous entry.
func (c *Cache) Put(identifier string, result domain.ScanResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries.Add(identifier, entry{
		storedAt: c.clock.Now(),
		result:   result.Clone(),
	})
}

// Len returns the number of stored entries, expired ones included until read.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.entries.Len()
}

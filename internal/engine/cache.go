package engine

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/hyperjump/ruigo/internal/models"
)

// ResultCache memoizes ranked similarity results keyed by the canonical
// query string. Entries carry the corpus snapshot version they were computed
// against; a version mismatch is a miss, so results from a replaced corpus
// are never served even if a purge races a reload.
type ResultCache struct {
	cache  *lru.Cache[string, cachedEntry]
	hits   atomic.Int64
	misses atomic.Int64
}

type cachedEntry struct {
	version uint64
	results []*models.SimilarWord
}

// NewResultCache creates a cache with the given capacity.
// Capacity must be positive; non-positive values fall back to 1.
func NewResultCache(capacity int) *ResultCache {
	if capacity <= 0 {
		capacity = 1
	}
	c, _ := lru.New[string, cachedEntry](capacity)
	return &ResultCache{cache: c}
}

// Get returns the cached results for key if present and computed against
// snapshot version. Stale entries are removed on access.
func (c *ResultCache) Get(version uint64, key string) ([]*models.SimilarWord, bool) {
	entry, ok := c.cache.Get(key)
	if !ok {
		c.misses.Add(1)
		return nil, false
	}
	if entry.version != version {
		c.cache.Remove(key)
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	return entry.results, true
}

// Set stores results for key computed against snapshot version.
func (c *ResultCache) Set(version uint64, key string, results []*models.SimilarWord) {
	c.cache.Add(key, cachedEntry{version: version, results: results})
}

// Purge drops every entry. Called when the corpus snapshot is replaced.
func (c *ResultCache) Purge() {
	c.cache.Purge()
}

// Len returns the number of cached entries.
func (c *ResultCache) Len() int {
	return c.cache.Len()
}

// Hits returns the number of cache hits since creation.
func (c *ResultCache) Hits() int64 { return c.hits.Load() }

// Misses returns the number of cache misses since creation.
func (c *ResultCache) Misses() int64 { return c.misses.Load() }

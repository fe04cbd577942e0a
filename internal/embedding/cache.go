package embedding

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// EmbeddingCache is a bounded LRU cache for embeddings keyed by token.
// It sits in front of the embedding source so repeated out-of-vocabulary
// queries do not re-run inference.
type EmbeddingCache struct {
	cache *lru.Cache[string, []float32]
}

// NewEmbeddingCache creates a cache with the given capacity.
// Capacity must be positive; non-positive values fall back to 1.
func NewEmbeddingCache(capacity int) *EmbeddingCache {
	if capacity <= 0 {
		capacity = 1
	}
	c, _ := lru.New[string, []float32](capacity)
	return &EmbeddingCache{cache: c}
}

// Get returns the cached embedding for token if present.
func (c *EmbeddingCache) Get(token string) ([]float32, bool) {
	return c.cache.Get(token)
}

// Set stores the embedding for token, evicting the least recently used
// entry if at capacity.
func (c *EmbeddingCache) Set(token string, value []float32) {
	c.cache.Add(token, value)
}

// Len returns the number of cached embeddings.
func (c *EmbeddingCache) Len() int {
	return c.cache.Len()
}

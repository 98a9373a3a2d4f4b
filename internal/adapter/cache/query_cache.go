package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
	"time"

	"carerag/internal/domain"
	"carerag/internal/port"
)

// QueryCache is a bounded LRU cache of retrieval results with a TTL.
// Entries are tagged with the knowledge index generation they were computed
// against; a lookup under a different generation is a miss.
type QueryCache struct {
	mu      sync.RWMutex
	entries map[string]*cacheEntry
	order   []string
	maxSize int
	ttl     time.Duration
	now     func() time.Time
}

type cacheEntry struct {
	hits       []domain.ScoredHit
	timestamp  time.Time
	generation uint64
}

func NewQueryCache(maxSize int, ttl time.Duration) *QueryCache {
	if maxSize <= 0 {
		maxSize = 100
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &QueryCache{
		entries: make(map[string]*cacheEntry),
		order:   make([]string, 0, maxSize),
		maxSize: maxSize,
		ttl:     ttl,
		now:     time.Now,
	}
}

func cacheKey(query string, topK int) string {
	data := []byte(strings.ToLower(query))
	data = append(data, 0, byte(topK>>8), byte(topK))
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:16])
}

func (c *QueryCache) Get(query string, topK int, generation uint64) ([]domain.ScoredHit, bool) {
	key := cacheKey(query, topK)

	c.mu.RLock()
	entry, exists := c.entries[key]
	c.mu.RUnlock()

	if !exists {
		return nil, false
	}

	if c.now().Sub(entry.timestamp) > c.ttl || entry.generation != generation {
		c.mu.Lock()
		delete(c.entries, key)
		c.removeFromOrder(key)
		c.mu.Unlock()
		return nil, false
	}

	c.mu.Lock()
	c.moveToEnd(key)
	c.mu.Unlock()

	return entry.hits, true
}

func (c *QueryCache) Put(query string, topK int, generation uint64, hits []domain.ScoredHit) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := cacheKey(query, topK)
	entry := &cacheEntry{
		hits:       hits,
		timestamp:  c.now(),
		generation: generation,
	}

	if _, exists := c.entries[key]; exists {
		c.entries[key] = entry
		c.moveToEnd(key)
		return
	}

	if len(c.entries) >= c.maxSize {
		c.evictOldest()
	}

	c.entries[key] = entry
	c.order = append(c.order, key)
}

func (c *QueryCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*cacheEntry)
	c.order = c.order[:0]
}

func (c *QueryCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *QueryCache) evictOldest() {
	if len(c.order) == 0 {
		return
	}
	oldest := c.order[0]
	c.order = c.order[1:]
	delete(c.entries, oldest)
}

func (c *QueryCache) moveToEnd(key string) {
	c.removeFromOrder(key)
	c.order = append(c.order, key)
}

func (c *QueryCache) removeFromOrder(key string) {
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}

// CachedRetriever memoizes a Retriever per knowledge index generation.
type CachedRetriever struct {
	retriever port.Retriever
	index     port.KnowledgeIndex
	cache     *QueryCache
}

func NewCachedRetriever(retriever port.Retriever, index port.KnowledgeIndex, cache *QueryCache) *CachedRetriever {
	return &CachedRetriever{
		retriever: retriever,
		index:     index,
		cache:     cache,
	}
}

func (r *CachedRetriever) Retrieve(query string, k int) []domain.ScoredHit {
	generation := r.index.Generation()

	if hits, hit := r.cache.Get(query, k, generation); hit {
		return hits
	}

	hits := r.retriever.Retrieve(query, k)
	r.cache.Put(query, k, generation, hits)

	return hits
}

package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carerag/internal/adapter/memstore"
	"carerag/internal/domain"
)

type countingRetriever struct {
	calls int
	hits  []domain.ScoredHit
}

func (r *countingRetriever) Retrieve(query string, k int) []domain.ScoredHit {
	r.calls++
	return r.hits
}

func TestQueryCache_GetPut(t *testing.T) {
	c := NewQueryCache(10, time.Minute)
	hits := []domain.ScoredHit{{Index: 0, Score: 1, Title: "A"}}

	_, ok := c.Get("falls", 5, 1)
	assert.False(t, ok)

	c.Put("falls", 5, 1, hits)
	got, ok := c.Get("falls", 5, 1)
	require.True(t, ok)
	assert.Equal(t, hits, got)

	_, ok = c.Get("falls", 8, 1)
	assert.False(t, ok, "different k must miss")
}

func TestQueryCache_GenerationMismatch(t *testing.T) {
	c := NewQueryCache(10, time.Minute)
	c.Put("falls", 5, 1, []domain.ScoredHit{{Title: "A"}})

	_, ok := c.Get("falls", 5, 2)
	assert.False(t, ok)
	assert.Equal(t, 0, c.Size(), "stale entry should be dropped")
}

func TestQueryCache_TTL(t *testing.T) {
	c := NewQueryCache(10, time.Minute)
	now := time.Now()
	c.now = func() time.Time { return now }

	c.Put("falls", 5, 1, nil)
	now = now.Add(2 * time.Minute)

	_, ok := c.Get("falls", 5, 1)
	assert.False(t, ok)
}

func TestQueryCache_Eviction(t *testing.T) {
	c := NewQueryCache(2, time.Minute)

	c.Put("a", 5, 1, nil)
	c.Put("b", 5, 1, nil)
	_, _ = c.Get("a", 5, 1)
	c.Put("c", 5, 1, nil)

	assert.Equal(t, 2, c.Size())
	_, ok := c.Get("b", 5, 1)
	assert.False(t, ok, "least recently used entry should be evicted")
	_, ok = c.Get("a", 5, 1)
	assert.True(t, ok)
}

func TestQueryCache_Invalidate(t *testing.T) {
	c := NewQueryCache(10, time.Minute)
	c.Put("a", 5, 1, nil)
	c.Invalidate()
	assert.Equal(t, 0, c.Size())
}

func TestCachedRetriever_ReloadInvalidates(t *testing.T) {
	index := memstore.NewKnowledgeIndex()
	index.Replace([]domain.KnowledgeChunk{{Title: "A"}})
	inner := &countingRetriever{hits: []domain.ScoredHit{{Title: "A", Score: 1}}}
	r := NewCachedRetriever(inner, index, NewQueryCache(10, time.Minute))

	r.Retrieve("falls", 5)
	r.Retrieve("falls", 5)
	assert.Equal(t, 1, inner.calls)

	index.Replace([]domain.KnowledgeChunk{{Title: "B"}})
	r.Retrieve("falls", 5)
	assert.Equal(t, 2, inner.calls)
}

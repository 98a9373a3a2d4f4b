package memstore

import (
	"sync/atomic"

	"carerag/internal/domain"
)

// KnowledgeIndex holds the chunked knowledge base in memory.
// It starts empty and is only ever replaced wholesale, so readers always see
// a complete snapshot even while a reload is in progress.
type KnowledgeIndex struct {
	chunks     atomic.Pointer[[]domain.KnowledgeChunk]
	generation atomic.Uint64
}

func NewKnowledgeIndex() *KnowledgeIndex {
	return &KnowledgeIndex{}
}

// Replace swaps in a new set of chunks and bumps the generation.
// The slice must not be modified by the caller afterwards.
func (i *KnowledgeIndex) Replace(chunks []domain.KnowledgeChunk) {
	i.chunks.Store(&chunks)
	i.generation.Add(1)
}

// Chunks returns the current snapshot. Callers must treat it as read-only.
func (i *KnowledgeIndex) Chunks() []domain.KnowledgeChunk {
	p := i.chunks.Load()
	if p == nil {
		return nil
	}
	return *p
}

func (i *KnowledgeIndex) Len() int {
	return len(i.Chunks())
}

// Generation is 0 before the first load and increases on every Replace.
func (i *KnowledgeIndex) Generation() uint64 {
	return i.generation.Load()
}

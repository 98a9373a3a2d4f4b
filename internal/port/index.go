package port

import "carerag/internal/domain"

// KnowledgeIndex is the read side of the in-memory chunk index.
type KnowledgeIndex interface {
	Chunks() []domain.KnowledgeChunk
	Len() int
	Generation() uint64
}

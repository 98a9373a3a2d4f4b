package port

import "carerag/internal/domain"

// Chunker splits a knowledge document into titled chunks.
type Chunker interface {
	Chunk(content string) []domain.KnowledgeChunk
}

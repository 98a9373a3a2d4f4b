package port

import "carerag/internal/domain"

// Retriever ranks knowledge chunks against a query and returns at most k hits.
type Retriever interface {
	Retrieve(query string, k int) []domain.ScoredHit
}

package usecase

import (
	"carerag/internal/domain"
	"carerag/internal/port"
)

const (
	DefaultTopK         = 5
	DefaultDetailedTopK = 8
)

// RetrieveUseCase picks the retrieval breadth for a query and runs the retriever.
type RetrieveUseCase struct {
	retriever    port.Retriever
	topK         int
	detailedTopK int
}

// NewRetrieveUseCase creates a retrieve use case. Non-positive k values fall
// back to 5 and 8.
func NewRetrieveUseCase(retriever port.Retriever, topK, detailedTopK int) *RetrieveUseCase {
	if topK <= 0 {
		topK = DefaultTopK
	}
	if detailedTopK <= 0 {
		detailedTopK = DefaultDetailedTopK
	}
	return &RetrieveUseCase{
		retriever:    retriever,
		topK:         topK,
		detailedTopK: detailedTopK,
	}
}

// TopK is the only place where detail level affects retrieval.
func (u *RetrieveUseCase) TopK(detail domain.Detail) int {
	if detail == domain.DetailDetailed {
		return u.detailedTopK
	}
	return u.topK
}

// Retrieve searches with the breadth implied by the query options.
func (u *RetrieveUseCase) Retrieve(query domain.Query) []domain.ScoredHit {
	return u.retriever.Retrieve(query.Text, u.TopK(query.Options.Normalized().Detail))
}

// RetrieveTopK searches with an explicit k.
func (u *RetrieveUseCase) RetrieveTopK(text string, k int) []domain.ScoredHit {
	return u.retriever.Retrieve(text, k)
}

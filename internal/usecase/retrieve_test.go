package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"carerag/internal/domain"
)

func TestRetrieveUseCase_TopK(t *testing.T) {
	u := NewRetrieveUseCase(&mockRetriever{}, 0, 0)

	assert.Equal(t, 5, u.TopK(domain.DetailBrief))
	assert.Equal(t, 5, u.TopK(domain.DetailStandard))
	assert.Equal(t, 8, u.TopK(domain.DetailDetailed))
	assert.Equal(t, 5, u.TopK(""))
}

func TestRetrieveUseCase_Retrieve(t *testing.T) {
	r := &mockRetriever{}
	hits := []domain.ScoredHit{{Title: "Falls", Score: 1}}
	r.On("Retrieve", "falls", 8).Return(hits).Once()
	r.On("Retrieve", "falls", 5).Return(hits).Once()

	u := NewRetrieveUseCase(r, 0, 0)

	assert.Equal(t, hits, u.Retrieve(domain.Query{Text: "falls", Options: domain.Options{Detail: domain.DetailDetailed}}))
	assert.Equal(t, hits, u.Retrieve(domain.Query{Text: "falls"}))
	r.AssertExpectations(t)
}

func TestRetrieveUseCase_CustomBreadth(t *testing.T) {
	r := &mockRetriever{}
	r.On("Retrieve", "q", 3).Return([]domain.ScoredHit(nil)).Once()

	u := NewRetrieveUseCase(r, 3, 10)
	assert.Equal(t, 10, u.TopK(domain.DetailDetailed))
	assert.Empty(t, u.RetrieveTopK("q", 3))
	r.AssertExpectations(t)
}

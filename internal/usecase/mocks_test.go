package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"carerag/internal/domain"
)

type mockGenerator struct {
	mock.Mock
}

func (m *mockGenerator) Available(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

func (m *mockGenerator) ModelName() string {
	return "mock-model"
}

type mockRetriever struct {
	mock.Mock
}

func (m *mockRetriever) Retrieve(query string, k int) []domain.ScoredHit {
	args := m.Called(query, k)
	hits, _ := args.Get(0).([]domain.ScoredHit)
	return hits
}

package port

import (
	"context"

	"carerag/internal/domain"
)

// Generator is an optional generative language backend.
type Generator interface {
	// Available reports nil when the backend can take prompts right now.
	Available(ctx context.Context) error

	// Generate returns the raw completion for the prompt.
	Generate(ctx context.Context, prompt string) (string, error)

	// ModelName returns the name of the model.
	ModelName() string
}

// Answerer turns a query and its retrieved evidence into answer text.
type Answerer interface {
	Answer(ctx context.Context, query domain.Query, hits []domain.ScoredHit) (string, error)
}

package llm

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

var (
	// ErrModelUnavailable is returned when the endpoint answers but does not serve the model.
	ErrModelUnavailable = errors.New("model not available")
	// ErrEmptyCompletion is returned when the backend returns no choices.
	ErrEmptyCompletion = errors.New("empty completion")
)

// Config configures an OpenAI-compatible chat backend (OpenAI, Ollama /v1, LM Studio).
type Config struct {
	BaseURL     string
	APIKeyEnv   string
	Model       string
	Temperature float32
	MaxTokens   int
}

type chatAPI interface {
	ListModels(ctx context.Context) (openai.ModelsList, error)
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIGenerator implements port.Generator on top of go-openai.
type OpenAIGenerator struct {
	client      chatAPI
	model       string
	temperature float32
	maxTokens   int
}

// NewOpenAIGenerator builds a generator. A missing API key is allowed because
// local OpenAI-compatible servers usually ignore it.
func NewOpenAIGenerator(cfg Config) (*OpenAIGenerator, error) {
	if cfg.Model == "" {
		return nil, fmt.Errorf("generative model is required")
	}

	apiKey := ""
	if cfg.APIKeyEnv != "" {
		apiKey = os.Getenv(cfg.APIKeyEnv)
	}

	clientCfg := openai.DefaultConfig(apiKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	}

	return &OpenAIGenerator{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	}, nil
}

// Available lists the endpoint's models and checks the configured one is served.
func (g *OpenAIGenerator) Available(ctx context.Context) error {
	models, err := g.client.ListModels(ctx)
	if err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	for _, m := range models.Models {
		if m.ID == g.model || strings.TrimSuffix(m.ID, ":latest") == g.model {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrModelUnavailable, g.model)
}

// Generate sends the prompt as a single user message and returns the raw reply.
func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.model,
		Temperature: g.temperature,
		MaxTokens:   g.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}
	return resp.Choices[0].Message.Content, nil
}

func (g *OpenAIGenerator) ModelName() string {
	return g.model
}

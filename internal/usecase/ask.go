package usecase

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"carerag/internal/domain"
	"carerag/internal/port"
)

// GenerativeAnswerer answers through a generative backend using the
// retrieval-augmented prompt. The backend reply is returned untouched.
type GenerativeAnswerer struct {
	generator port.Generator
}

func NewGenerativeAnswerer(generator port.Generator) *GenerativeAnswerer {
	return &GenerativeAnswerer{generator: generator}
}

func (a *GenerativeAnswerer) Answer(ctx context.Context, query domain.Query, hits []domain.ScoredHit) (string, error) {
	prompt := BuildPrompt(query.Text, hits, query.Options)
	answer, err := a.generator.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("generate with %s: %w", a.generator.ModelName(), err)
	}
	return answer, nil
}

// AskUseCase turns a caregiving question into an answer. It retrieves
// evidence, probes the generative backend once, and falls back to the
// rule-based composer whenever the backend is missing, unavailable or fails.
type AskUseCase struct {
	retrieve   *RetrieveUseCase
	generator  port.Generator
	generative port.Answerer
	ruleBased  port.Answerer
	timeout    time.Duration
	logger     *zap.Logger
}

// AskOption configures an AskUseCase.
type AskOption func(*AskUseCase)

// WithGenerator enables the generative path.
func WithGenerator(g port.Generator) AskOption {
	return func(u *AskUseCase) {
		u.generator = g
		u.generative = NewGenerativeAnswerer(g)
	}
}

// WithGenerativeTimeout bounds the probe and the generation together. Zero means no limit.
func WithGenerativeTimeout(d time.Duration) AskOption {
	return func(u *AskUseCase) { u.timeout = d }
}

func WithLogger(l *zap.Logger) AskOption {
	return func(u *AskUseCase) {
		if l != nil {
			u.logger = l
		}
	}
}

func NewAskUseCase(retrieve *RetrieveUseCase, composer *Composer, opts ...AskOption) *AskUseCase {
	u := &AskUseCase{
		retrieve:  retrieve,
		ruleBased: NewRuleBasedAnswerer(composer),
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Ask never fails; every backend problem degrades to the rule-based answer.
func (u *AskUseCase) Ask(ctx context.Context, query domain.Query) domain.Answer {
	query.Options = query.Options.Normalized()
	hits := u.retrieve.Retrieve(query)

	u.logger.Debug("retrieved evidence",
		zap.String("query", query.Text),
		zap.String("detail", string(query.Options.Detail)),
		zap.String("audience", string(query.Options.Audience)),
		zap.Int("hits", len(hits)))

	if text, ok := u.tryGenerative(ctx, query, hits); ok {
		return domain.Answer{Text: text, Source: domain.SourceGenerative, Hits: hits}
	}

	text, _ := u.ruleBased.Answer(ctx, query, hits)
	return domain.Answer{Text: text, Source: domain.SourceRuleBased, Hits: hits}
}

func (u *AskUseCase) tryGenerative(ctx context.Context, query domain.Query, hits []domain.ScoredHit) (string, bool) {
	if u.generator == nil {
		return "", false
	}

	if u.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, u.timeout)
		defer cancel()
	}

	if err := u.generator.Available(ctx); err != nil {
		u.logger.Warn("generative backend not usable, using rule-based answer",
			zap.String("model", u.generator.ModelName()), zap.Error(err))
		return "", false
	}

	text, err := u.generative.Answer(ctx, query, hits)
	if err != nil {
		u.logger.Warn("generative answer failed, using rule-based answer", zap.Error(err))
		return "", false
	}
	return text, true
}

package cli

import (
	"fmt"

	"go.uber.org/zap"

	"carerag/config"
	"carerag/internal/adapter/analyzer"
	"carerag/internal/adapter/cache"
	"carerag/internal/adapter/chunker"
	"carerag/internal/adapter/fs"
	"carerag/internal/adapter/llm"
	"carerag/internal/adapter/memstore"
	"carerag/internal/adapter/retriever"
	"carerag/internal/port"
	"carerag/internal/usecase"
)

// app holds the wired components shared by every command.
type app struct {
	knowledgeRoot string
	index         *memstore.KnowledgeIndex
	walker        *fs.Walker
	loader        *usecase.LoadUseCase
	retrieve      *usecase.RetrieveUseCase
	ask           *usecase.AskUseCase
	generator     port.Generator
}

func newApp(cfg *config.Config, dir string, logger *zap.Logger) (*app, error) {
	knowledgeRoot := cfg.KnowledgeRoot(dir)

	tokenizer := analyzer.NewTokenizer()
	index := memstore.NewKnowledgeIndex()
	walker := fs.NewWalker(cfg.Knowledge.Includes, cfg.Knowledge.Excludes)
	loader := usecase.NewLoadUseCase(
		knowledgeRoot,
		index,
		walker,
		fs.FileReader{},
		chunker.NewMarkdownChunker(tokenizer),
		logger.Named("loader"),
	)

	var r port.Retriever = retriever.NewKeywordRetriever(
		index, tokenizer, retriever.NewQueryExpander(retriever.DefaultSynonyms))
	if cfg.Retrieve.CacheSize > 0 {
		r = cache.NewCachedRetriever(r, index, cache.NewQueryCache(cfg.Retrieve.CacheSize, cfg.Retrieve.CacheTTL()))
	}
	retrieveUC := usecase.NewRetrieveUseCase(r, cfg.Retrieve.TopK, cfg.Retrieve.DetailedTopK)

	askOpts := []usecase.AskOption{
		usecase.WithLogger(logger.Named("ask")),
		usecase.WithGenerativeTimeout(cfg.Generative.Timeout()),
	}

	var generator port.Generator
	if cfg.Generative.Enabled {
		g, err := llm.NewOpenAIGenerator(llm.Config{
			BaseURL:     cfg.Generative.BaseURL,
			APIKeyEnv:   cfg.Generative.APIKeyEnv,
			Model:       cfg.Generative.Model,
			Temperature: cfg.Generative.Temperature,
			MaxTokens:   cfg.Generative.MaxTokens,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create generative backend: %w", err)
		}
		generator = g
		askOpts = append(askOpts, usecase.WithGenerator(g))
	}

	return &app{
		knowledgeRoot: knowledgeRoot,
		index:         index,
		walker:        walker,
		loader:        loader,
		retrieve:      retrieveUC,
		ask:           usecase.NewAskUseCase(retrieveUC, usecase.NewComposer(nil), askOpts...),
		generator:     generator,
	}, nil
}

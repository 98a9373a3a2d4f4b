//go:build js && wasm

package main

import (
	"context"
	"encoding/json"
	"syscall/js"

	"go.uber.org/zap"

	"carerag/internal/adapter/analyzer"
	"carerag/internal/adapter/chunker"
	"carerag/internal/adapter/fs"
	"carerag/internal/adapter/memstore"
	"carerag/internal/adapter/retriever"
	"carerag/internal/domain"
	"carerag/internal/presenter"
	"carerag/internal/usecase"
)

var (
	index    *memstore.KnowledgeIndex
	loader   *usecase.LoadUseCase
	retrieve *usecase.RetrieveUseCase
	ask      *usecase.AskUseCase
)

func init() {
	tokenizer := analyzer.NewTokenizer()
	index = memstore.NewKnowledgeIndex()
	loader = usecase.NewLoadUseCase("", index, fs.NewWalker(nil, nil), fs.FileReader{},
		chunker.NewMarkdownChunker(tokenizer), zap.NewNop())

	kw := retriever.NewKeywordRetriever(index, tokenizer, retriever.NewQueryExpander(retriever.DefaultSynonyms))
	retrieve = usecase.NewRetrieveUseCase(kw, usecase.DefaultTopK, usecase.DefaultDetailedTopK)
	ask = usecase.NewAskUseCase(retrieve, usecase.NewComposer(nil))
}

func main() {
	c := make(chan struct{})

	js.Global().Set("careLoad", js.FuncOf(loadKnowledge))
	js.Global().Set("careAsk", js.FuncOf(askQuestion))
	js.Global().Set("careRetrieve", js.FuncOf(retrieveHits))
	js.Global().Set("careStats", js.FuncOf(getStats))

	<-c
}

// loadKnowledge replaces the index with the chunks of one markdown document.
func loadKnowledge(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return makeError("usage: careLoad(markdown)")
	}

	result := loader.LoadContent(args[0].String())
	return makeResult(map[string]interface{}{
		"success":    true,
		"chunks":     result.Chunks,
		"generation": result.Generation,
	})
}

func askQuestion(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return makeError("usage: careAsk(text, [detail], [audience], [filter])")
	}

	text := args[0].String()
	detail, audience := "", ""
	if len(args) > 1 {
		detail = args[1].String()
	}
	if len(args) > 2 {
		audience = args[2].String()
	}
	opts, err := domain.ParseOptions(detail, audience)
	if err != nil {
		return makeError(err.Error())
	}

	answer := ask.Ask(context.Background(), domain.Query{Text: text, Options: opts})
	body, evidence := presenter.SplitEvidence(answer.Text)
	filtered := body
	if len(args) > 3 && args[3].Bool() {
		filtered = presenter.FilterSections(body, opts, text)
	}

	return makeResult(map[string]interface{}{
		"answer":   answer.Text,
		"main":     filtered,
		"evidence": evidence,
		"source":   answer.Source,
	})
}

func retrieveHits(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return makeError("usage: careRetrieve(text, [k])")
	}

	text := args[0].String()
	k := retrieve.TopK(domain.DetailStandard)
	if len(args) > 1 {
		k = args[1].Int()
	}

	hits := retrieve.RetrieveTopK(text, k)
	if hits == nil {
		hits = []domain.ScoredHit{}
	}
	return makeResult(map[string]interface{}{
		"hits":  hits,
		"query": text,
	})
}

func getStats(this js.Value, args []js.Value) interface{} {
	chunks := index.Chunks()
	titles := make([]string, len(chunks))
	for i, c := range chunks {
		titles[i] = c.Title
	}

	return makeResult(map[string]interface{}{
		"totalChunks": len(chunks),
		"generation":  index.Generation(),
		"titles":      titles,
	})
}

func makeError(msg string) interface{} {
	result, _ := json.Marshal(map[string]interface{}{
		"error": msg,
	})
	return string(result)
}

func makeResult(data map[string]interface{}) interface{} {
	result, _ := json.Marshal(data)
	return string(result)
}

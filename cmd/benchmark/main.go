package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"carerag/config"
	"carerag/internal/adapter/analyzer"
	"carerag/internal/adapter/chunker"
	"carerag/internal/adapter/fs"
	"carerag/internal/adapter/memstore"
	"carerag/internal/adapter/retriever"
	"carerag/internal/usecase"
)

// judgment lists the chunk titles a query should retrieve from the bundled
// knowledge/care_knowledge_en.md.
type judgment struct {
	query    string
	relevant []string
}

var judgments = []judgment{
	{"how to prevent pressure ulcers", []string{"Pressure Ulcer Prevention", "Support Surfaces", "Incontinence and Moisture Care"}},
	{"ulcer skin care", []string{"Pressure Ulcer Prevention", "Incontinence and Moisture Care"}},
	{"diabetes meal plan", []string{"Diabetes Diet", "Blood Glucose Monitoring"}},
	{"glucose monitoring", []string{"Blood Glucose Monitoring"}},
	{"fall prevention at home", []string{"Fall Prevention at Home", "Strength and Balance Exercises"}},
	{"mobility exercises", []string{"Mobility and Range of Motion", "Strength and Balance Exercises"}},
	{"nutrition for elderly", []string{"Nutrition and Hydration"}},
	{"pain in dementia", []string{"Pain Assessment"}},
}

func main() {
	dir := flag.String("dir", ".", "Project directory holding the knowledge sources")
	query := flag.String("q", "", "Single query to inspect (default: run the judgment set)")
	topK := flag.Int("k", 5, "Number of results")
	flag.Parse()

	cfg, err := config.LoadFromDir(*dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	tokenizer := analyzer.NewTokenizer()
	expander := retriever.NewQueryExpander(retriever.DefaultSynonyms)
	index := memstore.NewKnowledgeIndex()
	loader := usecase.NewLoadUseCase(
		cfg.KnowledgeRoot(*dir),
		index,
		fs.NewWalker(cfg.Knowledge.Includes, cfg.Knowledge.Excludes),
		fs.FileReader{},
		chunker.NewMarkdownChunker(tokenizer),
		zap.NewNop(),
	)
	result, err := loader.Load(context.Background(), nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading knowledge: %v\n", err)
		os.Exit(1)
	}
	kw := retriever.NewKeywordRetriever(index, tokenizer, expander)

	fmt.Println("KEYWORD RETRIEVAL BENCHMARK")
	fmt.Println(strings.Repeat("=", 70))
	fmt.Printf("Files: %d  Chunks: %d\n\n", len(result.Files), result.Chunks)

	if *query != "" {
		inspect(kw, tokenizer, expander, *query, *topK)
		return
	}
	evaluate(kw, *topK)
}

func inspect(kw *retriever.KeywordRetriever, tokenizer *analyzer.Tokenizer, expander *retriever.QueryExpander, query string, k int) {
	fmt.Printf("Query: %q\n", query)
	fmt.Printf("Topic: %s\n", usecase.InferTopic(query))
	fmt.Printf("Terms: %s\n", strings.Join(expander.Expand(tokenizer.Tokenize(strings.ToLower(query))), ", "))
	fmt.Println(strings.Repeat("-", 70))

	hits := kw.Retrieve(query, k)
	if len(hits) == 0 {
		fmt.Println("No matches.")
		return
	}
	for i, h := range hits {
		fmt.Printf("%d. [%.3f] %s\n", i+1, h.Score, h.Title)
		fmt.Printf("   %s\n\n", usecase.Truncate(h.Text, 150))
	}
}

func evaluate(kw *retriever.KeywordRetriever, k int) {
	var sumP, sumR, sumRR, sumNDCG float64

	fmt.Printf("%-34s %6s %6s %6s %6s\n", "query", "P@k", "R@k", "RR", "nDCG")
	for _, j := range judgments {
		hits := kw.Retrieve(j.query, k)
		titles := make([]string, len(hits))
		for i, h := range hits {
			titles[i] = h.Title
		}

		p := retriever.PrecisionAtK(titles, j.relevant)
		r := retriever.RecallAtK(titles, j.relevant)
		rr := retriever.ReciprocalRank(titles, j.relevant)
		ndcg := retriever.BinaryNDCG(titles, j.relevant)
		sumP, sumR, sumRR, sumNDCG = sumP+p, sumR+r, sumRR+rr, sumNDCG+ndcg

		fmt.Printf("%-34s %6.3f %6.3f %6.3f %6.3f\n", j.query, p, r, rr, ndcg)
	}

	n := float64(len(judgments))
	fmt.Println(strings.Repeat("=", 70))
	fmt.Printf("QUALITY METRICS (k=%d):\n", k)
	fmt.Printf("  Mean precision: %.3f\n", sumP/n)
	fmt.Printf("  Mean recall:    %.3f\n", sumR/n)
	fmt.Printf("  MRR:            %.3f\n", sumRR/n)
	fmt.Printf("  Mean nDCG:      %.3f\n", sumNDCG/n)
}

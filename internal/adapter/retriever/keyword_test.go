package retriever

import (
	"math"
	"testing"

	"carerag/internal/adapter/analyzer"
	"carerag/internal/adapter/chunker"
	"carerag/internal/adapter/memstore"
	"carerag/internal/domain"
)

func newTestRetriever(markdown string) (*KeywordRetriever, *memstore.KnowledgeIndex) {
	tokenizer := analyzer.NewTokenizer()
	index := memstore.NewKnowledgeIndex()
	if markdown != "" {
		index.Replace(chunker.NewMarkdownChunker(tokenizer).Chunk(markdown))
	}
	return NewKeywordRetriever(index, tokenizer, NewQueryExpander(DefaultSynonyms)), index
}

func TestKeywordRetriever_HeadingBoost(t *testing.T) {
	r, index := newTestRetriever("# Pressure Ulcer\nTurn every 2 hours.\n\n# Diabetes\nControl carbs.")

	if index.Len() != 2 {
		t.Fatalf("expected 2 chunks, got %d", index.Len())
	}

	hits := r.Retrieve("ulcer", 5)
	if len(hits) != 1 {
		t.Fatalf("expected 1 hit, got %d: %+v", len(hits), hits)
	}
	if hits[0].Title != "Pressure Ulcer" || hits[0].Index != 0 {
		t.Errorf("expected Pressure Ulcer first, got %+v", hits[0])
	}

	// ulcer and pressure each match a token (+1) and the title (+1.5).
	expected := 5.0 / math.Sqrt(50+6)
	if math.Abs(hits[0].Score-expected) > 1e-9 {
		t.Errorf("expected score %f, got %f", expected, hits[0].Score)
	}
}

func TestKeywordRetriever_EmptyIndex(t *testing.T) {
	r, _ := newTestRetriever("")

	if hits := r.Retrieve("falls at home", 5); len(hits) != 0 {
		t.Errorf("expected no hits on empty index, got %v", hits)
	}
}

func TestKeywordRetriever_TopK(t *testing.T) {
	md := "# Fall one\nbalance\n# Fall two\nbalance\n# Fall three\nbalance\n# Other\nnothing here"
	r, _ := newTestRetriever(md)

	hits := r.Retrieve("fall", 2)
	if len(hits) != 2 {
		t.Fatalf("expected 2 hits, got %d", len(hits))
	}
	if hits := r.Retrieve("fall", 0); len(hits) != 0 {
		t.Errorf("expected no hits for k=0, got %d", len(hits))
	}
	if hits := r.Retrieve("fall", 10); len(hits) != 3 {
		t.Errorf("expected 3 positive hits, got %d", len(hits))
	}
}

func TestKeywordRetriever_StableTies(t *testing.T) {
	md := "# Notes\nhydration matters\n# Notes\nhydration matters\n# Notes\nhydration matters"
	r, _ := newTestRetriever(md)

	hits := r.Retrieve("hydration", 5)
	if len(hits) != 3 {
		t.Fatalf("expected 3 hits, got %d", len(hits))
	}
	for i, h := range hits {
		if h.Index != i {
			t.Errorf("tie order broken: position %d has index %d", i, h.Index)
		}
	}
}

func TestKeywordRetriever_SortedAndPositive(t *testing.T) {
	md := `# Skin care
Inspect skin daily and keep it dry.
# Pressure injuries
Reposition often; pressure relief mattress; pressure sore staging.
# Diet
Protein and hydration support healing of ulcers.
# Unrelated
Paperwork and scheduling.`
	r, _ := newTestRetriever(md)

	hits := r.Retrieve("pressure ulcer prevention", 5)
	if len(hits) == 0 {
		t.Fatal("expected hits")
	}
	for i, h := range hits {
		if h.Score <= 0 {
			t.Errorf("hit %d has non-positive score %f", i, h.Score)
		}
		if i > 0 && hits[i-1].Score < h.Score {
			t.Errorf("hits not sorted: %f before %f", hits[i-1].Score, h.Score)
		}
		if h.Title == "Unrelated" {
			t.Errorf("unrelated chunk should not match")
		}
	}
	if hits[0].Title != "Pressure injuries" {
		t.Errorf("expected heading match first, got %q", hits[0].Title)
	}
}

func TestKeywordRetriever_StopwordOnlyQuery(t *testing.T) {
	r, _ := newTestRetriever("# Falls\nRemove clutter.")

	if hits := r.Retrieve("the and of", 5); len(hits) != 0 {
		t.Errorf("expected no hits, got %v", hits)
	}
}

func TestScoreChunk_MembershipNotCount(t *testing.T) {
	chunk := domain.KnowledgeChunk{
		Title:  "Notes",
		Tokens: []string{"glucose", "glucose", "glucose"},
	}

	score := ScoreChunk([]string{"glucose"}, chunk)
	expected := 1.0 / math.Sqrt(53)
	if math.Abs(score-expected) > 1e-9 {
		t.Errorf("expected %f, got %f", expected, score)
	}
}

func TestScoreChunk_TitleSubstring(t *testing.T) {
	chunk := domain.KnowledgeChunk{Title: "Home Safety Checklist"}

	// Multi-word synonyms never match a token but can match the title.
	score := ScoreChunk([]string{"home safety"}, chunk)
	expected := 1.5 / math.Sqrt(50)
	if math.Abs(score-expected) > 1e-9 {
		t.Errorf("expected %f, got %f", expected, score)
	}

	// Partial word matches count toward the heading boost.
	if ScoreChunk([]string{"safe"}, chunk) <= 0 {
		t.Error("expected substring match on title")
	}
}

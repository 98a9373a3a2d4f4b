package retriever

import (
	"math"
	"sort"
	"strings"

	"carerag/internal/domain"
	"carerag/internal/port"
)

const (
	tokenMatchWeight   = 1.0
	headingBoostWeight = 1.5
	// lengthSmoothing keeps the length penalty mild and bounded for tiny chunks.
	lengthSmoothing = 50.0
)

// KeywordRetriever scores chunks by expanded-token membership with a heading boost.
type KeywordRetriever struct {
	index     port.KnowledgeIndex
	tokenizer port.Tokenizer
	expander  port.Expander
}

func NewKeywordRetriever(index port.KnowledgeIndex, tokenizer port.Tokenizer, expander port.Expander) *KeywordRetriever {
	return &KeywordRetriever{
		index:     index,
		tokenizer: tokenizer,
		expander:  expander,
	}
}

// Retrieve returns at most k hits with positive score, best first.
// Equal scores keep index order. An empty index yields no hits.
func (r *KeywordRetriever) Retrieve(query string, k int) []domain.ScoredHit {
	chunks := r.index.Chunks()
	if len(chunks) == 0 || k <= 0 {
		return nil
	}

	terms := r.expander.Expand(r.tokenizer.Tokenize(strings.ToLower(query)))
	if len(terms) == 0 {
		return nil
	}

	hits := make([]domain.ScoredHit, 0, len(chunks))
	for idx, chunk := range chunks {
		score := ScoreChunk(terms, chunk)
		if score <= 0 {
			continue
		}
		hits = append(hits, domain.ScoredHit{
			Index: idx,
			Score: score,
			Title: chunk.Title,
			Text:  chunk.Text,
		})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})

	if len(hits) > k {
		hits = hits[:k]
	}

	return hits
}

// ScoreChunk adds 1.0 for every term present in the chunk tokens and 1.5 for
// every term found as a substring of the lower-cased title, then divides by
// sqrt(50 + token count).
func ScoreChunk(terms []string, chunk domain.KnowledgeChunk) float64 {
	tokenSet := make(map[string]struct{}, len(chunk.Tokens))
	for _, t := range chunk.Tokens {
		tokenSet[t] = struct{}{}
	}
	title := strings.ToLower(chunk.Title)

	score := 0.0
	for _, term := range terms {
		if _, ok := tokenSet[term]; ok {
			score += tokenMatchWeight
		}
		if strings.Contains(title, term) {
			score += headingBoostWeight
		}
	}

	return score / math.Sqrt(lengthSmoothing+float64(len(chunk.Tokens)))
}

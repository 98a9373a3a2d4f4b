package retriever

import "math"

// PrecisionAtK is the share of retrieved titles that are relevant.
func PrecisionAtK(retrieved, relevant []string) float64 {
	if len(retrieved) == 0 {
		return 0
	}
	return float64(countRelevant(retrieved, relevant)) / float64(len(retrieved))
}

// RecallAtK is the share of relevant titles that were retrieved.
func RecallAtK(retrieved, relevant []string) float64 {
	if len(relevant) == 0 {
		return 0
	}
	return float64(countRelevant(retrieved, relevant)) / float64(len(relevant))
}

// ReciprocalRank is 1/rank of the first relevant title, or 0.
func ReciprocalRank(retrieved, relevant []string) float64 {
	set := toSet(relevant)
	for i, r := range retrieved {
		if set[r] {
			return 1.0 / float64(i+1)
		}
	}
	return 0
}

// NDCG compares graded relevance in retrieved order against the ideal order.
func NDCG(scores, ideal []float64) float64 {
	idcg := calculateDCG(ideal)
	if idcg == 0 {
		return 0
	}
	return calculateDCG(scores) / idcg
}

// BinaryNDCG scores a ranking where every relevant title has gain 1.
func BinaryNDCG(retrieved, relevant []string) float64 {
	set := toSet(relevant)
	scores := make([]float64, len(retrieved))
	for i, r := range retrieved {
		if set[r] {
			scores[i] = 1
		}
	}
	n := len(relevant)
	if n > len(retrieved) {
		n = len(retrieved)
	}
	ideal := make([]float64, n)
	for i := range ideal {
		ideal[i] = 1
	}
	return NDCG(scores, ideal)
}

func calculateDCG(scores []float64) float64 {
	dcg := 0.0
	for i, score := range scores {
		dcg += score / math.Log2(float64(i+2))
	}
	return dcg
}

func countRelevant(retrieved, relevant []string) int {
	set := toSet(relevant)
	hits := 0
	for _, r := range retrieved {
		if set[r] {
			hits++
		}
	}
	return hits
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, it := range items {
		set[it] = true
	}
	return set
}

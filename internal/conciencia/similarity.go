package conciencia

import (
	"math"
	"sort"
)

// Idea is a journal record paired with its embedding vector.
type Idea struct {
	ID        string
	Content   string
	Embedding []float64
}

// ScoredIdea is an Idea ranked against a query.
type ScoredIdea struct {
	Idea
	Similarity float64
}

// CosineSimilarity returns the cosine of the angle between two vectors, or 0
// when either has no magnitude or the lengths differ.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// RankSimilar scores every idea with an embedding against the query vector
// and returns the top k, most similar first. Ideas without embeddings are
// skipped.
func RankSimilar(query []float64, ideas []Idea, k int) []ScoredIdea {
	scored := make([]ScoredIdea, 0, len(ideas))
	for _, idea := range ideas {
		if len(idea.Embedding) == 0 {
			continue
		}
		scored = append(scored, ScoredIdea{
			Idea:       idea,
			Similarity: CosineSimilarity(query, idea.Embedding),
		})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Similarity > scored[j].Similarity
	})
	if k > 0 && len(scored) > k {
		scored = scored[:k]
	}
	return scored
}

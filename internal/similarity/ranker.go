// Package similarity ranks stored embeddings against a query vector.
package similarity

import (
	"math"
	"sort"

	"github.com/balisaldo/saldo/internal/model"
)

// Cosine returns the cosine similarity of two vectors in [-1, 1].
// Mismatched dimensions or a zero-magnitude vector score 0.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Rank scores every candidate against the query vector and returns the topK
// most similar, sorted by similarity descending. Ties preserve candidate
// order, which already reflects usage-based priority from the store.
// This is a linear scan; the store's candidate cap is the scalability
// ceiling.
func Rank(query []float32, candidates []model.EmbeddingRecord, topK int) []model.SimilarityResult {
	if len(query) == 0 || len(candidates) == 0 || topK <= 0 {
		return nil
	}

	results := make([]model.SimilarityResult, 0, len(candidates))
	for _, candidate := range candidates {
		results = append(results, model.SimilarityResult{
			Description: candidate.Description,
			Category:    candidate.Category,
			Similarity:  Cosine(query, candidate.Embedding),
			UsageCount:  candidate.UsageCount,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})

	if len(results) > topK {
		results = results[:topK]
	}

	return results
}

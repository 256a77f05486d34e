// Package match scores found items against the lost catalog and decides matches.
package match

import (
	"errors"
	"math"
)

// ErrDimensionMismatch means two embeddings of different lengths were
// compared. Embeddings always come from the same extractor, so this is an
// internal invariant violation, not a user-facing condition.
var ErrDimensionMismatch = errors.New("embedding dimension mismatch")

// Score computes the cosine similarity between two embedding vectors.
// The result is always within [-1, 1]. A zero-norm vector scores 0.0 so a
// corrupt or blank embedding never crashes the match loop, it simply never
// matches.
func Score(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, ErrDimensionMismatch
	}
	if len(a) == 0 {
		return 0, nil
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0, nil
	}

	similarity := dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
	// Clamp to [-1, 1] to handle floating point errors.
	if similarity > 1 {
		similarity = 1
	}
	if similarity < -1 {
		similarity = -1
	}

	return similarity, nil
}

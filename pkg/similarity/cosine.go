// Package similarity scores item pairs by cosine similarity over sparse
// term-frequency vectors and classifies them against duplicate thresholds.
package similarity

import (
	"math"

	"github.com/thebtf/quizdedup/pkg/models"
)

// Cosine computes the cosine similarity between two sparse vectors.
// Returns a value in [0, 1] for non-negative vectors, and 0 when either
// vector has zero norm.
func Cosine(a, b models.SparseVector) float64 {
	return cosineWithNorms(a, b, Norm(a), Norm(b))
}

// cosineWithNorms scores a pair with caller-supplied norms, letting the
// scanner amortize the norm computation across the whole pair space.
func cosineWithNorms(a, b models.SparseVector, normA, normB float64) float64 {
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot(a, b) / (normA * normB)
}

// Norm returns the Euclidean norm of a sparse vector.
func Norm(v models.SparseVector) float64 {
	var sum float64
	for _, val := range v {
		sum += val * val
	}
	return math.Sqrt(sum)
}

// dot computes the dot product, iterating over the smaller vector.
func dot(a, b models.SparseVector) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var product float64
	for term, valA := range a {
		if valB, ok := b[term]; ok {
			product += valA * valB
		}
	}
	return product
}

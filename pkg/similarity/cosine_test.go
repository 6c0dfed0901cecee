package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thebtf/quizdedup/pkg/models"
	"github.com/thebtf/quizdedup/pkg/vectorize"
)

func TestCosine(t *testing.T) {
	tests := []struct {
		name     string
		a        models.SparseVector
		b        models.SparseVector
		expected float64
	}{
		{
			name:     "identical vectors",
			a:        models.SparseVector{"tree": 0.5, "search": 0.5},
			b:        models.SparseVector{"tree": 0.5, "search": 0.5},
			expected: 1.0,
		},
		{
			name:     "disjoint vocabularies",
			a:        models.SparseVector{"tree": 0.5, "search": 0.5},
			b:        models.SparseVector{"load": 0.5, "balancing": 0.5},
			expected: 0.0,
		},
		{
			name:     "zero norm left",
			a:        models.SparseVector{},
			b:        models.SparseVector{"tree": 1.0},
			expected: 0.0,
		},
		{
			name:     "zero norm right",
			a:        models.SparseVector{"tree": 1.0},
			b:        models.SparseVector{},
			expected: 0.0,
		},
		{
			name:     "both empty",
			a:        models.SparseVector{},
			b:        models.SparseVector{},
			expected: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Cosine(tt.a, tt.b), 0.001)
		})
	}
}

func TestCosine_Symmetry(t *testing.T) {
	a := vectorize.Vectorize("what is a binary search tree structure")
	b := vectorize.Vectorize("explain the binary search tree data structure")

	assert.InDelta(t, Cosine(a, b), Cosine(b, a), 1e-12)
	assert.Greater(t, Cosine(a, b), 0.0)
	assert.LessOrEqual(t, Cosine(a, b), 1.0)
}

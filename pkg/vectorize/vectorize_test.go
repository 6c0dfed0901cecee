package vectorize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thebtf/quizdedup/pkg/models"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{
			name:     "lowercases and splits on punctuation",
			text:     "What is a Binary-Search Tree?",
			expected: []string{"what", "binary", "search", "tree"},
		},
		{
			name:     "drops short tokens",
			text:     "go is ok db io it",
			expected: nil,
		},
		{
			name:     "keeps digits",
			text:     "http2 vs http3 protocols",
			expected: []string{"http2", "http3", "protocols"},
		},
		{
			name:     "empty text",
			text:     "",
			expected: nil,
		},
		{
			name:     "whitespace only",
			text:     "   \t\n  ",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := Tokenize(tt.text)
			if tt.expected == nil {
				assert.Empty(t, tokens)
				return
			}
			assert.Equal(t, tt.expected, tokens)
		})
	}
}

func TestVectorize_FrequencyFractions(t *testing.T) {
	vec := Vectorize("tree tree tree search")

	require.Len(t, vec, 2)
	assert.InDelta(t, 0.75, vec["tree"], 0.001)
	assert.InDelta(t, 0.25, vec["search"], 0.001)

	// Fractions always sum to 1 for non-empty vectors
	sum := 0.0
	for _, f := range vec {
		sum += f
	}
	assert.InDelta(t, 1.0, sum, 0.001)
}

func TestVectorize_EmptyTextYieldsEmptyVector(t *testing.T) {
	assert.Empty(t, Vectorize(""))
	assert.Empty(t, Vectorize("  \n "))
	assert.Empty(t, Vectorize("a b c")) // all tokens below minimum length
}

func TestBuildVectors_SkipsContentFreeItems(t *testing.T) {
	items := []models.Item{
		{ID: "q1", Question: "What is a binary search tree?"},
		{ID: "q2", Question: ""},
		{ID: "q3", Question: "!!! ??"},
	}

	vectors, skipped := BuildVectors(items)

	require.Len(t, vectors, 1)
	assert.Contains(t, vectors, "q1")
	assert.Equal(t, []string{"q2", "q3"}, skipped)
}

func TestItemText_JoinsQuestionAnswerTags(t *testing.T) {
	item := models.Item{
		ID:       "q1",
		Question: "What is sharding?",
		Answer:   "Splitting data across nodes",
		Tags:     []string{"databases", "scaling"},
	}

	vec := Vectorize(item.Text())
	assert.Contains(t, vec, "sharding")
	assert.Contains(t, vec, "splitting")
	assert.Contains(t, vec, "databases")
	assert.Contains(t, vec, "scaling")
}

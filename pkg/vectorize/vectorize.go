// Package vectorize converts item text into sparse term-frequency vectors.
//
// The vectors are a deliberately simple bag-of-words fingerprint: token
// counts normalized by the item's token total. There is no corpus-wide
// inverse-document-frequency weighting and no stop-word list beyond the
// minimum token length; swapping in a learned embedding model is a product
// decision outside this package.
package vectorize

import (
	"strings"

	"github.com/thebtf/quizdedup/pkg/models"
)

// MinTokenLength is the minimum token length kept by Tokenize.
// Shorter tokens carry too little signal for similarity scoring.
const MinTokenLength = 3

// Tokenize lowercases text, splits on non-alphanumeric runes, and drops
// tokens shorter than MinTokenLength.
func Tokenize(text string) []string {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'))
	})

	tokens := words[:0]
	for _, word := range words {
		if len(word) >= MinTokenLength {
			tokens = append(tokens, word)
		}
	}
	return tokens
}

// Vectorize builds a sparse term-frequency vector for one item's text.
// Empty or whitespace-only text yields an empty vector, not an error.
func Vectorize(text string) models.SparseVector {
	tokens := Tokenize(text)
	vec := make(models.SparseVector, len(tokens))
	if len(tokens) == 0 {
		return vec
	}

	for _, token := range tokens {
		vec[token]++
	}
	total := float64(len(tokens))
	for token, count := range vec {
		vec[token] = count / total
	}
	return vec
}

// BuildVectors vectorizes every item and returns the id -> vector map
// together with the ids of items whose text produced no tokens at all.
// Content-free items are reported separately so data-quality problems
// surface in the final report instead of hiding as spurious uniqueness.
func BuildVectors(items []models.Item) (map[string]models.SparseVector, []string) {
	vectors := make(map[string]models.SparseVector, len(items))
	var skipped []string

	for _, item := range items {
		vec := Vectorize(item.Text())
		if len(vec) == 0 {
			skipped = append(skipped, item.ID)
			continue
		}
		vectors[item.ID] = vec
	}
	return vectors, skipped
}

package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thebtf/quizdedup/pkg/models"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadFile_JSON(t *testing.T) {
	path := writeTemp(t, "corpus.json", `[
		{"id": "q1", "question": "What is a binary search tree?", "tags": ["trees"]},
		{"id": "q2", "question": "Explain load balancing.", "channel": "backend"}
	]`)

	items, err := LoadFile(path)
	require.NoError(t, err)

	require.Len(t, items, 2)
	assert.Equal(t, "q1", items[0].ID)
	assert.Equal(t, []string{"trees"}, items[0].Tags)
	assert.Equal(t, "backend", items[1].Channel)
}

func TestLoadFile_YAML(t *testing.T) {
	path := writeTemp(t, "corpus.yaml", `
- id: q1
  question: What is a binary search tree?
  answer: A sorted binary tree
- id: q2
  question: Explain load balancing.
  difficulty: medium
`)

	items, err := LoadFile(path)
	require.NoError(t, err)

	require.Len(t, items, 2)
	assert.Equal(t, "A sorted binary tree", items[0].Answer)
	assert.Equal(t, "medium", items[1].Difficulty)
}

func TestLoadFile_UnsupportedFormat(t *testing.T) {
	path := writeTemp(t, "corpus.txt", "q1: something")

	_, err := LoadFile(path)
	assert.ErrorContains(t, err, "unsupported corpus format")
}

func TestLoadFile_RejectsDuplicateIDs(t *testing.T) {
	path := writeTemp(t, "corpus.json", `[
		{"id": "q1", "question": "first"},
		{"id": "q1", "question": "second"}
	]`)

	_, err := LoadFile(path)
	assert.ErrorContains(t, err, "duplicate item id")
}

func TestLoadFile_RejectsMissingID(t *testing.T) {
	path := writeTemp(t, "corpus.json", `[{"question": "no id here"}]`)

	_, err := LoadFile(path)
	assert.ErrorContains(t, err, "has no id")
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(nil))
	assert.NoError(t, Validate([]models.Item{{ID: "q1"}, {ID: "q2"}}))
	assert.Error(t, Validate([]models.Item{{ID: ""}}))
	assert.Error(t, Validate([]models.Item{{ID: "q1"}, {ID: "q1"}}))
}

// Package corpus loads item corpora from files.
package corpus

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/thebtf/quizdedup/pkg/models"
)

// LoadFile reads a corpus from a JSON or YAML file. The format is picked
// by extension: .json expects a top-level array of items, .yaml/.yml a
// top-level sequence. Ids are validated for presence and uniqueness here
// so malformed corpora fail before the engine runs.
func LoadFile(path string) ([]models.Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read corpus: %w", err)
	}

	var items []models.Item
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("parse JSON corpus: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("parse YAML corpus: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported corpus format %q (want .json, .yaml, or .yml)", ext)
	}

	if err := Validate(items); err != nil {
		return nil, err
	}
	return items, nil
}

// Validate checks that every item carries a unique, non-empty id.
func Validate(items []models.Item) error {
	seen := make(map[string]struct{}, len(items))
	for i, item := range items {
		if item.ID == "" {
			return fmt.Errorf("item at index %d has no id", i)
		}
		if _, ok := seen[item.ID]; ok {
			return fmt.Errorf("duplicate item id %q", item.ID)
		}
		seen[item.ID] = struct{}{}
	}
	return nil
}

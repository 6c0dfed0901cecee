// Package sqlite provides SQLite database operations for quizdedup.
package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/thebtf/quizdedup/pkg/models"
)

// itemColumns is the standard list of columns to select for items.
const itemColumns = `id, question, COALESCE(answer, ''), COALESCE(tags, ''), COALESCE(channel, ''), COALESCE(difficulty, '')`

// ItemStore provides item-related database operations.
type ItemStore struct {
	store *Store
}

// NewItemStore creates a new item store.
func NewItemStore(store *Store) *ItemStore {
	return &ItemStore{store: store}
}

// UpsertItem inserts or replaces an item by id.
func (s *ItemStore) UpsertItem(ctx context.Context, item models.Item) error {
	stmt, err := s.store.GetStmt(`INSERT INTO items (id, question, answer, tags, channel, difficulty, created_at_epoch)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			question = excluded.question,
			answer = excluded.answer,
			tags = excluded.tags,
			channel = excluded.channel,
			difficulty = excluded.difficulty`)
	if err != nil {
		return err
	}

	_, err = stmt.ExecContext(ctx,
		item.ID, item.Question, item.Answer, joinTags(item.Tags),
		item.Channel, item.Difficulty, time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("upsert item %s: %w", item.ID, err)
	}
	return nil
}

// ListItems returns all items, optionally filtered by channel, in stable
// id order so analysis runs over the same data are reproducible.
func (s *ItemStore) ListItems(ctx context.Context, channel string) ([]models.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items ORDER BY id`
	args := []any{}
	if channel != "" {
		query = `SELECT ` + itemColumns + ` FROM items WHERE channel = ? ORDER BY id`
		args = append(args, channel)
	}

	stmt, err := s.store.GetStmt(query)
	if err != nil {
		return nil, err
	}

	rows, err := stmt.QueryContext(ctx, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var items []models.Item
	for rows.Next() {
		var item models.Item
		var tags string
		if err := rows.Scan(&item.ID, &item.Question, &item.Answer, &tags, &item.Channel, &item.Difficulty); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		item.Tags = splitTags(tags)
		items = append(items, item)
	}
	return items, rows.Err()
}

// DeleteItem removes an item by id.
func (s *ItemStore) DeleteItem(ctx context.Context, id string) error {
	stmt, err := s.store.GetStmt(`DELETE FROM items WHERE id = ?`)
	if err != nil {
		return err
	}
	if _, err := stmt.ExecContext(ctx, id); err != nil {
		return fmt.Errorf("delete item %s: %w", id, err)
	}
	return nil
}

// Tags are stored comma-joined; items never contain commas in tags.
func joinTags(tags []string) string {
	return strings.Join(tags, ",")
}

func splitTags(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}

// Package models contains domain models for quizdedup.
package models

import "strings"

// Item is a single question/answer record from the content corpus.
// Items are treated as immutable for the duration of an analysis run.
type Item struct {
	ID         string   `db:"id" json:"id" yaml:"id"`
	Question   string   `db:"question" json:"question" yaml:"question"`
	Answer     string   `db:"answer" json:"answer,omitempty" yaml:"answer,omitempty"`
	Tags       []string `db:"tags" json:"tags,omitempty" yaml:"tags,omitempty"`
	Channel    string   `db:"channel" json:"channel,omitempty" yaml:"channel,omitempty"`
	Difficulty string   `db:"difficulty" json:"difficulty,omitempty" yaml:"difficulty,omitempty"`
}

// Text returns the item's searchable text: question, answer, and tags
// joined by single spaces. Empty parts are dropped.
func (i Item) Text() string {
	parts := make([]string, 0, 2+len(i.Tags))
	if i.Question != "" {
		parts = append(parts, i.Question)
	}
	if i.Answer != "" {
		parts = append(parts, i.Answer)
	}
	for _, tag := range i.Tags {
		if tag != "" {
			parts = append(parts, tag)
		}
	}
	return strings.Join(parts, " ")
}

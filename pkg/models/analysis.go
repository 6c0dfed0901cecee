// Package models contains domain models for quizdedup.
package models

import (
	"errors"
	"fmt"
)

// SparseVector maps a normalized token to its within-item frequency
// fraction (term count divided by the item's surviving token count).
type SparseVector map[string]float64

// SimilarityEdge records the cosine similarity between two items.
// Edges are canonical: IDA < IDB, each unordered pair appears once.
type SimilarityEdge struct {
	IDA      string  `json:"id_a"`
	IDB      string  `json:"id_b"`
	PreviewA string  `json:"preview_a,omitempty"`
	PreviewB string  `json:"preview_b,omitempty"`
	Score    float64 `json:"score"`
}

// Thresholds holds the similarity cutoffs used to classify a pair.
type Thresholds struct {
	// Duplicate is the minimum score for a duplicate pair.
	Duplicate float64 `json:"duplicate"`
	// NearDuplicate is the minimum score for a near-duplicate pair.
	NearDuplicate float64 `json:"near_duplicate"`
}

// ErrInvalidThresholds marks threshold validation failures so callers
// can distinguish bad input from computation errors.
var ErrInvalidThresholds = errors.New("invalid thresholds")

// Validate checks that 0 <= NearDuplicate <= Duplicate <= 1.
func (t Thresholds) Validate() error {
	if t.Duplicate <= 0 || t.Duplicate > 1 {
		return fmt.Errorf("%w: duplicate threshold %.2f out of range (0, 1]", ErrInvalidThresholds, t.Duplicate)
	}
	if t.NearDuplicate < 0 || t.NearDuplicate > 1 {
		return fmt.Errorf("%w: near-duplicate threshold %.2f out of range [0, 1]", ErrInvalidThresholds, t.NearDuplicate)
	}
	if t.NearDuplicate > t.Duplicate {
		return fmt.Errorf("%w: near-duplicate threshold %.2f exceeds duplicate threshold %.2f",
			ErrInvalidThresholds, t.NearDuplicate, t.Duplicate)
	}
	return nil
}

// Recommendation indicates the suggested handling of a duplicate cluster.
type Recommendation string

const (
	// RecommendMerge suggests merging the cluster's members into one item.
	RecommendMerge Recommendation = "merge"
	// RecommendReview suggests a human looks at the pair before merging.
	RecommendReview Recommendation = "review"
)

// DuplicateCluster is a maximal set of items transitively connected by
// duplicate-level similarity edges. Always has at least two members.
type DuplicateCluster struct {
	ClusterID      string         `json:"cluster_id"`
	MemberIDs      []string       `json:"member_ids"`
	Recommendation Recommendation `json:"recommendation"`
}

// Size returns the number of members in the cluster.
func (c DuplicateCluster) Size() int {
	return len(c.MemberIDs)
}

// RecommendationCounts breaks down clusters by suggested handling.
type RecommendationCounts struct {
	ToMerge  int `json:"to_merge"`
	ToReview int `json:"to_review"`
}

// Report is the single artifact produced by an analysis run.
type Report struct {
	RunID                  string               `json:"run_id"`
	ChannelID              string               `json:"channel_id,omitempty"`
	GeneratedAt            string               `json:"generated_at"`
	TotalItems             int                  `json:"total_items"`
	UniqueCount            int                  `json:"unique_count"`
	DuplicateClusters      []DuplicateCluster   `json:"duplicate_clusters"`
	DuplicateQuestionCount int                  `json:"duplicate_question_count"`
	DuplicateRate          float64              `json:"duplicate_rate"`
	NearDuplicatePairs     []SimilarityEdge     `json:"near_duplicate_pairs"`
	SkippedItemIDs         []string             `json:"skipped_item_ids,omitempty"`
	ThresholdUsed          Thresholds           `json:"threshold_used"`
	Recommendations        RecommendationCounts `json:"recommendations"`
}

// AnalysisResult is the discriminated result shape handed to callers at
// the CLI/HTTP boundary: either a report or an error string, never both.
type AnalysisResult struct {
	Success bool    `json:"success"`
	Report  *Report `json:"report,omitempty"`
	Error   string  `json:"error,omitempty"`
}

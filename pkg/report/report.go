// Package report derives the final analysis report from clustering output.
package report

import (
	"time"

	"github.com/google/uuid"

	"github.com/thebtf/quizdedup/pkg/models"
)

// Input bundles everything the reporter derives from. All fields are
// read-only; Build performs no I/O and has no side effects beyond the
// returned value.
type Input struct {
	Items          []models.Item
	Clusters       []models.DuplicateCluster
	UniqueIDs      []string
	NearDuplicates []models.SimilarityEdge
	SkippedIDs     []string
	Thresholds     models.Thresholds
	ChannelID      string
}

// Build aggregates cluster and pair statistics into a Report.
// duplicate_rate is the fraction of items sitting in some cluster; an
// empty corpus yields rate 0 rather than a division by zero.
func Build(in Input) *models.Report {
	duplicateCount := 0
	counts := models.RecommendationCounts{}
	for _, c := range in.Clusters {
		duplicateCount += c.Size()
		switch c.Recommendation {
		case models.RecommendMerge:
			counts.ToMerge++
		case models.RecommendReview:
			counts.ToReview++
		}
	}

	rate := 0.0
	if len(in.Items) > 0 {
		rate = float64(duplicateCount) / float64(len(in.Items))
	}

	clusters := in.Clusters
	if clusters == nil {
		clusters = []models.DuplicateCluster{}
	}
	nearDuplicates := in.NearDuplicates
	if nearDuplicates == nil {
		nearDuplicates = []models.SimilarityEdge{}
	}

	return &models.Report{
		RunID:                  uuid.NewString(),
		ChannelID:              in.ChannelID,
		GeneratedAt:            time.Now().UTC().Format(time.RFC3339),
		TotalItems:             len(in.Items),
		UniqueCount:            len(in.UniqueIDs),
		DuplicateClusters:      clusters,
		DuplicateQuestionCount: duplicateCount,
		DuplicateRate:          rate,
		NearDuplicatePairs:     nearDuplicates,
		SkippedItemIDs:         in.SkippedIDs,
		ThresholdUsed:          in.Thresholds,
		Recommendations:        counts,
	}
}

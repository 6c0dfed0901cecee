package similarity

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thebtf/quizdedup/pkg/models"
	"github.com/thebtf/quizdedup/pkg/vectorize"
)

func defaultThresholds() models.Thresholds {
	return models.Thresholds{Duplicate: 0.85, NearDuplicate: 0.70}
}

func scanItems(t *testing.T, items []models.Item, cfg ScanConfig) *ScanResult {
	t.Helper()
	vectors, _ := vectorize.BuildVectors(items)
	result, err := Scan(context.Background(), items, vectors, cfg)
	require.NoError(t, err)
	return result
}

func TestScan_Classification(t *testing.T) {
	items := []models.Item{
		{ID: "q1", Question: "What is a binary search tree?"},
		{ID: "q2", Question: "What is a binary search tree?"},
		{ID: "q3", Question: "Explain binary search tree"},
		{ID: "q4", Question: "Explain load balancing"},
	}

	result := scanItems(t, items, ScanConfig{Thresholds: defaultThresholds()})

	// q1/q2 are identical: duplicate pair at score 1.0
	require.Len(t, result.Duplicates, 1)
	assert.Equal(t, "q1", result.Duplicates[0].IDA)
	assert.Equal(t, "q2", result.Duplicates[0].IDB)
	assert.InDelta(t, 1.0, result.Duplicates[0].Score, 0.001)

	// q3 shares three of four tokens with q1/q2: cosine 0.75, near-duplicate
	require.Len(t, result.NearDuplicates, 2)
	for _, edge := range result.NearDuplicates {
		assert.Equal(t, "q3", edge.IDB)
		assert.InDelta(t, 0.75, edge.Score, 0.001)
	}

	// q4 has a disjoint vocabulary: no edge retained anywhere
	for _, edge := range append(result.Duplicates, result.NearDuplicates...) {
		assert.NotEqual(t, "q4", edge.IDA)
		assert.NotEqual(t, "q4", edge.IDB)
	}
}

func TestScan_NoSelfPairsAndCanonicalOrdering(t *testing.T) {
	items := []models.Item{
		{ID: "q3", Question: "What is consistent hashing?"},
		{ID: "q1", Question: "What is consistent hashing?"},
		{ID: "q2", Question: "What is consistent hashing?"},
	}

	result := scanItems(t, items, ScanConfig{Thresholds: defaultThresholds()})

	require.Len(t, result.Duplicates, 3)
	for _, edge := range result.Duplicates {
		assert.NotEqual(t, edge.IDA, edge.IDB, "no item is compared against itself")
		assert.Less(t, edge.IDA, edge.IDB, "edges are canonical: idA < idB")
	}
}

func TestScan_ThresholdMonotonicity(t *testing.T) {
	items := []models.Item{
		{ID: "q1", Question: "What is a binary search tree?"},
		{ID: "q2", Question: "Explain binary search tree"},
	}

	lower := scanItems(t, items, ScanConfig{
		Thresholds: models.Thresholds{Duplicate: 0.85, NearDuplicate: 0.70},
	})
	higher := scanItems(t, items, ScanConfig{
		Thresholds: models.Thresholds{Duplicate: 0.85, NearDuplicate: 0.80},
	})

	assert.LessOrEqual(t, len(higher.NearDuplicates), len(lower.NearDuplicates),
		"raising the near threshold never increases the near-duplicate count")
	assert.Len(t, lower.NearDuplicates, 1)
	assert.Empty(t, higher.NearDuplicates)
}

func TestScan_ParallelMatchesSerial(t *testing.T) {
	topics := []string{
		"binary search tree traversal order",
		"load balancer health checks",
		"database index covering query",
		"consistent hashing ring nodes",
	}
	var items []models.Item
	for i := 0; i < 24; i++ {
		items = append(items, models.Item{
			ID:       fmt.Sprintf("q%02d", i),
			Question: topics[i%len(topics)] + " " + strings.Repeat("variant ", i%3),
		})
	}

	cfg := ScanConfig{Thresholds: models.Thresholds{Duplicate: 0.85, NearDuplicate: 0.30}}

	cfg.Workers = 1
	serial := scanItems(t, items, cfg)
	cfg.Workers = 4
	parallel := scanItems(t, items, cfg)

	assert.Equal(t, serial.Duplicates, parallel.Duplicates)
	assert.Equal(t, serial.NearDuplicates, parallel.NearDuplicates)
}

func TestScan_ScoreRoundedToTwoDecimals(t *testing.T) {
	// Three-token items sharing two tokens: cosine 2/3
	items := []models.Item{
		{ID: "q1", Question: "binary search tree"},
		{ID: "q2", Question: "binary search forest"},
	}

	result := scanItems(t, items, ScanConfig{
		Thresholds: models.Thresholds{Duplicate: 0.9, NearDuplicate: 0.5},
	})

	require.Len(t, result.NearDuplicates, 1)
	assert.Equal(t, 0.67, result.NearDuplicates[0].Score)
}

func TestScan_ScoresAgreeWithCosine(t *testing.T) {
	items := []models.Item{
		{ID: "q1", Question: "What is a binary search tree?"},
		{ID: "q2", Question: "Explain binary search tree"},
	}
	vectors, _ := vectorize.BuildVectors(items)

	result := scanItems(t, items, ScanConfig{
		Thresholds: models.Thresholds{Duplicate: 0.9, NearDuplicate: 0.5},
	})

	require.Len(t, result.NearDuplicates, 1)
	direct := Cosine(vectors["q1"], vectors["q2"])
	assert.InDelta(t, direct, result.NearDuplicates[0].Score, 0.005,
		"scan edges carry the same cosine score as the single-pair entry point")
}

func TestScan_PreviewTruncation(t *testing.T) {
	long := strings.Repeat("sharding partitions data across nodes ", 10)
	items := []models.Item{
		{ID: "q1", Question: long},
		{ID: "q2", Question: long},
	}

	result := scanItems(t, items, ScanConfig{Thresholds: defaultThresholds(), PreviewLength: 40})

	require.Len(t, result.Duplicates, 1)
	edge := result.Duplicates[0]
	assert.True(t, strings.HasSuffix(edge.PreviewA, "..."))
	assert.LessOrEqual(t, len([]rune(edge.PreviewA)), 43)
}

func TestScan_InvalidThresholds(t *testing.T) {
	items := []models.Item{
		{ID: "q1", Question: "binary search tree"},
		{ID: "q2", Question: "binary search tree"},
	}
	vectors, _ := vectorize.BuildVectors(items)

	_, err := Scan(context.Background(), items, vectors, ScanConfig{
		Thresholds: models.Thresholds{Duplicate: 0.5, NearDuplicate: 0.9},
	})
	assert.Error(t, err)
}

func TestScan_Cancellation(t *testing.T) {
	items := []models.Item{
		{ID: "q1", Question: "binary search tree"},
		{ID: "q2", Question: "binary search tree"},
		{ID: "q3", Question: "load balancing basics"},
	}
	vectors, _ := vectorize.BuildVectors(items)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Scan(ctx, items, vectors, ScanConfig{Thresholds: defaultThresholds()})
	assert.ErrorIs(t, err, context.Canceled)
}

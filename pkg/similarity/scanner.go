package similarity

import (
	"context"
	"math"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/thebtf/quizdedup/pkg/models"
)

// DefaultPreviewLength is how many characters of item text each retained
// edge carries for human review.
const DefaultPreviewLength = 80

// ScanConfig controls a pairwise similarity scan.
type ScanConfig struct {
	Thresholds models.Thresholds
	// Workers is the number of goroutines scanning the pair space.
	// Values < 1 default to GOMAXPROCS.
	Workers int
	// PreviewLength caps the text preview on retained edges.
	// Values < 1 default to DefaultPreviewLength.
	PreviewLength int
}

// ScanResult holds the pairs retained by a scan. Pairs scoring below the
// near-duplicate threshold are never materialized, which bounds memory to
// the interesting fraction of the n*(n-1)/2 pair space.
type ScanResult struct {
	Duplicates     []models.SimilarityEdge
	NearDuplicates []models.SimilarityEdge
}

// Scan computes cosine similarity for every unordered item pair and
// classifies each against the thresholds. Items without a vector (no
// usable text) are excluded from comparison entirely.
//
// The pair space is striped across workers by row index; each worker
// accumulates into its own slice and results are merged and sorted at the
// join point, so output is deterministic regardless of worker count.
// Cancellation is honored between rows.
//
// Complexity is O(n² · avg vocabulary overlap) with no blocking or
// indexing applied. That ceiling is acceptable up to low tens of
// thousands of items; larger corpora need an approximate pre-filter
// this package deliberately does not provide.
func Scan(ctx context.Context, items []models.Item, vectors map[string]models.SparseVector, cfg ScanConfig) (*ScanResult, error) {
	if err := cfg.Thresholds.Validate(); err != nil {
		return nil, err
	}

	workers := cfg.Workers
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	previewLen := cfg.PreviewLength
	if previewLen < 1 {
		previewLen = DefaultPreviewLength
	}

	// Only items with a non-empty vector participate. Corpus order is
	// preserved so row striping stays stable across runs.
	scannable := make([]models.Item, 0, len(items))
	for _, item := range items {
		if len(vectors[item.ID]) > 0 {
			scannable = append(scannable, item)
		}
	}
	n := len(scannable)
	if n < 2 {
		return &ScanResult{}, ctx.Err()
	}

	norms := make(map[string]float64, n)
	for _, item := range scannable {
		norms[item.ID] = Norm(vectors[item.ID])
	}

	if workers > n {
		workers = n
	}

	type shard struct {
		duplicates     []models.SimilarityEdge
		nearDuplicates []models.SimilarityEdge
	}
	shards := make([]shard, workers)

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			local := &shards[w]
			for i := w; i < n; i += workers {
				if err := ctx.Err(); err != nil {
					return err
				}
				itemA := scannable[i]
				vecA := vectors[itemA.ID]
				normA := norms[itemA.ID]
				for j := i + 1; j < n; j++ {
					itemB := scannable[j]
					score := cosineWithNorms(vecA, vectors[itemB.ID], normA, norms[itemB.ID])

					switch {
					case score >= cfg.Thresholds.Duplicate:
						local.duplicates = append(local.duplicates, newEdge(itemA, itemB, score, previewLen))
					case score >= cfg.Thresholds.NearDuplicate:
						local.nearDuplicates = append(local.nearDuplicates, newEdge(itemA, itemB, score, previewLen))
					}
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &ScanResult{}
	for _, s := range shards {
		result.Duplicates = append(result.Duplicates, s.duplicates...)
		result.NearDuplicates = append(result.NearDuplicates, s.nearDuplicates...)
	}
	sortEdges(result.Duplicates)
	sortEdges(result.NearDuplicates)
	return result, nil
}

// newEdge builds a canonical edge: ids ordered lexicographically, score
// rounded to two decimals, previews truncated for review output.
func newEdge(a, b models.Item, score float64, previewLen int) models.SimilarityEdge {
	if b.ID < a.ID {
		a, b = b, a
	}
	return models.SimilarityEdge{
		IDA:      a.ID,
		IDB:      b.ID,
		PreviewA: truncate(a.Text(), previewLen),
		PreviewB: truncate(b.Text(), previewLen),
		Score:    math.Round(score*100) / 100,
	}
}

func sortEdges(edges []models.SimilarityEdge) {
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].IDA != edges[j].IDA {
			return edges[i].IDA < edges[j].IDA
		}
		return edges[i].IDB < edges[j].IDB
	})
}

// truncate caps s at max runes, appending an ellipsis when cut.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

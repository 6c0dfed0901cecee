// Package engine orchestrates the duplicate-detection pipeline.
//
// The pipeline is a strictly linear sequence of pure stages: vectorize
// the corpus, score every item pair, union duplicate pairs into clusters,
// derive the report. Every intermediate artifact (vectors, edges,
// disjoint-set state) is scoped to one Analyze call and discarded with
// it; re-running with identical input produces identical clusters and
// numbers.
package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/thebtf/quizdedup/pkg/cluster"
	"github.com/thebtf/quizdedup/pkg/models"
	"github.com/thebtf/quizdedup/pkg/report"
	"github.com/thebtf/quizdedup/pkg/similarity"
	"github.com/thebtf/quizdedup/pkg/vectorize"
)

// Invalid-input errors. These are terminal for the run; no retry is
// meaningful since the computation is pure and deterministic.
var (
	// ErrEmptyCorpus is returned when Analyze receives no items.
	ErrEmptyCorpus = errors.New("corpus is empty")
	// ErrMissingItemID is returned when an item has no id.
	ErrMissingItemID = errors.New("item is missing an id")
	// ErrDuplicateItemID is returned when two items share an id.
	ErrDuplicateItemID = errors.New("duplicate item id in corpus")
)

// Stage identifies the engine's position in the pipeline.
type Stage int

const (
	StagePending Stage = iota
	StageVectorsBuilt
	StageSimilarityComputed
	StageClustersBuilt
	StageReportReady
)

// String returns the stage name for logging.
func (s Stage) String() string {
	switch s {
	case StagePending:
		return "pending"
	case StageVectorsBuilt:
		return "vectors_built"
	case StageSimilarityComputed:
		return "similarity_computed"
	case StageClustersBuilt:
		return "clusters_built"
	case StageReportReady:
		return "report_ready"
	default:
		return "unknown"
	}
}

// Options configures an analysis run.
type Options struct {
	Thresholds    models.Thresholds
	MergeMinSize  int
	Workers       int
	PreviewLength int
	// ChannelID is a bookkeeping label carried into the report; it plays
	// no part in the computation.
	ChannelID string
}

// Engine runs duplicate-detection analyses over item corpora.
// The zero value is not usable; construct with New.
type Engine struct {
	opts   Options
	logger zerolog.Logger

	// buildVectors is the stage-1 implementation; replaceable for
	// failure injection.
	buildVectors func([]models.Item) (map[string]models.SparseVector, []string)
}

// New creates an engine with the given options.
func New(opts Options, logger zerolog.Logger) *Engine {
	return &Engine{
		opts:         opts,
		logger:       logger.With().Str("component", "engine").Logger(),
		buildVectors: vectorize.BuildVectors,
	}
}

// Analyze runs the full pipeline over the corpus and returns the report.
// The corpus is treated as read-only; cancellation is checked between
// stages and between similarity rows. Any panic inside a stage is
// converted into an error so nothing unhandled crosses the engine
// boundary.
func (e *Engine) Analyze(ctx context.Context, items []models.Item) (rep *models.Report, err error) {
	defer func() {
		if r := recover(); r != nil {
			rep = nil
			err = fmt.Errorf("computation failed: %v", r)
		}
	}()

	if err := validateCorpus(items); err != nil {
		return nil, err
	}
	if err := e.opts.Thresholds.Validate(); err != nil {
		return nil, err
	}

	// Stage 1: vectorize.
	vectors, skipped := e.buildVectors(items)
	e.logStage(StageVectorsBuilt, len(items), map[string]int{
		"vectors": len(vectors),
		"skipped": len(skipped),
	})
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 2: pairwise similarity.
	scan, err := similarity.Scan(ctx, items, vectors, similarity.ScanConfig{
		Thresholds:    e.opts.Thresholds,
		Workers:       e.opts.Workers,
		PreviewLength: e.opts.PreviewLength,
	})
	if err != nil {
		return nil, err
	}
	e.logStage(StageSimilarityComputed, len(items), map[string]int{
		"duplicate_pairs":      len(scan.Duplicates),
		"near_duplicate_pairs": len(scan.NearDuplicates),
	})
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 3: clustering. Union-find mutation is sequential; this is the
	// join boundary after the parallel scan. Skipped items do not feed the
	// structure, so they never surface as spurious uniques.
	clusterable := make([]string, 0, len(items))
	for _, item := range items {
		if len(vectors[item.ID]) > 0 {
			clusterable = append(clusterable, item.ID)
		}
	}
	built := cluster.Build(clusterable, scan.Duplicates, e.opts.MergeMinSize)
	e.logStage(StageClustersBuilt, len(items), map[string]int{
		"clusters": len(built.Clusters),
		"unique":   len(built.UniqueIDs),
	})
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 4: report.
	rep = report.Build(report.Input{
		Items:          items,
		Clusters:       built.Clusters,
		UniqueIDs:      built.UniqueIDs,
		NearDuplicates: scan.NearDuplicates,
		SkippedIDs:     skipped,
		Thresholds:     e.opts.Thresholds,
		ChannelID:      e.opts.ChannelID,
	})
	e.logStage(StageReportReady, len(items), map[string]int{
		"duplicate_questions": rep.DuplicateQuestionCount,
	})
	return rep, nil
}

// AnalyzeToResult wraps Analyze into the discriminated result shape used
// at the CLI/HTTP boundary: callers get either a report or an error
// string, never a partial report.
func (e *Engine) AnalyzeToResult(ctx context.Context, items []models.Item) models.AnalysisResult {
	rep, err := e.Analyze(ctx, items)
	if err != nil {
		return models.AnalysisResult{Success: false, Error: err.Error()}
	}
	return models.AnalysisResult{Success: true, Report: rep}
}

func (e *Engine) logStage(stage Stage, total int, counts map[string]int) {
	evt := e.logger.Info().Str("stage", stage.String()).Int("total_items", total)
	for k, v := range counts {
		evt = evt.Int(k, v)
	}
	evt.Msg("Pipeline stage complete")
}

// validateCorpus rejects empty corpora and missing or duplicated ids
// before any computation starts.
func validateCorpus(items []models.Item) error {
	if len(items) == 0 {
		return ErrEmptyCorpus
	}
	seen := make(map[string]struct{}, len(items))
	for i, item := range items {
		if item.ID == "" {
			return fmt.Errorf("%w (index %d)", ErrMissingItemID, i)
		}
		if _, ok := seen[item.ID]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateItemID, item.ID)
		}
		seen[item.ID] = struct{}{}
	}
	return nil
}

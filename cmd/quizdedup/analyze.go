package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/thebtf/quizdedup/internal/config"
	"github.com/thebtf/quizdedup/internal/corpus"
	"github.com/thebtf/quizdedup/internal/engine"
	"github.com/thebtf/quizdedup/internal/store/sqlite"
	"github.com/thebtf/quizdedup/pkg/models"
)

var (
	analyzeCorpusPath    string
	analyzeChannel       string
	analyzeThreshold     float64
	analyzeNearThreshold float64
	analyzeWorkers       int
	analyzeOutPath       string
	analyzeSave          bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run duplicate detection over a corpus",
	Long: `Load items from a corpus file (--corpus) or the local item store and run
the full detection pipeline. The JSON result goes to stdout or --out.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		cfg := config.Get()
		applyAnalyzeOverrides(cmd, cfg)
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		var (
			items       []models.Item
			reportStore *sqlite.ReportStore
		)
		if analyzeCorpusPath != "" {
			loaded, err := corpus.LoadFile(analyzeCorpusPath)
			if err != nil {
				return err
			}
			items = loaded
		} else {
			if err := config.EnsureDataDir(); err != nil {
				return fmt.Errorf("ensure data dir: %w", err)
			}
			store, err := sqlite.NewStore(sqlite.StoreConfig{Path: cfg.DBPath})
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer store.Close()

			items, err = sqlite.NewItemStore(store).ListItems(ctx, analyzeChannel)
			if err != nil {
				return fmt.Errorf("load items: %w", err)
			}
			reportStore = sqlite.NewReportStore(store)
		}

		eng := engine.New(engine.Options{
			Thresholds:    cfg.Thresholds(),
			MergeMinSize:  cfg.MergeMinSize,
			Workers:       cfg.Workers,
			PreviewLength: cfg.PreviewLength,
			ChannelID:     analyzeChannel,
		}, log.Logger)

		result := eng.AnalyzeToResult(ctx, items)
		if result.Success && analyzeSave && reportStore != nil {
			if err := reportStore.SaveReport(ctx, result.Report); err != nil {
				log.Error().Err(err).Msg("Failed to save report")
			} else {
				log.Info().Str("run_id", result.Report.RunID).Msg("Report saved")
			}
		}

		out := cmd.OutOrStdout()
		if analyzeOutPath != "" {
			f, err := os.Create(analyzeOutPath)
			if err != nil {
				return fmt.Errorf("create output file: %w", err)
			}
			defer f.Close()
			out = f
		}

		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return fmt.Errorf("encode result: %w", err)
		}

		if !result.Success {
			return fmt.Errorf("analysis failed: %s", result.Error)
		}
		return nil
	},
}

// applyAnalyzeOverrides copies explicitly-set flags onto the config.
// A changed-flag check rather than a zero sentinel, so --near-threshold 0
// (a legal cutoff) is distinguishable from the flag being absent.
func applyAnalyzeOverrides(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("threshold") {
		cfg.DuplicateThreshold = analyzeThreshold
	}
	if flags.Changed("near-threshold") {
		cfg.NearDuplicateThreshold = analyzeNearThreshold
	}
	if flags.Changed("workers") {
		cfg.Workers = analyzeWorkers
	}
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeCorpusPath, "corpus", "c", "", "corpus file (.json, .yaml); omit to use the item store")
	analyzeCmd.Flags().StringVar(&analyzeChannel, "channel", "", "channel label (filters store items; bookkeeping only)")
	analyzeCmd.Flags().Float64VarP(&analyzeThreshold, "threshold", "t", 0, "duplicate threshold override (0,1]")
	analyzeCmd.Flags().Float64Var(&analyzeNearThreshold, "near-threshold", 0, "near-duplicate threshold override [0,1]")
	analyzeCmd.Flags().IntVarP(&analyzeWorkers, "workers", "w", 0, "similarity scan workers (0 = one per CPU)")
	analyzeCmd.Flags().StringVarP(&analyzeOutPath, "out", "o", "", "write the result to a file instead of stdout")
	analyzeCmd.Flags().BoolVar(&analyzeSave, "save", false, "persist the report in the local store (store-backed runs only)")
}

package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/thebtf/quizdedup/internal/config"
	"github.com/thebtf/quizdedup/internal/corpus"
	"github.com/thebtf/quizdedup/internal/store/sqlite"
)

var importCmd = &cobra.Command{
	Use:   "import <corpus-file>",
	Short: "Import a corpus file into the local item store",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		items, err := corpus.LoadFile(args[0])
		if err != nil {
			return err
		}

		cfg := config.Get()
		if err := config.EnsureDataDir(); err != nil {
			return fmt.Errorf("ensure data dir: %w", err)
		}
		store, err := sqlite.NewStore(sqlite.StoreConfig{Path: cfg.DBPath})
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer store.Close()

		itemStore := sqlite.NewItemStore(store)
		for _, item := range items {
			if err := itemStore.UpsertItem(ctx, item); err != nil {
				return err
			}
		}

		log.Info().Int("items", len(items)).Str("db", cfg.DBPath).Msg("Corpus imported")
		return nil
	},
}

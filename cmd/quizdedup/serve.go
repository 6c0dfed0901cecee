package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/thebtf/quizdedup/internal/config"
	"github.com/thebtf/quizdedup/internal/server"
)

var (
	servePort    int
	serveNoStore bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP analysis service",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()
		if servePort > 0 {
			cfg.ServerPort = servePort
		}

		svc, err := server.NewService(Version, cfg, !serveNoStore)
		if err != nil {
			return err
		}

		errCh := make(chan error, 1)
		go func() {
			errCh <- svc.Start()
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-errCh:
			return err
		case <-quit:
			log.Info().Msg("Received shutdown signal")
		}

		ctx, cancel := context.WithTimeout(context.Background(), server.ShutdownTimeout)
		defer cancel()
		if err := svc.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("Shutdown error")
			return err
		}

		log.Info().Msg("Service shutdown complete")
		return nil
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "listen port (default from settings)")
	serveCmd.Flags().BoolVar(&serveNoStore, "no-store", false, "run without the local item/report store")
}

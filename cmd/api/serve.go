package main

import (
	"context"
	"errors"
	"notesapi/internal/config"
	"notesapi/internal/server"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(root *rootOptions) *cobra.Command {
	var (
		addr        string
		store       string
		databaseURL string
		debug       bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			cfg, log, err := root.load(func(cfg *config.Config) {
				if flags.Changed("addr") {
					cfg.Addr = addr
				}
				if flags.Changed("store") {
					cfg.Store = store
				}
				if flags.Changed("database-url") {
					cfg.DatabaseURL = databaseURL
				}
				if flags.Changed("debug") {
					cfg.Debug = debug
				}
			})
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, log)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", config.DefaultAddr, "listen address")
	cmd.Flags().StringVar(&store, "store", config.StoreMemory, "note store: memory or sql")
	cmd.Flags().StringVar(&databaseURL, "database-url", config.DefaultDatabaseURL, "database url for the sql store")
	cmd.Flags().BoolVar(&debug, "debug", false, "enable pprof and /debug/memory")
	return cmd
}

func serve(ctx context.Context, cfg config.Config, log zerolog.Logger) error {
	notes, db, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}

	srv := server.New(cfg, notes, db, log)

	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Addr).Str("store", cfg.Store).Msg("listening")
		errc <- srv.Listen(cfg.Addr)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down gracefully")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.ShutdownWithContext(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if err := <-errc; err != nil {
		return err
	}
	log.Info().Msg("server exiting")
	return nil
}

package main

import (
	"notesapi/internal/config"
	"notesapi/internal/database"

	"github.com/spf13/cobra"
)

func newInitDBCmd(root *rootOptions) *cobra.Command {
	var databaseURL string
	cmd := &cobra.Command{
		Use:   "initdb",
		Short: "Create the notes table if it does not exist",
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			cfg, log, err := root.load(func(cfg *config.Config) {
				cfg.Store = config.StoreSQL
				if flags.Changed("database-url") {
					cfg.DatabaseURL = databaseURL
				}
			})
			if err != nil {
				return err
			}
			db, err := database.New(cmd.Context(), cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer db.Close()
			if err := db.Migrate(cmd.Context()); err != nil {
				return err
			}
			log.Info().Str("dialect", string(db.Dialect())).Msg("database schema is ready")
			return nil
		},
	}
	cmd.Flags().StringVar(&databaseURL, "database-url", config.DefaultDatabaseURL, "database url")
	return cmd
}

package main

import (
	"context"
	"fmt"
	"notesapi/internal/config"
	"notesapi/internal/database"
	"notesapi/internal/database/repositories"

	"github.com/rs/zerolog"
)

// openStore returns the note store selected by cfg. The database service is
// nil for the memory store.
func openStore(ctx context.Context, cfg config.Config, log zerolog.Logger) (repositories.NoteRepository, database.Service, error) {
	switch cfg.Store {
	case config.StoreMemory:
		log.Warn().Msg("using in-memory note store, notes are lost on restart")
		return repositories.NewMemoryNoteRepository(), nil, nil
	case config.StoreSQL:
		db, err := database.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		log.Info().Str("dialect", string(db.Dialect())).Msg("connected to note database")
		return repositories.NewNoteRepository(db.DB(), db.Dialect()), db, nil
	default:
		return nil, nil, fmt.Errorf("unknown store %q", cfg.Store)
	}
}

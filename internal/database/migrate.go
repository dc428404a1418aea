package database

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/database/sqlcipher"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations
var migrations embed.FS

// Migrate runs on its own connection because closing a migrate instance
// closes the *sql.DB it was given.
func (s *service) Migrate(ctx context.Context) error {
	db, err := sql.Open(s.target.Driver, s.target.DSN)
	if err != nil {
		return fmt.Errorf("error opening migration connection: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("error connecting for migration: %w", err)
	}
	return migrateUp(db, s.target.Dialect)
}

func migrateUp(db *sql.DB, dialect Dialect) error {
	src, err := iofs.New(migrations, "migrations/"+string(dialect))
	if err != nil {
		db.Close()
		return fmt.Errorf("error loading migrations: %w", err)
	}

	var driver migratedb.Driver
	switch dialect {
	case Postgres:
		driver, err = migratepgx.WithInstance(db, &migratepgx.Config{})
	case SQLite:
		driver, err = sqlcipher.WithInstance(db, &sqlcipher.Config{})
	default:
		err = fmt.Errorf("no migration driver for dialect %q", dialect)
	}
	if err != nil {
		db.Close()
		return fmt.Errorf("error preparing migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, string(dialect), driver)
	if err != nil {
		driver.Close()
		return fmt.Errorf("error creating migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("error applying migrations: %w", err)
	}
	return nil
}

package database

import (
	"fmt"
	"regexp"
	"strings"
)

type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

const (
	pgxDriverName    = "pgx"
	sqliteDriverName = "sqlite3"
)

// Target is a parsed DATABASE_URL.
type Target struct {
	Dialect Dialect
	Driver  string
	DSN     string
}

// ParseURL maps a database URL onto a driver. PostgreSQL URLs are passed to
// pgx untouched. SQLite URLs follow the sqlite:///relative.db and
// sqlite:////absolute.db convention; file: DSNs are passed through.
func ParseURL(raw string) (Target, error) {
	raw = strings.TrimSpace(raw)
	switch {
	case strings.HasPrefix(raw, "postgres://"), strings.HasPrefix(raw, "postgresql://"):
		return Target{Dialect: Postgres, Driver: pgxDriverName, DSN: raw}, nil
	case strings.HasPrefix(raw, "sqlite://"):
		path := strings.TrimPrefix(raw, "sqlite://")
		path = strings.TrimPrefix(path, "/")
		if path == "" || strings.HasPrefix(path, "?") {
			return Target{}, fmt.Errorf("database url %q has no file path", raw)
		}
		return Target{Dialect: SQLite, Driver: sqliteDriverName, DSN: path}, nil
	case strings.HasPrefix(raw, "file:"):
		return Target{Dialect: SQLite, Driver: sqliteDriverName, DSN: raw}, nil
	default:
		return Target{}, fmt.Errorf("unsupported database url %q", raw)
	}
}

var placeholder = regexp.MustCompile(`\$(\d+)`)

// Rebind rewrites $N placeholders for the dialect. SQLite gets ?N.
func (d Dialect) Rebind(query string) string {
	if d != SQLite {
		return query
	}
	return placeholder.ReplaceAllString(query, "?$1")
}

// SupportsReturning reports whether INSERT ... RETURNING can be used. The
// bundled SQLCipher predates RETURNING support.
func (d Dialect) SupportsReturning() bool {
	return d == Postgres
}

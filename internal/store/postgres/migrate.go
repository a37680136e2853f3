package postgres

import (
	"embed"
	"errors"

	crerr "github.com/cockroachdb/errors"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate applies every pending migration to the database at databaseURL.
// It returns the schema version after the run.
func Migrate(databaseURL string) (uint, error) {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return 0, crerr.Wrap(err, "open embedded migrations")
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, databaseURL)
	if err != nil {
		return 0, crerr.Wrap(err, "create migrator")
	}
	defer closeMigrator(m)

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return 0, crerr.Wrap(err, "apply migrations")
	}

	version, dirty, err := m.Version()
	if err != nil {
		return 0, crerr.Wrap(err, "read schema version")
	}
	if dirty {
		return version, crerr.Newf("schema version %d is dirty", version)
	}
	return version, nil
}

func closeMigrator(m *migrate.Migrate) {
	_, _ = m.Close()
}

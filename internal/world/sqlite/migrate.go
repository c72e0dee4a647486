// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ember Contributors

package sqlite

import (
	"embed"
	"errors"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/samber/oops"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// migrate applies pending schema migrations on the store's own connection so
// an in-memory database is migrated in place.
func (s *Store) migrate() error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return oops.Code("MIGRATION_SOURCE_FAILED").Wrap(err)
	}

	driver, err := migratesqlite.WithInstance(s.db, &migratesqlite.Config{})
	if err != nil {
		_ = source.Close() //nolint:errcheck // init error takes precedence
		return oops.Code("MIGRATION_INIT_FAILED").Wrap(err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite", driver)
	if err != nil {
		_ = source.Close() //nolint:errcheck // init error takes precedence
		return oops.Code("MIGRATION_INIT_FAILED").Wrap(err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return oops.Code("MIGRATION_UP_FAILED").With("path", s.path).Wrap(err)
	}
	return nil
}

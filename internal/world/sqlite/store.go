// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ember Contributors

// Package sqlite implements world.Store over an embedded SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/samber/oops"

	// Register the pure-Go sqlite driver with database/sql.
	_ "modernc.org/sqlite"

	"github.com/emberpath/ember/internal/world"
)

// MemorySentinel is the store path that selects a private in-memory
// database. It always implies first-time initialization.
const MemorySentinel = ":memory:"

// Store wraps a single SQLite handle. The engine is single-threaded, so the
// pool is pinned to one connection; that also keeps an in-memory database
// alive across transactions.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens the database at path and applies pending migrations. The
// MemorySentinel path opens a fresh in-memory database.
func Open(ctx context.Context, path string) (*Store, error) {
	dsn := path
	if path != MemorySentinel && !strings.Contains(path, "?") {
		dsn = path + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, oops.Code("STORE_OPEN_FAILED").With("path", path).Wrap(err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close() //nolint:errcheck // open error takes precedence
		return nil, oops.Code("STORE_OPEN_FAILED").With("path", path).Wrap(err)
	}

	s := &Store{db: db, path: path}
	if err := s.migrate(); err != nil {
		_ = db.Close() //nolint:errcheck // migrate error takes precedence
		return nil, err
	}
	return s, nil
}

// Begin opens a new transaction.
func (s *Store) Begin(ctx context.Context) (world.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, oops.Code("TX_BEGIN_FAILED").Wrap(err)
	}
	return &Tx{tx: tx}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return oops.Code("STORE_CLOSE_FAILED").Wrap(err)
	}
	return nil
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ember Contributors

package sqlite

import (
	"context"

	"github.com/samber/oops"
)

// Bootstrap ids created by Seed. Thing 1 is the first character and thing 2
// is the room both it and itself float in.
const (
	SeedCharacterID = 1
	SeedNexusID     = 2
)

// Initialized reports whether the store already holds a world.
func (s *Store) Initialized(ctx context.Context) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM things`).Scan(&n)
	if err != nil {
		return false, oops.Code("STORE_QUERY_FAILED").Wrap(err)
	}
	return n > 0, nil
}

// Seed writes the minimal default world: one character ("One") standing in
// one self-contained room ("Nexus"), with an account bound to the character
// using the supplied credential hash and salt.
func (s *Store) Seed(ctx context.Context, passwordHash, salt string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return oops.Code("TX_BEGIN_FAILED").Wrap(err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	seed := []struct {
		query string
		args  []any
	}{
		{`INSERT INTO things (id, owner_id, location_id, name) VALUES (?, ?, ?, ?)`,
			[]any{SeedCharacterID, SeedCharacterID, SeedNexusID, "One"}},
		{`INSERT INTO things (id, owner_id, location_id, name) VALUES (?, ?, ?, ?)`,
			[]any{SeedNexusID, SeedCharacterID, SeedNexusID, "Nexus"}},
		{`INSERT INTO properties (object_id, name, val) VALUES (?, ?, ?)`,
			[]any{SeedCharacterID, "desc", "A nameless, faceless, ageless, gender-neutral, culturally ambiguous embodiment of... well, it's not clear, really."}},
		{`INSERT INTO properties (object_id, name, val) VALUES (?, ?, ?)`,
			[]any{SeedNexusID, "desc", "It is a place: that is about all you can be sure of."}},
		{`INSERT INTO accounts (character_id, password_hash, salt) VALUES (?, ?, ?)`,
			[]any{SeedCharacterID, passwordHash, salt}},
	}
	for _, stmt := range seed {
		if _, err := tx.Exec(stmt.query, stmt.args...); err != nil {
			return oops.Code("STORE_SEED_FAILED").With("query", stmt.query).Wrap(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return oops.Code("TX_COMMIT_FAILED").Wrap(err)
	}
	return nil
}

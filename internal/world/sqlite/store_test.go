// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ember Contributors

package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberpath/ember/internal/world"
	"github.com/emberpath/ember/internal/world/sqlite"
)

func openStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.Open(context.Background(), sqlite.MemorySentinel)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})
	return store
}

func TestOpen_FileStorePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "world.db")

	store, err := sqlite.Open(ctx, path)
	require.NoError(t, err)

	tx, err := store.Begin(ctx)
	require.NoError(t, err)
	pebble, err := world.Create(tx, "pebble")
	require.NoError(t, err)
	require.NoError(t, pebble.SetProp("color", "gray"))
	require.NoError(t, tx.Commit())
	require.NoError(t, store.Close())

	store, err = sqlite.Open(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})

	tx, err = store.Begin(ctx)
	require.NoError(t, err)
	got, err := world.Fetch(tx, pebble.ID)
	require.NoError(t, err)
	assert.Equal(t, "pebble", got.Name)
	color, err := got.Prop("color")
	require.NoError(t, err)
	assert.Equal(t, "gray", color)
	require.NoError(t, tx.Rollback())
}

func TestOpen_MemoryStartsEmpty(t *testing.T) {
	store := openStore(t)

	initialized, err := store.Initialized(context.Background())
	require.NoError(t, err)
	assert.False(t, initialized)
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)

	require.NoError(t, store.Seed(ctx, "hash", "salt"))

	initialized, err := store.Initialized(ctx)
	require.NoError(t, err)
	assert.True(t, initialized)

	tx, err := store.Begin(ctx)
	require.NoError(t, err)
	defer tx.Rollback() //nolint:errcheck

	char, err := world.Fetch(tx, sqlite.SeedCharacterID)
	require.NoError(t, err)
	assert.Equal(t, "One", char.Name)

	loc, err := char.Location()
	require.NoError(t, err)
	require.NotNil(t, loc)
	assert.Equal(t, int64(sqlite.SeedNexusID), loc.ID)

	// The nexus floats: it is its own location.
	nexusLoc, err := loc.Location()
	require.NoError(t, err)
	require.NotNil(t, nexusLoc)
	assert.Equal(t, loc.ID, nexusLoc.ID)

	acct, err := tx.AccountByName("One")
	require.NoError(t, err)
	assert.Equal(t, int64(sqlite.SeedCharacterID), acct.CharacterID)
	assert.Equal(t, "hash", acct.PasswordHash)
	assert.Equal(t, "salt", acct.Salt)
}

func TestCreateThing_SelfReferences(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	tx, err := store.Begin(ctx)
	require.NoError(t, err)
	defer tx.Rollback() //nolint:errcheck

	th, err := world.Create(tx, "pebble")
	require.NoError(t, err)

	owner, err := tx.ThingOwner(th.ID)
	require.NoError(t, err)
	assert.Equal(t, th.ID, owner)

	loc, ok, err := tx.ThingLocation(th.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, th.ID, loc)
}

func TestProperties_UpsertAndDelete(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	tx, err := store.Begin(ctx)
	require.NoError(t, err)
	defer tx.Rollback() //nolint:errcheck

	th, err := world.Create(tx, "pebble")
	require.NoError(t, err)

	require.NoError(t, tx.SetProperty(th.ID, "desc", "round"))
	require.NoError(t, tx.SetProperty(th.ID, "desc", "rounder"))

	v, ok, err := tx.Property(th.ID, "desc")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "rounder", v)

	require.NoError(t, tx.DeleteProperty(th.ID, "desc"))
	assert.ErrorIs(t, tx.DeleteProperty(th.ID, "desc"), world.ErrNotFound)

	_, ok, err = tx.Property(th.ID, "desc")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCommit_Persists(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)

	tx, err := store.Begin(ctx)
	require.NoError(t, err)
	th, err := world.Create(tx, "pebble")
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	tx2, err := store.Begin(ctx)
	require.NoError(t, err)
	defer tx2.Rollback() //nolint:errcheck
	got, err := world.Fetch(tx2, th.ID)
	require.NoError(t, err)
	assert.Equal(t, "pebble", got.Name)
}

func TestRollback_Discards(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)

	tx, err := store.Begin(ctx)
	require.NoError(t, err)
	th, err := world.Create(tx, "pebble")
	require.NoError(t, err)
	require.NoError(t, tx.Rollback())

	tx2, err := store.Begin(ctx)
	require.NoError(t, err)
	defer tx2.Rollback() //nolint:errcheck
	_, err = world.Fetch(tx2, th.ID)
	assert.ErrorIs(t, err, world.ErrNotFound)
}

func TestAccounts(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	tx, err := store.Begin(ctx)
	require.NoError(t, err)
	defer tx.Rollback() //nolint:errcheck

	alice, err := world.Create(tx, "Alice")
	require.NoError(t, err)
	_, err = tx.CreateAccount(alice.ID, "hash", "salt")
	require.NoError(t, err)

	byName, err := tx.AccountByName("Alice")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, byName.CharacterID)

	byChar, err := tx.AccountByCharacter(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, byName.ID, byChar.ID)

	_, err = tx.AccountByName("Mallory")
	assert.ErrorIs(t, err, world.ErrNotFound)

	require.NoError(t, tx.SetAccountPassword(alice.ID, "hash2", "salt2"))
	byChar, err = tx.AccountByCharacter(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "hash2", byChar.PasswordHash)
	assert.Equal(t, "salt2", byChar.Salt)

	inUse, err := tx.CharacterNameInUse("Alice", 0)
	require.NoError(t, err)
	assert.True(t, inUse)

	inUse, err = tx.CharacterNameInUse("Alice", alice.ID)
	require.NoError(t, err)
	assert.False(t, inUse)
}

func TestContents_Ordering(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	tx, err := store.Begin(ctx)
	require.NoError(t, err)
	defer tx.Rollback() //nolint:errcheck

	room, err := world.Create(tx, "Nexus")
	require.NoError(t, err)
	for _, name := range []string{"pebble", "stick", "leaf"} {
		th, err := world.Create(tx, name)
		require.NoError(t, err)
		require.NoError(t, th.MoveTo(room))
	}

	ids, err := tx.Contents(room.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 3, 4}, ids)
}

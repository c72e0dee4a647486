// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ember Contributors

package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberpath/ember/internal/auth"
	"github.com/emberpath/ember/internal/world"
	"github.com/emberpath/ember/internal/world/worldtest"
)

func TestLevelOf_BootstrapIsAlwaysWizard(t *testing.T) {
	tx, err := worldtest.NewStore().Begin(context.Background())
	require.NoError(t, err)
	char, err := world.Create(tx, "One")
	require.NoError(t, err)

	// Even an explicitly stored lower level does not demote the bootstrap.
	require.NoError(t, auth.SetLevel(char, auth.Guest))

	level, err := auth.LevelOf(char, char.ID)
	require.NoError(t, err)
	assert.Equal(t, auth.Wizard, level)
}

func TestLevelOf_DefaultGuestIsPersisted(t *testing.T) {
	tx, err := worldtest.NewStore().Begin(context.Background())
	require.NoError(t, err)
	char, err := world.Create(tx, "Alice")
	require.NoError(t, err)

	level, err := auth.LevelOf(char, 0)
	require.NoError(t, err)
	assert.Equal(t, auth.Guest, level)

	stored, err := char.Prop(auth.PermissionProp)
	require.NoError(t, err)
	assert.Equal(t, "guest", stored)
}

func TestLevelOf_Stored(t *testing.T) {
	tx, err := worldtest.NewStore().Begin(context.Background())
	require.NoError(t, err)
	char, err := world.Create(tx, "Alice")
	require.NoError(t, err)

	require.NoError(t, auth.SetLevel(char, auth.Builder))
	level, err := auth.LevelOf(char, 0)
	require.NoError(t, err)
	assert.Equal(t, auth.Builder, level)
}

func TestLevelOf_GarbageStoredValue(t *testing.T) {
	tx, err := worldtest.NewStore().Begin(context.Background())
	require.NoError(t, err)
	char, err := world.Create(tx, "Alice")
	require.NoError(t, err)

	require.NoError(t, char.SetProp(auth.PermissionProp, "archmage"))
	_, err = auth.LevelOf(char, 0)
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	for _, want := range []auth.Level{auth.Guest, auth.Builder, auth.Wizard} {
		got, err := auth.ParseLevel(want.String())
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := auth.ParseLevel("archmage")
	assert.Error(t, err)
}

func TestLevelOrdering(t *testing.T) {
	assert.True(t, auth.Guest < auth.Builder)
	assert.True(t, auth.Builder < auth.Wizard)
}

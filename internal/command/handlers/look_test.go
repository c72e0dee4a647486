// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ember Contributors

package handlers_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberpath/ember/internal/command/handlers"
	"github.com/emberpath/ember/internal/world"
)

func TestLook_LocationByDefault(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.room.SetProp("desc", "It is a place."))

	require.NoError(t, f.run(handlers.Look, ""))

	assert.Equal(t, []string{
		"Nexus [#1]",
		"It is a place.",
		"You can see: Alice [#2]",
	}, f.link.lines())
}

func TestLook_DefaultDescription(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.run(handlers.Look, ""))

	lines := f.link.lines()
	require.Len(t, lines, 3)
	assert.Equal(t, "You see nothing special.", lines[1])
}

func TestLook_Target(t *testing.T) {
	f := newFixture(t)
	pebble, err := world.Create(f.exec.Tx, "pebble")
	require.NoError(t, err)
	require.NoError(t, pebble.MoveTo(f.room))
	require.NoError(t, pebble.SetProp("desc", "Small and round."))

	require.NoError(t, f.run(handlers.Look, "pebble"))

	assert.Equal(t, []string{
		"pebble [#3]",
		"Small and round.",
	}, f.link.lines())
}

func TestLook_UnknownTarget(t *testing.T) {
	f := newFixture(t)

	err := f.run(handlers.Look, "unicorn")
	assert.Equal(t, "I can't find any such thing as `unicorn'.", playerMessage(t, f, err))
}

func TestLook_AmbiguousTarget(t *testing.T) {
	f := newFixture(t)
	f.join(t, "north gate")
	f.join(t, "north door")

	err := f.run(handlers.Look, "north")
	assert.Equal(t, "`north' is ambiguous -- I can't tell which thing you mean.", playerMessage(t, f, err))
}

func TestLook_Nowhere(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.exec.Tx.SetThingLocation(f.exec.Actor.ID, 999))

	require.NoError(t, f.run(handlers.Look, ""))

	lines := f.link.lines()
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "don't seem to actually be in a location")
}

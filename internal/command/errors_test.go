// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ember Contributors

package command

import (
	"testing"

	"github.com/samber/oops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberpath/ember/internal/text"
)

func TestPlayerMessage_CommandError(t *testing.T) {
	texts := text.NewTable(nil)

	msg, ok := PlayerMessage(ErrCommand("Say what?"), texts)
	require.True(t, ok)
	assert.Equal(t, "Say what?", msg)

	msg, ok = PlayerMessage(ErrCommandf("no %s here", "pebble"), texts)
	require.True(t, ok)
	assert.Equal(t, "no pebble here", msg)
}

func TestPlayerMessage_SyntaxError(t *testing.T) {
	texts := text.NewTable(nil)

	msg, ok := PlayerMessage(ErrSyntax("@create <name>"), texts)
	require.True(t, ok)
	assert.Equal(t, texts.Getf(text.Syntax, "@create <name>"), msg)
}

func TestPlayerMessage_PermissionDenied(t *testing.T) {
	texts := text.NewTable(nil)

	msg, ok := PlayerMessage(ErrPermissionDenied("@dig"), texts)
	require.True(t, ok)
	assert.Equal(t, texts.Get(text.PermissionDenied), msg)
}

func TestPlayerMessage_UnexpectedErrorsAreNotShown(t *testing.T) {
	texts := text.NewTable(nil)

	_, ok := PlayerMessage(oops.Code("STORE_QUERY_FAILED").Errorf("boom"), texts)
	assert.False(t, ok)

	_, ok = PlayerMessage(assert.AnError, texts)
	assert.False(t, ok)
}

func TestPlayerMessage_CommandErrorWithoutMessage(t *testing.T) {
	texts := text.NewTable(nil)

	msg, ok := PlayerMessage(oops.Code(CodeCommandError).Errorf("internal detail"), texts)
	require.True(t, ok)
	assert.Equal(t, texts.Get(text.CommandErrNoMsg), msg)
}

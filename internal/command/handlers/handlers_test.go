// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ember Contributors

package handlers_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/emberpath/ember/internal/auth"
	"github.com/emberpath/ember/internal/command"
	"github.com/emberpath/ember/internal/command/handlers"
	"github.com/emberpath/ember/internal/session"
	"github.com/emberpath/ember/internal/text"
	"github.com/emberpath/ember/internal/world"
	"github.com/emberpath/ember/internal/world/worldtest"
)

type fakeLink struct {
	out    []string
	killed bool
}

func (l *fakeLink) Write(text string) { l.out = append(l.out, text) }
func (l *fakeLink) Kill()             { l.killed = true }

// lines returns everything written to the link, line terminators stripped.
func (l *fakeLink) lines() []string {
	out := make([]string, len(l.out))
	for i, s := range l.out {
		out[i] = strings.TrimSuffix(s, session.Terminator)
	}
	return out
}

// fixture is a room with the actor standing in it and a live session.
type fixture struct {
	exec *command.Execution
	link *fakeLink
	room *world.Thing
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	tx, err := worldtest.NewStore().Begin(context.Background())
	require.NoError(t, err)

	room, err := world.Create(tx, "Nexus")
	require.NoError(t, err)
	actor, err := world.Create(tx, "Alice")
	require.NoError(t, err)
	require.NoError(t, actor.MoveTo(room))

	link := &fakeLink{}
	sessions := session.NewRegistry()
	s := sessions.Add(link)
	sessions.Authenticate(link, actor.ID)

	reg := command.NewRegistry()
	handlers.Register(reg)

	return &fixture{
		exec: &command.Execution{
			Actor:    actor,
			Tx:       tx,
			Session:  s,
			Sessions: sessions,
			Auth:     auth.NewService(auth.NewHasher()),
			Registry: reg,
			Texts:    text.NewTable(nil),
		},
		link: link,
		room: room,
	}
}

// join adds another connected character to the fixture's room.
func (f *fixture) join(t *testing.T, name string) (*world.Thing, *fakeLink) {
	t.Helper()
	th, err := world.Create(f.exec.Tx, name)
	require.NoError(t, err)
	require.NoError(t, th.MoveTo(f.room))

	link := &fakeLink{}
	f.exec.Sessions.Add(link)
	f.exec.Sessions.Authenticate(link, th.ID)
	return th, link
}

// run invokes a handler the way the dispatcher would, with args set.
func (f *fixture) run(h command.Handler, args string) error {
	f.exec.Args = args
	return h(context.Background(), f.exec)
}

// playerMessage asserts err is an expected command error and returns its
// player-facing message.
func playerMessage(t *testing.T, f *fixture, err error) string {
	t.Helper()
	require.Error(t, err)
	msg, ok := command.PlayerMessage(err, f.exec.Texts)
	require.True(t, ok, "expected a player-facing error, got: %v", err)
	return msg
}

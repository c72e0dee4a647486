// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ember Contributors

package game_test

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberpath/ember/internal/auth"
	"github.com/emberpath/ember/internal/command"
	"github.com/emberpath/ember/internal/command/handlers"
	"github.com/emberpath/ember/internal/game"
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

func (l *fakeLink) lines() []string {
	out := make([]string, len(l.out))
	for i, s := range l.out {
		out[i] = strings.TrimSuffix(s, session.Terminator)
	}
	return out
}

func (l *fakeLink) clear() { l.out = nil }

// harness is a seeded world behind a live engine: Alice (the bootstrap
// character) and Bob, both with accounts, standing in the Nexus.
type harness struct {
	engine   *game.Engine
	store    *worldtest.Store
	registry *command.Registry

	aliceID int64
	bobID   int64
	roomID  int64
}

func newHarness(t *testing.T, opts game.Options) *harness {
	t.Helper()
	ctx := context.Background()
	store := worldtest.NewStore()
	svc := auth.NewService(auth.NewHasher())

	tx, err := store.Begin(ctx)
	require.NoError(t, err)
	alice, err := svc.CreateAccount(tx, "Alice", "hunter2")
	require.NoError(t, err)
	bob, err := svc.CreateAccount(tx, "Bob", "hunter2")
	require.NoError(t, err)
	room, err := world.Create(tx, "Nexus")
	require.NoError(t, err)
	require.NoError(t, alice.MoveTo(room))
	require.NoError(t, bob.MoveTo(room))
	require.NoError(t, tx.Commit())

	registry := command.NewRegistry()
	handlers.Register(registry)

	if reflect.DeepEqual(opts.Texts, text.Table{}) {
		opts.Texts = text.NewTable(nil)
	}
	if opts.BootstrapID == 0 {
		opts.BootstrapID = alice.ID
	}
	if opts.OnLogin == nil {
		opts.OnLogin = []string{"look"}
	}

	return &harness{
		engine:   game.NewEngine(store, session.NewRegistry(), registry, svc, opts),
		store:    store,
		registry: registry,
		aliceID:  alice.ID,
		bobID:    bob.ID,
		roomID:   room.ID,
	}
}

// connect opens a link and logs in as name.
func (h *harness) connect(t *testing.T, name, password string) *fakeLink {
	t.Helper()
	link := &fakeLink{}
	h.engine.OnConnection(link)
	h.engine.OnText(context.Background(), link, "connect "+name+" "+password)
	return link
}

func (h *harness) send(link *fakeLink, line string) {
	h.engine.OnText(context.Background(), link, line)
}

func TestEngine_ConnectionGreeting(t *testing.T) {
	h := newHarness(t, game.Options{})
	link := &fakeLink{}

	h.engine.OnConnection(link)

	require.Len(t, link.lines(), 1)
	assert.Contains(t, link.lines()[0], "connect <name> <password>")
}

func TestEngine_LoginRunsOnLoginCommands(t *testing.T) {
	h := newHarness(t, game.Options{})

	link := h.connect(t, "Alice", "hunter2")

	// Welcome, then the configured look: room name, description, contents.
	out := link.lines()
	require.Len(t, out, 4)
	assert.Equal(t, "Nexus [#3]", out[1])
	assert.Equal(t, "You see nothing special.", out[2])
	assert.Equal(t, "You can see: Alice [#1], Bob [#2]", out[3])
}

func TestEngine_LoginMOTDAfterOnLogin(t *testing.T) {
	h := newHarness(t, game.Options{MOTD: "The board meets at dusk."})

	link := h.connect(t, "Alice", "hunter2")

	out := link.lines()
	assert.Equal(t, "The board meets at dusk.", out[len(out)-1])
}

func TestEngine_LoginAnnouncesArrival(t *testing.T) {
	h := newHarness(t, game.Options{})
	bobLink := h.connect(t, "Bob", "hunter2")
	bobLink.clear()

	h.connect(t, "Alice", "hunter2")

	assert.Equal(t, []string{"Alice has connected."}, bobLink.lines())
}

func TestEngine_LoginFailuresAreGeneric(t *testing.T) {
	h := newHarness(t, game.Options{})

	wrongPw := h.connect(t, "Alice", "axolotl")
	unknown := h.connect(t, "Mallory", "hunter2")

	assert.Equal(t, wrongPw.lines()[1], unknown.lines()[1])
	assert.Contains(t, wrongPw.lines()[1], "credentials were not right")
}

func TestEngine_LoginSyntax(t *testing.T) {
	h := newHarness(t, game.Options{})
	link := &fakeLink{}
	h.engine.OnConnection(link)
	link.clear()

	h.send(link, "connect Alice")
	require.Len(t, link.lines(), 1)
	assert.Contains(t, link.lines()[0], "connect <username> <password>")
}

func TestEngine_OnlyConnectBeforeLogin(t *testing.T) {
	h := newHarness(t, game.Options{})
	link := &fakeLink{}
	h.engine.OnConnection(link)
	link.clear()

	h.send(link, "look")
	require.Len(t, link.lines(), 1)
	assert.Equal(t, "I don't understand what you mean.", link.lines()[0])
}

func TestEngine_SayReachesRoom(t *testing.T) {
	h := newHarness(t, game.Options{})
	alice := h.connect(t, "Alice", "hunter2")
	bob := h.connect(t, "Bob", "hunter2")
	alice.clear()
	bob.clear()

	h.send(alice, `"hello`)

	assert.Equal(t, []string{`You say, "hello"`}, alice.lines())
	assert.Equal(t, []string{`Alice says, "hello"`}, bob.lines())
}

func TestEngine_UnknownCommand(t *testing.T) {
	h := newHarness(t, game.Options{})
	alice := h.connect(t, "Alice", "hunter2")
	alice.clear()

	h.send(alice, "defenestrate")

	assert.Equal(t, []string{"I don't understand what you mean."}, alice.lines())
}

func TestEngine_RecordsLoginAndUnmatchedMetrics(t *testing.T) {
	h := newHarness(t, game.Options{})

	failures := testutil.ToFloat64(command.Logins.WithLabelValues(command.StatusFailure))
	successes := testutil.ToFloat64(command.Logins.WithLabelValues(command.StatusSuccess))
	unmatched := testutil.ToFloat64(command.CommandExecutions.WithLabelValues(command.UnknownCommand, command.StatusUnmatched))

	h.connect(t, "Alice", "axolotl")
	alice := h.connect(t, "Alice", "hunter2")
	h.send(alice, "defenestrate")

	assert.Equal(t, failures+1, testutil.ToFloat64(command.Logins.WithLabelValues(command.StatusFailure)))
	assert.Equal(t, successes+1, testutil.ToFloat64(command.Logins.WithLabelValues(command.StatusSuccess)))
	assert.Equal(t, unmatched+1, testutil.ToFloat64(command.CommandExecutions.WithLabelValues(command.UnknownCommand, command.StatusUnmatched)))
}

func TestEngine_PermissionDenied(t *testing.T) {
	h := newHarness(t, game.Options{})
	bob := h.connect(t, "Bob", "hunter2")
	bob.clear()

	h.send(bob, "@dig Annex")

	assert.Equal(t, []string{"You don't have permission to do that."}, bob.lines())
}

func TestEngine_BootstrapIsWizard(t *testing.T) {
	h := newHarness(t, game.Options{})
	alice := h.connect(t, "Alice", "hunter2")
	alice.clear()

	h.send(alice, "@account Carol=sesame")

	require.Len(t, alice.lines(), 1)
	assert.Contains(t, alice.lines()[0], "Created an account for Carol")
}

func TestEngine_CommandErrorRollsBackWrites(t *testing.T) {
	h := newHarness(t, game.Options{})
	h.registry.Register(command.Entry{
		Name: "poke",
		Kind: command.Exact,
		Handler: func(_ context.Context, exec *command.Execution) error {
			if err := exec.Actor.SetProp("poked", "yes"); err != nil {
				return err
			}
			return command.ErrCommand("Ouch.")
		},
	})
	alice := h.connect(t, "Alice", "hunter2")
	alice.clear()

	h.send(alice, "poke")
	assert.Equal(t, []string{"Ouch."}, alice.lines())

	// The property write must not have survived the failed command.
	tx, err := h.store.Begin(context.Background())
	require.NoError(t, err)
	defer tx.Rollback() //nolint:errcheck
	_, ok, err := tx.Property(h.aliceID, "poked")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEngine_UnexpectedErrorIsMasked(t *testing.T) {
	h := newHarness(t, game.Options{})
	h.registry.Register(command.Entry{
		Name: "explode",
		Kind: command.Exact,
		Handler: func(_ context.Context, _ *command.Execution) error {
			return assert.AnError
		},
	})
	alice := h.connect(t, "Alice", "hunter2")
	alice.clear()

	h.send(alice, "explode")

	require.Len(t, alice.lines(), 1)
	assert.Contains(t, alice.lines()[0], "Something went wrong on our side")
	assert.NotContains(t, alice.lines()[0], assert.AnError.Error())
}

func TestEngine_ShowTracebacksAppendsDetail(t *testing.T) {
	h := newHarness(t, game.Options{ShowTracebacks: true})
	h.registry.Register(command.Entry{
		Name: "explode",
		Kind: command.Exact,
		Handler: func(_ context.Context, _ *command.Execution) error {
			return assert.AnError
		},
	})
	alice := h.connect(t, "Alice", "hunter2")
	alice.clear()

	h.send(alice, "explode")

	require.Len(t, alice.lines(), 1)
	assert.Contains(t, alice.lines()[0], assert.AnError.Error())
}

func TestEngine_QuitKillsLink(t *testing.T) {
	h := newHarness(t, game.Options{})
	alice := h.connect(t, "Alice", "hunter2")
	alice.clear()

	h.send(alice, "quit")

	assert.Equal(t, []string{"Goodbye."}, alice.lines())
	assert.True(t, alice.killed)
}

func TestEngine_DisconnectAnnouncesDeparture(t *testing.T) {
	h := newHarness(t, game.Options{})
	alice := h.connect(t, "Alice", "hunter2")
	bob := h.connect(t, "Bob", "hunter2")
	bob.clear()

	h.engine.OnDisconnection(context.Background(), alice)

	assert.Equal(t, []string{"Alice has disconnected."}, bob.lines())
}

func TestEngine_UnauthenticatedDisconnectIsSilent(t *testing.T) {
	h := newHarness(t, game.Options{})
	bob := h.connect(t, "Bob", "hunter2")
	bob.clear()

	link := &fakeLink{}
	h.engine.OnConnection(link)
	h.engine.OnDisconnection(context.Background(), link)

	assert.Empty(t, bob.lines())
}

func TestEngine_SecondLoginDisplacesFirst(t *testing.T) {
	h := newHarness(t, game.Options{})
	first := h.connect(t, "Alice", "hunter2")
	second := h.connect(t, "Alice", "hunter2")
	first.clear()
	second.clear()

	h.send(second, `"still here`)

	assert.Empty(t, first.lines())
	assert.Equal(t, []string{`You say, "still here"`}, second.lines())
}

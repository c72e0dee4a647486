// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ember Contributors

// Package game wires the world, sessions, and commands into the engine the
// transport drives: one connection, line, or disconnection event at a time,
// each handled to completion before the next.
package game

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/emberpath/ember/internal/auth"
	"github.com/emberpath/ember/internal/command"
	"github.com/emberpath/ember/internal/session"
	"github.com/emberpath/ember/internal/text"
	"github.com/emberpath/ember/internal/world"
)

// loginVerb is the only command available to an unauthenticated session.
const loginVerb = "connect"

// Options configures engine behavior that is not derived from the store.
type Options struct {
	// MOTD, when non-empty, is written after a successful login.
	MOTD string
	// OnLogin is an ordered list of command lines run against the session
	// right after it authenticates.
	OnLogin []string
	// BootstrapID names the character that is always a wizard.
	BootstrapID int64
	// ShowTracebacks appends error detail to the generic failure message.
	ShowTracebacks bool
	// Texts overrides user-visible messages.
	Texts text.Table
}

// Engine is the core of the server. It owns no goroutines and performs no
// blocking I/O; the transport calls it with one event at a time.
type Engine struct {
	store      world.Store
	sessions   *session.Registry
	registry   *command.Registry
	dispatcher *command.Dispatcher
	auth       *auth.Service
	opts       Options
}

// NewEngine creates an engine.
func NewEngine(store world.Store, sessions *session.Registry, registry *command.Registry, authSvc *auth.Service, opts Options) *Engine {
	return &Engine{
		store:      store,
		sessions:   sessions,
		registry:   registry,
		dispatcher: command.NewDispatcher(registry),
		auth:       authSvc,
		opts:       opts,
	}
}

// OnConnection registers a new link and greets it.
func (e *Engine) OnConnection(link session.Link) {
	e.sessions.Add(link)
	session.WriteLine(link, e.opts.Texts.Get(text.Welcome))
}

// OnText handles one line of input from a link.
func (e *Engine) OnText(ctx context.Context, link session.Link, line string) {
	s := e.sessions.Get(link)
	if s == nil {
		slog.WarnContext(ctx, "text from unknown link dropped")
		return
	}
	if !s.Authenticated() {
		e.login(ctx, s, line)
		return
	}
	e.dispatchLine(ctx, s, line)
}

// OnDisconnection tears down a link's session, broadcasting departure when
// it was authenticated.
func (e *Engine) OnDisconnection(ctx context.Context, link session.Link) {
	s := e.sessions.Remove(link)
	if s == nil || !s.Authenticated() {
		return
	}
	e.broadcastPresence(ctx, s.CharacterID, text.HasDisconnected)
}

// login processes input from an unauthenticated session. Only the connect
// verb is accepted; an unknown account and a wrong password produce the
// same generic failure.
func (e *Engine) login(ctx context.Context, s *session.Session, line string) {
	rest, ok := strings.CutPrefix(line, loginVerb)
	if !ok {
		session.WriteLine(s.Link, e.opts.Texts.Get(text.NotUnderstood))
		return
	}

	args := strings.Fields(rest)
	if len(args) != 2 {
		session.WriteLine(s.Link, e.opts.Texts.Getf(text.Syntax, "connect <username> <password>"))
		return
	}
	name, password := args[0], args[1]

	charID, err := e.authenticate(ctx, name, password)
	if err != nil {
		if errors.Is(err, auth.ErrBadCredentials) {
			command.RecordLogin(command.StatusFailure)
			session.WriteLine(s.Link, e.opts.Texts.Get(text.BadLogin))
			return
		}
		slog.ErrorContext(ctx, "login failed unexpectedly", "name", name, "error", err)
		session.WriteLine(s.Link, e.opts.Texts.Get(text.InternalError))
		return
	}

	e.sessions.Authenticate(s.Link, charID)
	command.RecordLogin(command.StatusSuccess)
	slog.InfoContext(ctx, "character connected", "character_id", charID, "name", name)

	for _, cmdLine := range e.opts.OnLogin {
		e.dispatchLine(ctx, s, cmdLine)
	}
	if e.opts.MOTD != "" {
		session.WriteLine(s.Link, e.opts.MOTD)
	}
	e.broadcastPresence(ctx, charID, text.HasConnected)
}

// authenticate runs the credential check in its own transaction and
// re-verifies that the bound character still exists.
func (e *Engine) authenticate(ctx context.Context, name, password string) (int64, error) {
	tx, err := e.store.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback() //nolint:errcheck // read-only; rollback after commit is a no-op

	charID, err := e.auth.Authenticate(tx, name, password)
	if err != nil {
		return 0, err
	}
	if _, err := world.Fetch(tx, charID); err != nil {
		if errors.Is(err, world.ErrNotFound) {
			return 0, auth.ErrBadCredentials
		}
		return 0, err
	}
	return charID, tx.Commit()
}

// broadcastPresence tells a character's co-occupants that it arrived or
// left. Best-effort: failures are logged, never surfaced.
func (e *Engine) broadcastPresence(ctx context.Context, charID int64, key string) {
	tx, err := e.store.Begin(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "presence broadcast failed", "character_id", charID, "error", err)
		return
	}
	defer tx.Rollback() //nolint:errcheck // read-only; rollback after commit is a no-op

	char, err := world.Fetch(tx, charID)
	if err != nil {
		slog.WarnContext(ctx, "presence broadcast for missing character", "character_id", charID, "error", err)
		return
	}
	loc, err := char.Location()
	if err != nil || loc == nil {
		return
	}
	contents, err := loc.Contents()
	if err != nil {
		return
	}
	line := e.opts.Texts.Getf(key, char.Name)
	for _, th := range contents {
		if th.ID == charID {
			continue
		}
		if link := e.sessions.LinkFor(th.ID); link != nil {
			session.WriteLine(link, line)
		}
	}
	_ = tx.Commit() //nolint:errcheck // read-only
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ember Contributors

// Package command provides the ordered command registry, the dispatcher,
// and the command error taxonomy.
package command

import (
	"context"

	"github.com/emberpath/ember/internal/auth"
	"github.com/emberpath/ember/internal/session"
	"github.com/emberpath/ember/internal/text"
	"github.com/emberpath/ember/internal/world"
)

// Handler is the function signature for command handlers. A handler runs
// inside one store transaction; returning an error rolls it back.
type Handler func(ctx context.Context, exec *Execution) error

// Kind tags how an entry's name matches input.
type Kind int

const (
	// Exact matches when the trimmed line equals the name or continues it
	// past a single space boundary.
	Exact Kind = iota
	// Prefix matches when the raw line starts with the literal; the rest of
	// the line, untrimmed, becomes the arguments.
	Prefix
)

// Entry is one registered command.
type Entry struct {
	Name     string
	Kind     Kind
	MinLevel auth.Level
	Handler  Handler
	Usage    string
	Help     string
}

// Execution is the per-dispatch context handed to handlers. Handlers must
// not retain it past their return.
type Execution struct {
	Actor   *world.Thing
	Tx      world.Tx
	Args    string
	Session *session.Session

	Sessions    *session.Registry
	Auth        *auth.Service
	Registry    *Registry
	Texts       text.Table
	BootstrapID int64
}

// Output writes one line to the acting session.
func (e *Execution) Output(line string) {
	session.WriteLine(e.Session.Link, line)
}

// Outputf formats and writes one line to the acting session.
func (e *Execution) Outputf(format string, args ...any) {
	session.WriteLinef(e.Session.Link, format, args...)
}

// Broadcast writes one line to every connected character inside loc, except
// the ids listed in exclude.
func (e *Execution) Broadcast(loc *world.Thing, line string, exclude ...int64) error {
	contents, err := loc.Contents()
	if err != nil {
		return err
	}
next:
	for _, th := range contents {
		for _, ex := range exclude {
			if th.ID == ex {
				continue next
			}
		}
		if link := e.Sessions.LinkFor(th.ID); link != nil {
			session.WriteLine(link, line)
		}
	}
	return nil
}

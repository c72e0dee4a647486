// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ember Contributors

package game

import (
	"context"
	"log/slog"
	"strings"

	"github.com/emberpath/ember/internal/command"
	"github.com/emberpath/ember/internal/session"
	"github.com/emberpath/ember/internal/text"
	"github.com/emberpath/ember/internal/world"
)

// dispatchLine runs one command line inside its own transaction. A command
// that completes normally commits; any error, expected or not, rolls back
// so a command is all-or-nothing.
func (e *Engine) dispatchLine(ctx context.Context, s *session.Session, line string) {
	tx, err := e.store.Begin(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "could not open transaction", "error", err)
		session.WriteLine(s.Link, e.opts.Texts.Get(text.InternalError))
		return
	}

	actor, err := world.Fetch(tx, s.CharacterID)
	if err != nil {
		slog.ErrorContext(ctx, "session bound to missing character", "character_id", s.CharacterID, "error", err)
		session.WriteLine(s.Link, e.opts.Texts.Get(text.InternalError))
		_ = tx.Rollback()
		return
	}

	exec := &command.Execution{
		Actor:       actor,
		Tx:          tx,
		Session:     s,
		Sessions:    e.sessions,
		Auth:        e.auth,
		Registry:    e.registry,
		Texts:       e.opts.Texts,
		BootstrapID: e.opts.BootstrapID,
	}

	handled, err := e.dispatcher.Dispatch(ctx, line, exec)
	if !handled && err == nil {
		handled, err = e.tryMovement(ctx, exec, line)
	}
	if !handled && err == nil {
		command.RecordCommandExecution(command.UnknownCommand, command.StatusUnmatched)
		session.WriteLine(s.Link, e.opts.Texts.Get(text.NotUnderstood))
		_ = tx.Rollback()
		return
	}

	if err != nil {
		if msg, expected := command.PlayerMessage(err, e.opts.Texts); expected {
			session.WriteLine(s.Link, msg)
		} else {
			slog.ErrorContext(ctx, "command failed unexpectedly",
				"character_id", s.CharacterID, "line", line, "error", err)
			msg := e.opts.Texts.Get(text.InternalError)
			if e.opts.ShowTracebacks {
				msg += " (" + err.Error() + ")"
			}
			session.WriteLine(s.Link, msg)
		}
		if rbErr := tx.Rollback(); rbErr != nil {
			slog.ErrorContext(ctx, "rollback failed", "error", rbErr)
		}
		return
	}

	if err := tx.Commit(); err != nil {
		slog.ErrorContext(ctx, "commit failed", "character_id", s.CharacterID, "error", err)
		session.WriteLine(s.Link, e.opts.Texts.Get(text.InternalError))
	}
}

// tryMovement treats unmatched input as an exit name in the actor's
// location. A unique substring match moves the actor through the exit,
// announces the move to both rooms, and shows the new location.
func (e *Engine) tryMovement(ctx context.Context, exec *command.Execution, line string) (bool, error) {
	input := strings.TrimSpace(line)
	if input == "" {
		return false, nil
	}

	loc, err := exec.Actor.Location()
	if err != nil {
		return true, err
	}
	if loc == nil {
		return false, nil
	}

	exits, err := loc.Exits()
	if err != nil {
		return true, err
	}
	var matches []*world.Thing
	for _, exit := range exits {
		if strings.Contains(exit.Name, input) {
			matches = append(matches, exit)
		}
	}
	switch len(matches) {
	case 0:
		return false, nil
	case 1:
	default:
		return true, command.ErrCommand(exec.Texts.Getf(text.ThingAmbiguous, input))
	}

	dest, err := matches[0].Destination()
	if err != nil {
		return true, err
	}
	if dest == nil {
		return true, command.ErrCommand(exec.Texts.Get(text.ExitLeadsNowhere))
	}

	if err := exec.Actor.MoveTo(dest); err != nil {
		return true, err
	}
	if err := exec.Broadcast(loc, exec.Texts.Getf(text.HasLeft, exec.Actor.Name), exec.Actor.ID); err != nil {
		return true, err
	}
	if err := exec.Broadcast(dest, exec.Texts.Getf(text.HasArrived, exec.Actor.Name), exec.Actor.ID); err != nil {
		return true, err
	}

	// Show the new room the same way the look command would.
	_, err = e.dispatcher.Dispatch(ctx, "look", exec)
	return true, err
}

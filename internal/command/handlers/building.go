// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ember Contributors

package handlers

import (
	"context"
	"strings"

	"github.com/emberpath/ember/internal/command"
	"github.com/emberpath/ember/internal/text"
	"github.com/emberpath/ember/internal/world"
)

// splitPair splits "left=right" and trims both sides.
func splitPair(args string) (left, right string, ok bool) {
	left, right, ok = strings.Cut(args, "=")
	return strings.TrimSpace(left), strings.TrimSpace(right), ok
}

// Create makes a new thing and puts it in the actor's inventory.
func Create(ctx context.Context, exec *command.Execution) error {
	name := strings.TrimSpace(exec.Args)
	if name == "" {
		return command.ErrSyntax("@create <name>")
	}
	th, err := world.Create(exec.Tx, name)
	if err != nil {
		return err
	}
	if err := th.MoveTo(exec.Actor); err != nil {
		return err
	}
	exec.Outputf("Created %s.", th.DisplayName())
	return nil
}

// Dig makes a new room. Fresh things are self-located, so the room floats
// on its own.
func Dig(ctx context.Context, exec *command.Execution) error {
	name := strings.TrimSpace(exec.Args)
	if name == "" {
		return command.ErrSyntax("@dig <name>")
	}
	room, err := world.Create(exec.Tx, name)
	if err != nil {
		return err
	}
	exec.Outputf("Dug %s.", room.DisplayName())
	return nil
}

// Open makes a new exit in the actor's location leading to a destination.
func Open(ctx context.Context, exec *command.Execution) error {
	name, destToken, ok := splitPair(exec.Args)
	if !ok || name == "" || destToken == "" {
		return command.ErrSyntax("@open <name>=<destination>")
	}

	loc, err := exec.Actor.Location()
	if err != nil {
		return err
	}
	if loc == nil {
		return command.ErrCommand(exec.Texts.Get(text.Nowhere))
	}
	dest, err := command.Resolve(exec, destToken)
	if err != nil {
		return err
	}

	exit, err := world.Create(exec.Tx, name)
	if err != nil {
		return err
	}
	if err := exit.MoveTo(loc); err != nil {
		return err
	}
	if err := exit.SetDestination(dest); err != nil {
		return err
	}
	exec.Outputf("Opened %s to %s.", exit.DisplayName(), dest.DisplayName())
	return nil
}

// Link points an existing exit at a destination, or repoints it.
func Link(ctx context.Context, exec *command.Execution) error {
	exitToken, destToken, ok := splitPair(exec.Args)
	if !ok || exitToken == "" || destToken == "" {
		return command.ErrSyntax("@link <exit>=<destination>")
	}
	exit, err := command.Resolve(exec, exitToken)
	if err != nil {
		return err
	}
	dest, err := command.Resolve(exec, destToken)
	if err != nil {
		return err
	}
	if err := exit.SetDestination(dest); err != nil {
		return err
	}
	exec.Outputf("Linked %s to %s.", exit.DisplayName(), dest.DisplayName())
	return nil
}

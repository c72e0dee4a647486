// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ember Contributors

package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/emberpath/ember/internal/command"
	"github.com/emberpath/ember/internal/text"
)

// Say speaks a message to everyone in the actor's location.
func Say(ctx context.Context, exec *command.Execution) error {
	message := strings.TrimSpace(exec.Args)
	if message == "" {
		return command.ErrCommand("Say what?")
	}

	loc, err := exec.Actor.Location()
	if err != nil {
		return err
	}
	if loc == nil {
		return command.ErrCommand(exec.Texts.Get(text.Nowhere))
	}

	exec.Outputf("You say, %q", message)
	return exec.Broadcast(loc, fmt.Sprintf("%s says, %q", exec.Actor.Name, message), exec.Actor.ID)
}

// Pose emotes an action to everyone in the actor's location, the actor
// included.
func Pose(ctx context.Context, exec *command.Execution) error {
	action := strings.TrimSpace(exec.Args)
	if action == "" {
		return command.ErrCommand("Pose what?")
	}

	loc, err := exec.Actor.Location()
	if err != nil {
		return err
	}
	if loc == nil {
		return command.ErrCommand(exec.Texts.Get(text.Nowhere))
	}

	return exec.Broadcast(loc, fmt.Sprintf("%s %s", exec.Actor.Name, action))
}

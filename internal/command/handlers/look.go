// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ember Contributors

// Package handlers provides the built-in command set.
package handlers

import (
	"context"
	"strings"

	"github.com/emberpath/ember/internal/command"
	"github.com/emberpath/ember/internal/text"
	"github.com/emberpath/ember/internal/world"
)

// Look shows a thing as the actor perceives it: display name, description,
// and contents. With no argument it shows the actor's location.
func Look(ctx context.Context, exec *command.Execution) error {
	token := strings.TrimSpace(exec.Args)

	var target *world.Thing
	if token != "" {
		var err error
		target, err = command.Resolve(exec, token)
		if err != nil {
			return err
		}
	} else {
		var err error
		target, err = exec.Actor.Location()
		if err != nil {
			return err
		}
		if target == nil {
			exec.Output(exec.Texts.Get(text.Nowhere))
			return nil
		}
	}

	exec.Output(target.DisplayName())

	desc, err := target.PropDefault("desc", exec.Texts.Get(text.DescMissing))
	if err != nil {
		return err
	}
	exec.Output(desc)

	contents, err := target.Contents()
	if err != nil {
		return err
	}
	if len(contents) > 0 {
		names := make([]string, len(contents))
		for i, th := range contents {
			names[i] = th.DisplayName()
		}
		exec.Output(exec.Texts.Get(text.ContentsPrefix) + strings.Join(names, ", "))
	}
	return nil
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ember Contributors

package handlers

import (
	"context"

	"github.com/emberpath/ember/internal/command"
	"github.com/emberpath/ember/internal/text"
)

// Quit says farewell and kills the link. The transport's teardown drives
// the usual disconnection path, including the departure broadcast.
func Quit(ctx context.Context, exec *command.Execution) error {
	exec.Output(exec.Texts.Get(text.Goodbye))
	exec.Session.Link.Kill()
	return nil
}

// Help lists the registered commands with their usage.
func Help(ctx context.Context, exec *command.Execution) error {
	exec.Output("Commands:")
	for _, e := range exec.Registry.Entries() {
		if e.Kind == command.Prefix {
			exec.Outputf("  %-14s %s", e.Name+"<text>", e.Help)
			continue
		}
		usage := e.Usage
		if usage == "" {
			usage = e.Name
		}
		exec.Outputf("  %-14s %s", usage, e.Help)
	}
	return nil
}

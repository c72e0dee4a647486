// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ember Contributors

package handlers

import (
	"github.com/emberpath/ember/internal/auth"
	"github.com/emberpath/ember/internal/command"
)

// Register installs the built-in command set. Registration order is load
// bearing: the dispatcher tries entries in order, so a name that is a
// prefix of another must come after the longer one.
func Register(reg *command.Registry) {
	// Bare prefix characters, matched against the raw line.
	reg.Register(command.Entry{Name: `"`, Kind: command.Prefix, MinLevel: auth.Guest, Handler: Say, Help: "speak to the room"})
	reg.Register(command.Entry{Name: `:`, Kind: command.Prefix, MinLevel: auth.Guest, Handler: Pose, Help: "emote an action"})

	reg.Register(command.Entry{Name: "look", MinLevel: auth.Guest, Handler: Look, Usage: "look [thing]", Help: "look at your location or a thing"})
	reg.Register(command.Entry{Name: "who", MinLevel: auth.Guest, Handler: Who, Help: "list connected characters"})
	reg.Register(command.Entry{Name: "say", MinLevel: auth.Guest, Handler: Say, Usage: "say <message>", Help: "speak to the room"})
	reg.Register(command.Entry{Name: "pose", MinLevel: auth.Guest, Handler: Pose, Usage: "pose <action>", Help: "emote an action"})
	reg.Register(command.Entry{Name: "help", MinLevel: auth.Guest, Handler: Help, Help: "show this list"})
	reg.Register(command.Entry{Name: "quit", MinLevel: auth.Guest, Handler: Quit, Help: "disconnect"})

	reg.Register(command.Entry{Name: "@password", MinLevel: auth.Guest, Handler: Password, Usage: "@password <old> <new>", Help: "change your password"})

	reg.Register(command.Entry{Name: "@create", MinLevel: auth.Builder, Handler: Create, Usage: "@create <name>", Help: "create a thing in your inventory"})
	reg.Register(command.Entry{Name: "@dig", MinLevel: auth.Builder, Handler: Dig, Usage: "@dig <name>", Help: "create a floating room"})
	reg.Register(command.Entry{Name: "@open", MinLevel: auth.Builder, Handler: Open, Usage: "@open <name>=<destination>", Help: "open an exit here"})
	reg.Register(command.Entry{Name: "@link", MinLevel: auth.Builder, Handler: Link, Usage: "@link <exit>=<destination>", Help: "repoint an exit"})
	reg.Register(command.Entry{Name: "@name", MinLevel: auth.Builder, Handler: Name, Usage: "@name <thing>=<new name>", Help: "rename a thing"})
	reg.Register(command.Entry{Name: "@describe", MinLevel: auth.Builder, Handler: Describe, Usage: "@describe <thing>=<description>", Help: "set a thing's description"})
	reg.Register(command.Entry{Name: "@set", MinLevel: auth.Builder, Handler: Set, Usage: "@set <thing>.<property>=<value>", Help: "set a property"})
	reg.Register(command.Entry{Name: "@unset", MinLevel: auth.Builder, Handler: Unset, Usage: "@unset <thing>.<property>", Help: "delete a property"})
	reg.Register(command.Entry{Name: "@examine", MinLevel: auth.Builder, Handler: Examine, Usage: "@examine <thing>", Help: "inspect a thing"})
	reg.Register(command.Entry{Name: "@teleport", MinLevel: auth.Builder, Handler: Teleport, Usage: "@teleport <thing>=<destination>", Help: "move a thing anywhere"})

	reg.Register(command.Entry{Name: "@chown", MinLevel: auth.Wizard, Handler: Chown, Usage: "@chown <thing>=<new owner>", Help: "reassign ownership"})
	reg.Register(command.Entry{Name: "@account", MinLevel: auth.Wizard, Handler: Account, Usage: "@account <name>=<password>", Help: "create a character and account"})
}

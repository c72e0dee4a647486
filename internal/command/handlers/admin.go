// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ember Contributors

package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/emberpath/ember/internal/auth"
	"github.com/emberpath/ember/internal/command"
	"github.com/emberpath/ember/internal/text"
	"github.com/emberpath/ember/internal/world"
)

// Name renames a thing. Renaming an account character onto another
// account's login name is refused.
func Name(ctx context.Context, exec *command.Execution) error {
	token, newName, ok := splitPair(exec.Args)
	if !ok || token == "" || newName == "" {
		return command.ErrSyntax("@name <thing>=<new name>")
	}
	target, err := command.Resolve(exec, token)
	if err != nil {
		return err
	}
	if err := target.Rename(newName); err != nil {
		if errors.Is(err, world.ErrNameTaken) {
			return command.ErrCommandf("The name `%s' is already taken by another account.", newName)
		}
		return err
	}
	exec.Outputf("Renamed to %s.", target.DisplayName())
	return nil
}

// Teleport moves a thing somewhere, bypassing exits.
func Teleport(ctx context.Context, exec *command.Execution) error {
	token, destToken, ok := splitPair(exec.Args)
	if !ok || token == "" || destToken == "" {
		return command.ErrSyntax("@teleport <thing>=<destination>")
	}
	target, err := command.Resolve(exec, token)
	if err != nil {
		return err
	}
	dest, err := command.Resolve(exec, destToken)
	if err != nil {
		return err
	}
	if err := target.MoveTo(dest); err != nil {
		return err
	}
	exec.Outputf("Teleported %s to %s.", target.DisplayName(), dest.DisplayName())
	return nil
}

// Chown reassigns a thing's owner.
func Chown(ctx context.Context, exec *command.Execution) error {
	token, ownerToken, ok := splitPair(exec.Args)
	if !ok || token == "" || ownerToken == "" {
		return command.ErrSyntax("@chown <thing>=<new owner>")
	}
	target, err := command.Resolve(exec, token)
	if err != nil {
		return err
	}
	owner, err := command.Resolve(exec, ownerToken)
	if err != nil {
		return err
	}
	if err := target.SetOwner(owner); err != nil {
		return err
	}
	exec.Outputf("%s now belongs to %s.", target.DisplayName(), owner.DisplayName())
	return nil
}

// Account creates a character and binds a fresh account to it.
func Account(ctx context.Context, exec *command.Execution) error {
	name, password, ok := splitPair(exec.Args)
	if !ok || name == "" || password == "" {
		return command.ErrSyntax("@account <name>=<password>")
	}
	char, err := exec.Auth.CreateAccount(exec.Tx, name, password)
	if err != nil {
		if errors.Is(err, world.ErrNameTaken) {
			return command.ErrCommandf("The name `%s' is already taken by another account.", name)
		}
		if errors.Is(err, auth.ErrEmptyPassword) {
			return command.ErrCommand("The password cannot be empty.")
		}
		return err
	}
	exec.Outputf("Created an account for %s.", char.DisplayName())
	return nil
}

// Password changes the actor's own password after verifying the old one.
func Password(ctx context.Context, exec *command.Execution) error {
	fields := strings.Fields(exec.Args)
	if len(fields) != 2 {
		return command.ErrSyntax("@password <old> <new>")
	}
	err := exec.Auth.ChangePassword(exec.Tx, exec.Actor.ID, fields[0], fields[1])
	if err != nil {
		if errors.Is(err, auth.ErrBadCredentials) {
			return command.ErrCommand(exec.Texts.Get(text.BadLogin))
		}
		if errors.Is(err, world.ErrNotFound) {
			return command.ErrCommand("You don't seem to have an account.")
		}
		if errors.Is(err, auth.ErrEmptyPassword) {
			return command.ErrCommand("The password cannot be empty.")
		}
		return err
	}
	exec.Output("Password changed.")
	return nil
}

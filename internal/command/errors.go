// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ember Contributors

package command

import (
	"errors"
	"fmt"

	"github.com/samber/oops"

	"github.com/emberpath/ember/internal/text"
	"github.com/emberpath/ember/internal/world"
)

// Error codes for command failures. Errors carrying one of these codes are
// expected, user-facing, and terminal for the command: the transaction
// manager prints the carried message and rolls back. Anything else is
// treated as unexpected.
const (
	CodeCommandError     = "COMMAND_ERROR"
	CodeSyntaxError      = "SYNTAX_ERROR"
	CodePermissionDenied = "PERMISSION_DENIED"
)

// ErrCommand creates a command-processing error with a ready player-facing
// message.
func ErrCommand(message string) error {
	return oops.Code(CodeCommandError).
		With("message", message).
		Errorf("%s", message)
}

// ErrCommandf creates a command-processing error with a formatted message.
func ErrCommandf(format string, args ...any) error {
	return ErrCommand(fmt.Sprintf(format, args...))
}

// ErrSyntax creates an error telling the user how the command is written.
func ErrSyntax(usage string) error {
	return oops.Code(CodeSyntaxError).
		With("usage", usage).
		Errorf("bad syntax, expected %q", usage)
}

// ErrPermissionDenied creates an error for a permission-level rejection.
func ErrPermissionDenied(cmd string) error {
	return oops.Code(CodePermissionDenied).
		With("command", cmd).
		Errorf("permission denied for command %s", cmd)
}

// PlayerMessage extracts the player-facing message from an expected command
// error. ok is false for unexpected errors, which must not be shown to the
// user verbatim.
func PlayerMessage(err error, texts text.Table) (msg string, ok bool) {
	oopsErr, isOops := oops.AsOops(err)
	if !isOops {
		return "", false
	}
	switch oopsErr.Code() {
	case CodeCommandError:
		if m, ok := oopsErr.Context()["message"].(string); ok && m != "" {
			return m, true
		}
		if len(oopsErr.Context()) > 0 {
			return texts.Getf(text.CommandErrArgs, fmt.Sprintf("%v", oopsErr.Context())), true
		}
		return texts.Get(text.CommandErrNoMsg), true
	case CodeSyntaxError:
		if usage, ok := oopsErr.Context()["usage"].(string); ok && usage != "" {
			return texts.Getf(text.Syntax, usage), true
		}
		return texts.Get(text.CommandErrNoMsg), true
	case CodePermissionDenied:
		return texts.Get(text.PermissionDenied), true
	default:
		return "", false
	}
}

// Resolve maps a free-text reference to exactly one thing from the actor's
// point of view, translating the resolver's no-match and ambiguity results
// into command-processing errors. Raw lookup errors never escape to the
// transaction manager through this path.
func Resolve(exec *Execution, token string) (*world.Thing, error) {
	th, err := world.ResolveOne(exec.Actor, token)
	if errors.Is(err, world.ErrNoMatch) {
		return nil, ErrCommand(exec.Texts.Getf(text.ThingNotFound, token))
	}
	if errors.Is(err, world.ErrAmbiguous) {
		return nil, ErrCommand(exec.Texts.Getf(text.ThingAmbiguous, token))
	}
	return th, err
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ember Contributors

package handlers

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/emberpath/ember/internal/command"
	"github.com/emberpath/ember/internal/world"
)

// splitPropRef splits "<thing>.<prop>" at the last dot, so thing names
// containing dots stay referencable.
func splitPropRef(ref string) (thing, prop string, ok bool) {
	i := strings.LastIndex(ref, ".")
	if i < 0 {
		return "", "", false
	}
	return strings.TrimSpace(ref[:i]), strings.TrimSpace(ref[i+1:]), true
}

// Describe sets the desc property shown by look.
func Describe(ctx context.Context, exec *command.Execution) error {
	token, desc, ok := splitPair(exec.Args)
	if !ok || token == "" {
		return command.ErrSyntax("@describe <thing>=<description>")
	}
	target, err := command.Resolve(exec, token)
	if err != nil {
		return err
	}
	if err := target.SetProp("desc", desc); err != nil {
		return err
	}
	exec.Outputf("Described %s.", target.DisplayName())
	return nil
}

// Set writes an arbitrary property on a thing.
func Set(ctx context.Context, exec *command.Execution) error {
	ref, value, ok := splitPair(exec.Args)
	if !ok {
		return command.ErrSyntax("@set <thing>.<property>=<value>")
	}
	token, prop, ok := splitPropRef(ref)
	if !ok || token == "" || prop == "" {
		return command.ErrSyntax("@set <thing>.<property>=<value>")
	}
	target, err := command.Resolve(exec, token)
	if err != nil {
		return err
	}
	if err := target.SetProp(prop, value); err != nil {
		return err
	}
	exec.Outputf("Set %s.%s.", target.DisplayName(), prop)
	return nil
}

// Unset deletes a property from a thing. Deleting an absent property is
// reported, not ignored.
func Unset(ctx context.Context, exec *command.Execution) error {
	token, prop, ok := splitPropRef(strings.TrimSpace(exec.Args))
	if !ok || token == "" || prop == "" {
		return command.ErrSyntax("@unset <thing>.<property>")
	}
	target, err := command.Resolve(exec, token)
	if err != nil {
		return err
	}
	if err := target.ClearProp(prop); err != nil {
		if errors.Is(err, world.ErrNotFound) {
			return command.ErrCommandf("%s has no property `%s'.", target.DisplayName(), prop)
		}
		return err
	}
	exec.Outputf("Unset %s.%s.", target.DisplayName(), prop)
	return nil
}

// Examine shows a thing's pointers and every property set on it.
func Examine(ctx context.Context, exec *command.Execution) error {
	token := strings.TrimSpace(exec.Args)
	if token == "" {
		return command.ErrSyntax("@examine <thing>")
	}
	target, err := command.Resolve(exec, token)
	if err != nil {
		return err
	}

	exec.Output(target.DisplayName())

	owner, err := target.Owner()
	if err != nil && !errors.Is(err, world.ErrNotFound) {
		return err
	}
	if owner != nil {
		exec.Outputf("Owner: %s", owner.DisplayName())
	}
	loc, err := target.Location()
	if err != nil {
		return err
	}
	if loc != nil {
		exec.Outputf("Location: %s", loc.DisplayName())
	}
	dest, err := target.Destination()
	if err != nil {
		return err
	}
	if dest != nil {
		exec.Outputf("Destination: %s", dest.DisplayName())
	}

	props, err := target.Props()
	if err != nil {
		return err
	}
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		exec.Outputf("%s: %s", name, props[name])
	}
	return nil
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ember Contributors

package auth

import (
	"github.com/samber/oops"

	"github.com/emberpath/ember/internal/world"
)

// Level is a permission tier. Levels form a strict order; a command gated at
// some level runs for any character at that level or above.
type Level int

// Permission tiers, lowest first.
const (
	Guest Level = iota
	Builder
	Wizard
)

// PermissionProp is the character property the level is persisted under.
const PermissionProp = "permission"

// String returns the stored form of the level.
func (l Level) String() string {
	switch l {
	case Builder:
		return "builder"
	case Wizard:
		return "wizard"
	default:
		return "guest"
	}
}

// ParseLevel maps a stored form back to a Level. Unknown values are
// reported rather than silently downgraded.
func ParseLevel(s string) (Level, error) {
	switch s {
	case "guest":
		return Guest, nil
	case "builder":
		return Builder, nil
	case "wizard":
		return Wizard, nil
	default:
		return Guest, oops.Code("AUTH_BAD_LEVEL").With("value", s).Errorf("unknown permission level %q", s)
	}
}

// LevelOf returns the character's permission level. The bootstrap character
// is always Wizard regardless of the stored value. A character without a
// stored level is Guest, and that default is persisted on this first read.
func LevelOf(char *world.Thing, bootstrapID int64) (Level, error) {
	if char.ID == bootstrapID {
		return Wizard, nil
	}
	stored, err := char.PropDefault(PermissionProp, "")
	if err != nil {
		return Guest, err
	}
	if stored == "" {
		if err := char.SetProp(PermissionProp, Guest.String()); err != nil {
			return Guest, err
		}
		return Guest, nil
	}
	return ParseLevel(stored)
}

// SetLevel persists a new permission level on the character.
func SetLevel(char *world.Thing, l Level) error {
	return char.SetProp(PermissionProp, l.String())
}

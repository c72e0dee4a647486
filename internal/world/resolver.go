// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ember Contributors

package world

import (
	"errors"
	"strconv"
	"strings"
)

// ResolveMany maps a free-text token to every thing it could refer to from
// the actor's point of view. Rules are tried in strict precedence and the
// first matching rule short-circuits:
//
//  1. "me" is the actor.
//  2. "here" is the actor's current location, if any.
//  3. "#" followed by digits is a literal id lookup. Malformed digits
//     resolve to nothing rather than erroring.
//  4. Anything else is a case-sensitive unanchored substring match against
//     the names of the actor, the actor's location, everything inside the
//     actor, and everything inside the location. Duplicates across those
//     sets are kept.
func ResolveMany(actor *Thing, token string) ([]*Thing, error) {
	token = strings.TrimSpace(token)

	if token == "me" {
		return []*Thing{actor}, nil
	}

	if token == "here" {
		loc, err := actor.Location()
		if err != nil {
			return nil, err
		}
		if loc == nil {
			return nil, nil
		}
		return []*Thing{loc}, nil
	}

	if strings.HasPrefix(token, "#") {
		id, err := strconv.ParseInt(token[1:], 10, 64)
		if err != nil {
			return nil, nil
		}
		th, err := Fetch(actor.Tx(), id)
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return []*Thing{th}, nil
	}

	loc, err := actor.Location()
	if err != nil {
		return nil, err
	}

	candidates := []*Thing{actor}
	if loc != nil {
		candidates = append(candidates, loc)
	}
	inventory, err := actor.Contents()
	if err != nil {
		return nil, err
	}
	candidates = append(candidates, inventory...)
	if loc != nil {
		nearby, err := loc.Contents()
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, nearby...)
	}

	var matches []*Thing
	for _, c := range candidates {
		if strings.Contains(c.Name, token) {
			matches = append(matches, c)
		}
	}
	return matches, nil
}

// ResolveOne wraps ResolveMany with a singular-result policy: zero matches
// return ErrNoMatch, more than one ErrAmbiguous. Callers decide how either
// is reported; ambiguity is never silently broken here.
func ResolveOne(actor *Thing, token string) (*Thing, error) {
	matches, err := ResolveMany(actor, token)
	if err != nil {
		return nil, err
	}
	switch len(matches) {
	case 0:
		return nil, ErrNoMatch
	case 1:
		return matches[0], nil
	default:
		return nil, ErrAmbiguous
	}
}

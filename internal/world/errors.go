// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ember Contributors

package world

import "errors"

// ErrNotFound is returned when a requested thing, account, or property does
// not exist at the time it is fetched.
var ErrNotFound = errors.New("not found")

// ErrNoMatch is returned by resolution when a reference matches nothing.
var ErrNoMatch = errors.New("no matching thing")

// ErrAmbiguous is returned by resolution when a reference matches more than
// one thing.
var ErrAmbiguous = errors.New("ambiguous reference")

// ErrNameTaken is returned when a rename would collide with the login name
// of another account's character.
var ErrNameTaken = errors.New("name already in use by another account")

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ember Contributors

package world

import "context"

// Store is the abstract transactional store the engine runs against. The
// core never issues SQL of its own; everything it needs from persistence is
// expressed as an operation on Tx.
type Store interface {
	// Begin opens a new transaction. Every dispatched command runs inside
	// exactly one transaction, resolved to Commit or Rollback before the
	// next line is processed.
	Begin(ctx context.Context) (Tx, error)

	// Close releases the underlying store.
	Close() error
}

// Tx is a single transaction over the persisted world. Reads observe writes
// made earlier in the same transaction; Rollback discards all of them.
type Tx interface {
	// ThingName returns the name of the thing, or ErrNotFound.
	ThingName(id int64) (string, error)

	// CreateThing inserts a fresh thing that owns and contains itself and
	// returns its id.
	CreateThing(name string) (int64, error)

	// SetThingName renames a thing. Account name uniqueness is the caller's
	// concern; see CharacterNameInUse.
	SetThingName(id int64, name string) error

	// ThingOwner returns the owner id of a thing, or ErrNotFound.
	ThingOwner(id int64) (int64, error)

	// SetThingOwner rewrites the owner pointer.
	SetThingOwner(id, owner int64) error

	// ThingLocation returns the location pointer. ok is false when the
	// pointer is null. ErrNotFound means the thing itself does not exist.
	ThingLocation(id int64) (location int64, ok bool, err error)

	// SetThingLocation rewrites the location pointer. No cycle validation.
	SetThingLocation(id, location int64) error

	// ThingDestination returns the destination pointer; ok is false when
	// null. A non-null destination marks the thing as an exit.
	ThingDestination(id int64) (dest int64, ok bool, err error)

	// SetThingDestination rewrites the destination pointer; nil clears it.
	SetThingDestination(id int64, dest *int64) error

	// Contents returns the ids of things whose location is id, excluding id
	// itself.
	Contents(id int64) ([]int64, error)

	// Property returns the value of one property. ok is false when the
	// property is absent, which is distinct from an empty value.
	Property(id int64, name string) (value string, ok bool, err error)

	// SetProperty writes a property, creating it if absent.
	SetProperty(id int64, name, value string) error

	// DeleteProperty removes a property, or returns ErrNotFound if absent.
	DeleteProperty(id int64, name string) error

	// Properties returns every property set on the thing.
	Properties(id int64) (map[string]string, error)

	// AccountByName looks up the account whose character thing carries the
	// given name, or ErrNotFound.
	AccountByName(name string) (*Account, error)

	// AccountByCharacter looks up the account bound to the character thing,
	// or ErrNotFound.
	AccountByCharacter(charID int64) (*Account, error)

	// CreateAccount binds a new account to a character thing.
	CreateAccount(charID int64, hash, salt string) (int64, error)

	// SetAccountPassword replaces the stored hash and salt.
	SetAccountPassword(charID int64, hash, salt string) error

	// CharacterNameInUse reports whether any account other than the one
	// bound to exceptChar resolves to a character named name.
	CharacterNameInUse(name string, exceptChar int64) (bool, error)

	Commit() error
	Rollback() error
}

// Account is the persisted credential record bound 1:1 to a character thing.
// Accounts have no name of their own; the character's name is the login name.
type Account struct {
	ID           int64
	CharacterID  int64
	PasswordHash string
	Salt         string
}

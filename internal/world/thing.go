// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ember Contributors

// Package world provides the persistent object model: things, their
// properties and containment, accounts, and point-of-view name resolution.
package world

import (
	"errors"
	"fmt"
)

// Thing is a live handle onto one world entity within a transaction. The id
// and name are loaded at fetch time; every other field is read from the
// store on access so a handle never serves stale pointers.
type Thing struct {
	tx Tx

	ID   int64
	Name string
}

// Fetch verifies that the thing exists and returns a handle bound to tx.
func Fetch(tx Tx, id int64) (*Thing, error) {
	name, err := tx.ThingName(id)
	if err != nil {
		return nil, err
	}
	return &Thing{tx: tx, ID: id, Name: name}, nil
}

// Create inserts a fresh thing. New things own and contain themselves until
// moved or chowned.
func Create(tx Tx, name string) (*Thing, error) {
	id, err := tx.CreateThing(name)
	if err != nil {
		return nil, err
	}
	return &Thing{tx: tx, ID: id, Name: name}, nil
}

// DisplayName is the name as shown to users, with the id appended.
func (t *Thing) DisplayName() string {
	return fmt.Sprintf("%s [#%d]", t.Name, t.ID)
}

// Prop returns the value of one property, or ErrNotFound if it is absent.
func (t *Thing) Prop(name string) (string, error) {
	v, ok, err := t.tx.Property(t.ID, name)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

// PropDefault returns the value of one property, or def if it is absent.
// Absence is not an error.
func (t *Thing) PropDefault(name, def string) (string, error) {
	v, ok, err := t.tx.Property(t.ID, name)
	if err != nil {
		return "", err
	}
	if !ok {
		return def, nil
	}
	return v, nil
}

// SetProp writes a property, creating it if absent.
func (t *Thing) SetProp(name, value string) error {
	return t.tx.SetProperty(t.ID, name, value)
}

// ClearProp deletes a property. Deleting an absent property returns
// ErrNotFound.
func (t *Thing) ClearProp(name string) error {
	return t.tx.DeleteProperty(t.ID, name)
}

// Props returns every property set on this thing.
func (t *Thing) Props() (map[string]string, error) {
	return t.tx.Properties(t.ID)
}

// Rename changes the thing's name. If the thing is an account character, the
// new name must not collide with the login name of another account's
// character; such a collision returns ErrNameTaken.
func (t *Thing) Rename(name string) error {
	if _, err := t.tx.AccountByCharacter(t.ID); err == nil {
		inUse, err := t.tx.CharacterNameInUse(name, t.ID)
		if err != nil {
			return err
		}
		if inUse {
			return ErrNameTaken
		}
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}
	if err := t.tx.SetThingName(t.ID, name); err != nil {
		return err
	}
	t.Name = name
	return nil
}

// Location returns the thing this thing is inside of, or nil when the
// location pointer is null or dangling. A thing located in itself is
// "floating"; that is returned as-is, not treated as an error.
func (t *Thing) Location() (*Thing, error) {
	loc, ok, err := t.tx.ThingLocation(t.ID)
	if err != nil || !ok {
		return nil, err
	}
	th, err := Fetch(t.tx, loc)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return th, err
}

// MoveTo rewrites the location pointer. Containment cycles are permitted by
// the model; callers that traverse recursively must guard themselves.
func (t *Thing) MoveTo(dest *Thing) error {
	return t.tx.SetThingLocation(t.ID, dest.ID)
}

// Owner returns the owning thing. Self-ownership is the default for fresh
// things.
func (t *Thing) Owner() (*Thing, error) {
	owner, err := t.tx.ThingOwner(t.ID)
	if err != nil {
		return nil, err
	}
	return Fetch(t.tx, owner)
}

// SetOwner rewrites the owner pointer.
func (t *Thing) SetOwner(owner *Thing) error {
	return t.tx.SetThingOwner(t.ID, owner.ID)
}

// Destination returns the thing an actor traversing this exit arrives at, or
// nil when the thing is not an exit.
func (t *Thing) Destination() (*Thing, error) {
	dest, ok, err := t.tx.ThingDestination(t.ID)
	if err != nil || !ok {
		return nil, err
	}
	th, err := Fetch(t.tx, dest)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return th, err
}

// SetDestination marks the thing as an exit leading to dest, or clears the
// marker when dest is nil.
func (t *Thing) SetDestination(dest *Thing) error {
	if dest == nil {
		return t.tx.SetThingDestination(t.ID, nil)
	}
	id := dest.ID
	return t.tx.SetThingDestination(t.ID, &id)
}

// Contents returns handles for everything located inside this thing,
// excluding the thing itself.
func (t *Thing) Contents() ([]*Thing, error) {
	ids, err := t.tx.Contents(t.ID)
	if err != nil {
		return nil, err
	}
	things := make([]*Thing, 0, len(ids))
	for _, id := range ids {
		th, err := Fetch(t.tx, id)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		things = append(things, th)
	}
	return things, nil
}

// Exits returns the contents of this thing that have a non-null destination.
func (t *Thing) Exits() ([]*Thing, error) {
	contents, err := t.Contents()
	if err != nil {
		return nil, err
	}
	exits := contents[:0]
	for _, th := range contents {
		_, ok, err := t.tx.ThingDestination(th.ID)
		if err != nil {
			return nil, err
		}
		if ok {
			exits = append(exits, th)
		}
	}
	return exits, nil
}

// Tx exposes the transaction this handle is bound to.
func (t *Thing) Tx() Tx {
	return t.tx
}

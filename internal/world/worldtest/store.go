// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ember Contributors

// Package worldtest provides an in-memory world.Store with real
// commit/rollback semantics for unit tests.
package worldtest

import (
	"context"
	"sort"

	"github.com/samber/oops"

	"github.com/emberpath/ember/internal/world"
)

type thingRow struct {
	Owner       int64
	Location    *int64
	Destination *int64
	Name        string
}

type accountRow struct {
	ID           int64
	CharacterID  int64
	PasswordHash string
	Salt         string
}

type snapshot struct {
	things      map[int64]thingRow
	props       map[int64]map[string]string
	accounts    map[int64]accountRow // keyed by account id
	nextThingID int64
	nextAcctID  int64
}

func (s *snapshot) clone() *snapshot {
	c := &snapshot{
		things:      make(map[int64]thingRow, len(s.things)),
		props:       make(map[int64]map[string]string, len(s.props)),
		accounts:    make(map[int64]accountRow, len(s.accounts)),
		nextThingID: s.nextThingID,
		nextAcctID:  s.nextAcctID,
	}
	for id, row := range s.things {
		if row.Location != nil {
			l := *row.Location
			row.Location = &l
		}
		if row.Destination != nil {
			d := *row.Destination
			row.Destination = &d
		}
		c.things[id] = row
	}
	for id, props := range s.props {
		m := make(map[string]string, len(props))
		for k, v := range props {
			m[k] = v
		}
		c.props[id] = m
	}
	for id, acct := range s.accounts {
		c.accounts[id] = acct
	}
	return c
}

// Store is an in-memory world.Store. Begin clones the current state; Commit
// publishes the clone, Rollback discards it. The engine is single-threaded,
// so no locking is needed.
type Store struct {
	state *snapshot
}

// NewStore returns an empty in-memory store.
func NewStore() *Store {
	return &Store{state: &snapshot{
		things:      make(map[int64]thingRow),
		props:       make(map[int64]map[string]string),
		accounts:    make(map[int64]accountRow),
		nextThingID: 1,
		nextAcctID:  1,
	}}
}

// Begin opens a transaction over a deep copy of the current state.
func (s *Store) Begin(_ context.Context) (world.Tx, error) {
	return &Tx{store: s, work: s.state.clone()}, nil
}

// Close is a no-op.
func (s *Store) Close() error { return nil }

// Tx is a transaction over the in-memory store.
type Tx struct {
	store *Store
	work  *snapshot
	done  bool
}

// Commit publishes the working copy.
func (t *Tx) Commit() error {
	if t.done {
		return oops.Code("TX_DONE").Errorf("transaction already resolved")
	}
	t.store.state = t.work
	t.done = true
	return nil
}

// Rollback discards the working copy.
func (t *Tx) Rollback() error {
	t.done = true
	return nil
}

// ThingName returns the name of the thing, or world.ErrNotFound.
func (t *Tx) ThingName(id int64) (string, error) {
	row, ok := t.work.things[id]
	if !ok {
		return "", world.ErrNotFound
	}
	return row.Name, nil
}

// CreateThing inserts a fresh, self-owned, self-located thing.
func (t *Tx) CreateThing(name string) (int64, error) {
	id := t.work.nextThingID
	t.work.nextThingID++
	loc := id
	t.work.things[id] = thingRow{Owner: id, Location: &loc, Name: name}
	return id, nil
}

// SetThingName renames a thing.
func (t *Tx) SetThingName(id int64, name string) error {
	row, ok := t.work.things[id]
	if !ok {
		return world.ErrNotFound
	}
	row.Name = name
	t.work.things[id] = row
	return nil
}

// ThingOwner returns the owner pointer.
func (t *Tx) ThingOwner(id int64) (int64, error) {
	row, ok := t.work.things[id]
	if !ok {
		return 0, world.ErrNotFound
	}
	return row.Owner, nil
}

// SetThingOwner rewrites the owner pointer.
func (t *Tx) SetThingOwner(id, owner int64) error {
	row, ok := t.work.things[id]
	if !ok {
		return world.ErrNotFound
	}
	row.Owner = owner
	t.work.things[id] = row
	return nil
}

// ThingLocation returns the location pointer; ok is false when null.
func (t *Tx) ThingLocation(id int64) (int64, bool, error) {
	row, ok := t.work.things[id]
	if !ok {
		return 0, false, world.ErrNotFound
	}
	if row.Location == nil {
		return 0, false, nil
	}
	return *row.Location, true, nil
}

// SetThingLocation rewrites the location pointer.
func (t *Tx) SetThingLocation(id, location int64) error {
	row, ok := t.work.things[id]
	if !ok {
		return world.ErrNotFound
	}
	row.Location = &location
	t.work.things[id] = row
	return nil
}

// ThingDestination returns the destination pointer; ok is false when null.
func (t *Tx) ThingDestination(id int64) (int64, bool, error) {
	row, ok := t.work.things[id]
	if !ok {
		return 0, false, world.ErrNotFound
	}
	if row.Destination == nil {
		return 0, false, nil
	}
	return *row.Destination, true, nil
}

// SetThingDestination rewrites the destination pointer; nil clears it.
func (t *Tx) SetThingDestination(id int64, dest *int64) error {
	row, ok := t.work.things[id]
	if !ok {
		return world.ErrNotFound
	}
	if dest == nil {
		row.Destination = nil
	} else {
		d := *dest
		row.Destination = &d
	}
	t.work.things[id] = row
	return nil
}

// Contents returns ids of things located inside id, excluding itself, in id
// order for deterministic tests.
func (t *Tx) Contents(id int64) ([]int64, error) {
	var ids []int64
	for tid, row := range t.work.things {
		if tid != id && row.Location != nil && *row.Location == id {
			ids = append(ids, tid)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// Property returns one property value; ok is false when absent.
func (t *Tx) Property(id int64, name string) (string, bool, error) {
	v, ok := t.work.props[id][name]
	return v, ok, nil
}

// SetProperty writes a property, creating it if absent.
func (t *Tx) SetProperty(id int64, name, value string) error {
	if t.work.props[id] == nil {
		t.work.props[id] = make(map[string]string)
	}
	t.work.props[id][name] = value
	return nil
}

// DeleteProperty removes a property, or returns world.ErrNotFound.
func (t *Tx) DeleteProperty(id int64, name string) error {
	if _, ok := t.work.props[id][name]; !ok {
		return world.ErrNotFound
	}
	delete(t.work.props[id], name)
	return nil
}

// Properties returns a copy of every property set on the thing.
func (t *Tx) Properties(id int64) (map[string]string, error) {
	props := make(map[string]string, len(t.work.props[id]))
	for k, v := range t.work.props[id] {
		props[k] = v
	}
	return props, nil
}

// AccountByName finds the account whose character thing is named name.
func (t *Tx) AccountByName(name string) (*world.Account, error) {
	for _, acct := range t.work.accounts {
		row, ok := t.work.things[acct.CharacterID]
		if ok && row.Name == name {
			return &world.Account{ID: acct.ID, CharacterID: acct.CharacterID, PasswordHash: acct.PasswordHash, Salt: acct.Salt}, nil
		}
	}
	return nil, world.ErrNotFound
}

// AccountByCharacter finds the account bound to the character thing.
func (t *Tx) AccountByCharacter(charID int64) (*world.Account, error) {
	for _, acct := range t.work.accounts {
		if acct.CharacterID == charID {
			return &world.Account{ID: acct.ID, CharacterID: acct.CharacterID, PasswordHash: acct.PasswordHash, Salt: acct.Salt}, nil
		}
	}
	return nil, world.ErrNotFound
}

// CreateAccount binds a new account to a character thing.
func (t *Tx) CreateAccount(charID int64, hash, salt string) (int64, error) {
	id := t.work.nextAcctID
	t.work.nextAcctID++
	t.work.accounts[id] = accountRow{ID: id, CharacterID: charID, PasswordHash: hash, Salt: salt}
	return id, nil
}

// SetAccountPassword replaces the stored hash and salt.
func (t *Tx) SetAccountPassword(charID int64, hash, salt string) error {
	for id, acct := range t.work.accounts {
		if acct.CharacterID == charID {
			acct.PasswordHash = hash
			acct.Salt = salt
			t.work.accounts[id] = acct
			return nil
		}
	}
	return world.ErrNotFound
}

// CharacterNameInUse reports whether another account's character carries name.
func (t *Tx) CharacterNameInUse(name string, exceptChar int64) (bool, error) {
	for _, acct := range t.work.accounts {
		if acct.CharacterID == exceptChar {
			continue
		}
		row, ok := t.work.things[acct.CharacterID]
		if ok && row.Name == name {
			return true, nil
		}
	}
	return false, nil
}

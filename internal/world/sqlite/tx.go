// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ember Contributors

package sqlite

import (
	"database/sql"
	"errors"

	"github.com/samber/oops"

	"github.com/emberpath/ember/internal/world"
)

// Tx implements world.Tx over one database/sql transaction.
type Tx struct {
	tx *sql.Tx
}

// ThingName returns the name of the thing, or world.ErrNotFound.
func (t *Tx) ThingName(id int64) (string, error) {
	var name string
	err := t.tx.QueryRow(`SELECT name FROM things WHERE id = ?`, id).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", oops.Code("THING_NOT_FOUND").With("id", id).Wrap(world.ErrNotFound)
	}
	if err != nil {
		return "", oops.Code("THING_GET_FAILED").With("id", id).Wrap(err)
	}
	return name, nil
}

// CreateThing inserts a fresh, self-owned, self-located thing.
func (t *Tx) CreateThing(name string) (int64, error) {
	res, err := t.tx.Exec(`INSERT INTO things (owner_id, location_id, name) VALUES (0, 0, ?)`, name)
	if err != nil {
		return 0, oops.Code("THING_CREATE_FAILED").With("name", name).Wrap(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, oops.Code("THING_CREATE_FAILED").With("name", name).Wrap(err)
	}
	if _, err := t.tx.Exec(`UPDATE things SET owner_id = ?, location_id = ? WHERE id = ?`, id, id, id); err != nil {
		return 0, oops.Code("THING_CREATE_FAILED").With("id", id).Wrap(err)
	}
	return id, nil
}

// SetThingName renames a thing.
func (t *Tx) SetThingName(id int64, name string) error {
	return t.updateThing(id, `UPDATE things SET name = ? WHERE id = ?`, name, id)
}

// ThingOwner returns the owner pointer, or world.ErrNotFound.
func (t *Tx) ThingOwner(id int64) (int64, error) {
	var owner int64
	err := t.tx.QueryRow(`SELECT owner_id FROM things WHERE id = ?`, id).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, oops.Code("THING_NOT_FOUND").With("id", id).Wrap(world.ErrNotFound)
	}
	if err != nil {
		return 0, oops.Code("THING_GET_FAILED").With("id", id).Wrap(err)
	}
	return owner, nil
}

// SetThingOwner rewrites the owner pointer.
func (t *Tx) SetThingOwner(id, owner int64) error {
	return t.updateThing(id, `UPDATE things SET owner_id = ? WHERE id = ?`, owner, id)
}

// ThingLocation returns the location pointer; ok is false when null.
func (t *Tx) ThingLocation(id int64) (int64, bool, error) {
	return t.nullablePointer(id, `SELECT location_id FROM things WHERE id = ?`)
}

// SetThingLocation rewrites the location pointer without cycle validation.
func (t *Tx) SetThingLocation(id, location int64) error {
	return t.updateThing(id, `UPDATE things SET location_id = ? WHERE id = ?`, location, id)
}

// ThingDestination returns the destination pointer; ok is false when null.
func (t *Tx) ThingDestination(id int64) (int64, bool, error) {
	return t.nullablePointer(id, `SELECT destination_id FROM things WHERE id = ?`)
}

// SetThingDestination rewrites the destination pointer; nil clears it.
func (t *Tx) SetThingDestination(id int64, dest *int64) error {
	if dest == nil {
		return t.updateThing(id, `UPDATE things SET destination_id = NULL WHERE id = ?`, id)
	}
	return t.updateThing(id, `UPDATE things SET destination_id = ? WHERE id = ?`, *dest, id)
}

// Contents returns the ids of things located inside id, excluding itself.
func (t *Tx) Contents(id int64) ([]int64, error) {
	rows, err := t.tx.Query(`SELECT id FROM things WHERE location_id = ? AND id != ? ORDER BY id`, id, id)
	if err != nil {
		return nil, oops.Code("THING_QUERY_FAILED").With("id", id).Wrap(err)
	}
	defer rows.Close() //nolint:errcheck // read-only cursor

	var ids []int64
	for rows.Next() {
		var cid int64
		if err := rows.Scan(&cid); err != nil {
			return nil, oops.Code("THING_QUERY_FAILED").With("id", id).Wrap(err)
		}
		ids = append(ids, cid)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("THING_QUERY_FAILED").With("id", id).Wrap(err)
	}
	return ids, nil
}

// Property returns one property value; ok is false when absent.
func (t *Tx) Property(id int64, name string) (string, bool, error) {
	var val string
	err := t.tx.QueryRow(`SELECT val FROM properties WHERE object_id = ? AND name = ?`, id, name).Scan(&val)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, oops.Code("PROPERTY_GET_FAILED").With("id", id).With("name", name).Wrap(err)
	}
	return val, true, nil
}

// SetProperty writes a property, creating it if absent.
func (t *Tx) SetProperty(id int64, name, value string) error {
	_, err := t.tx.Exec(`
		INSERT INTO properties (object_id, name, val) VALUES (?, ?, ?)
		ON CONFLICT (object_id, name) DO UPDATE SET val = excluded.val
	`, id, name, value)
	if err != nil {
		return oops.Code("PROPERTY_SET_FAILED").With("id", id).With("name", name).Wrap(err)
	}
	return nil
}

// DeleteProperty removes a property; deleting an absent property returns
// world.ErrNotFound.
func (t *Tx) DeleteProperty(id int64, name string) error {
	res, err := t.tx.Exec(`DELETE FROM properties WHERE object_id = ? AND name = ?`, id, name)
	if err != nil {
		return oops.Code("PROPERTY_DELETE_FAILED").With("id", id).With("name", name).Wrap(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return oops.Code("PROPERTY_DELETE_FAILED").With("id", id).With("name", name).Wrap(err)
	}
	if n == 0 {
		return oops.Code("PROPERTY_NOT_FOUND").With("id", id).With("name", name).Wrap(world.ErrNotFound)
	}
	return nil
}

// Properties returns every property set on the thing.
func (t *Tx) Properties(id int64) (map[string]string, error) {
	rows, err := t.tx.Query(`SELECT name, val FROM properties WHERE object_id = ? ORDER BY name`, id)
	if err != nil {
		return nil, oops.Code("PROPERTY_QUERY_FAILED").With("id", id).Wrap(err)
	}
	defer rows.Close() //nolint:errcheck // read-only cursor

	props := make(map[string]string)
	for rows.Next() {
		var name, val string
		if err := rows.Scan(&name, &val); err != nil {
			return nil, oops.Code("PROPERTY_QUERY_FAILED").With("id", id).Wrap(err)
		}
		props[name] = val
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("PROPERTY_QUERY_FAILED").With("id", id).Wrap(err)
	}
	return props, nil
}

// AccountByName finds the account whose character thing is named name.
func (t *Tx) AccountByName(name string) (*world.Account, error) {
	return t.scanAccount(`
		SELECT a.id, a.character_id, a.password_hash, a.salt
		FROM accounts a JOIN things th ON th.id = a.character_id
		WHERE th.name = ?
	`, name)
}

// AccountByCharacter finds the account bound to the character thing.
func (t *Tx) AccountByCharacter(charID int64) (*world.Account, error) {
	return t.scanAccount(`
		SELECT id, character_id, password_hash, salt
		FROM accounts WHERE character_id = ?
	`, charID)
}

// CreateAccount binds a new account to a character thing.
func (t *Tx) CreateAccount(charID int64, hash, salt string) (int64, error) {
	res, err := t.tx.Exec(`INSERT INTO accounts (character_id, password_hash, salt) VALUES (?, ?, ?)`, charID, hash, salt)
	if err != nil {
		return 0, oops.Code("ACCOUNT_CREATE_FAILED").With("character_id", charID).Wrap(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, oops.Code("ACCOUNT_CREATE_FAILED").With("character_id", charID).Wrap(err)
	}
	return id, nil
}

// SetAccountPassword replaces the stored hash and salt.
func (t *Tx) SetAccountPassword(charID int64, hash, salt string) error {
	res, err := t.tx.Exec(`UPDATE accounts SET password_hash = ?, salt = ? WHERE character_id = ?`, hash, salt, charID)
	if err != nil {
		return oops.Code("ACCOUNT_UPDATE_FAILED").With("character_id", charID).Wrap(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return oops.Code("ACCOUNT_UPDATE_FAILED").With("character_id", charID).Wrap(err)
	}
	if n == 0 {
		return oops.Code("ACCOUNT_NOT_FOUND").With("character_id", charID).Wrap(world.ErrNotFound)
	}
	return nil
}

// CharacterNameInUse reports whether another account's character carries name.
func (t *Tx) CharacterNameInUse(name string, exceptChar int64) (bool, error) {
	var n int
	err := t.tx.QueryRow(`
		SELECT COUNT(*)
		FROM accounts a JOIN things th ON th.id = a.character_id
		WHERE th.name = ? AND a.character_id != ?
	`, name, exceptChar).Scan(&n)
	if err != nil {
		return false, oops.Code("ACCOUNT_QUERY_FAILED").With("name", name).Wrap(err)
	}
	return n > 0, nil
}

// Commit makes every write in the transaction visible.
func (t *Tx) Commit() error {
	if err := t.tx.Commit(); err != nil {
		return oops.Code("TX_COMMIT_FAILED").Wrap(err)
	}
	return nil
}

// Rollback discards every write in the transaction.
func (t *Tx) Rollback() error {
	err := t.tx.Rollback()
	if err != nil && !errors.Is(err, sql.ErrTxDone) {
		return oops.Code("TX_ROLLBACK_FAILED").Wrap(err)
	}
	return nil
}

func (t *Tx) updateThing(id int64, query string, args ...any) error {
	res, err := t.tx.Exec(query, args...)
	if err != nil {
		return oops.Code("THING_UPDATE_FAILED").With("id", id).Wrap(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return oops.Code("THING_UPDATE_FAILED").With("id", id).Wrap(err)
	}
	if n == 0 {
		return oops.Code("THING_NOT_FOUND").With("id", id).Wrap(world.ErrNotFound)
	}
	return nil
}

func (t *Tx) nullablePointer(id int64, query string) (int64, bool, error) {
	var ptr sql.NullInt64
	err := t.tx.QueryRow(query, id).Scan(&ptr)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, oops.Code("THING_NOT_FOUND").With("id", id).Wrap(world.ErrNotFound)
	}
	if err != nil {
		return 0, false, oops.Code("THING_GET_FAILED").With("id", id).Wrap(err)
	}
	if !ptr.Valid {
		return 0, false, nil
	}
	return ptr.Int64, true, nil
}

func (t *Tx) scanAccount(query string, arg any) (*world.Account, error) {
	var acct world.Account
	err := t.tx.QueryRow(query, arg).Scan(&acct.ID, &acct.CharacterID, &acct.PasswordHash, &acct.Salt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, oops.Code("ACCOUNT_NOT_FOUND").Wrap(world.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("ACCOUNT_QUERY_FAILED").Wrap(err)
	}
	return &acct, nil
}

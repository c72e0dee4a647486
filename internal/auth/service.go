// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ember Contributors

package auth

import (
	"errors"

	"github.com/samber/oops"

	"github.com/emberpath/ember/internal/world"
)

// ErrBadCredentials is the single failure returned for both an unknown
// account name and a wrong password, so the two are indistinguishable to
// the client.
var ErrBadCredentials = oops.Code("AUTH_INVALID_CREDENTIALS").Errorf("invalid name or password")

// dummy credential verified when the account does not exist, to keep the
// response time of unknown-name and wrong-password failures alike.
var (
	dummyHash = "qqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqo"
	dummySalt = "qqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqo"
)

// Service performs account operations against the world store. It holds no
// state of its own; every call runs inside the caller's transaction.
type Service struct {
	hasher *Hasher
}

// NewService creates a Service.
func NewService(hasher *Hasher) *Service {
	return &Service{hasher: hasher}
}

// Authenticate verifies name and password and returns the bound character
// id. Any failure short of a store error is ErrBadCredentials.
func (s *Service) Authenticate(tx world.Tx, name, password string) (int64, error) {
	acct, lookupErr := tx.AccountByName(name)

	hash, salt := dummyHash, dummySalt
	exists := false
	if lookupErr == nil {
		hash, salt = acct.PasswordHash, acct.Salt
		exists = true
	} else if !errors.Is(lookupErr, world.ErrNotFound) {
		return 0, oops.Code("AUTH_LOOKUP_FAILED").With("name", name).Wrap(lookupErr)
	}

	valid, err := s.hasher.Verify(password, hash, salt)
	if err != nil {
		if !exists {
			return 0, ErrBadCredentials
		}
		return 0, oops.Code("AUTH_VERIFY_FAILED").With("name", name).Wrap(err)
	}
	if !exists || !valid {
		return 0, ErrBadCredentials
	}
	return acct.CharacterID, nil
}

// CreateAccount creates a character thing named name and binds a fresh
// account to it. The name must not already be the login name of another
// account's character; a collision returns world.ErrNameTaken.
func (s *Service) CreateAccount(tx world.Tx, name, password string) (*world.Thing, error) {
	inUse, err := tx.CharacterNameInUse(name, 0)
	if err != nil {
		return nil, err
	}
	if inUse {
		return nil, world.ErrNameTaken
	}

	hash, salt, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	char, err := world.Create(tx, name)
	if err != nil {
		return nil, err
	}
	if _, err := tx.CreateAccount(char.ID, hash, salt); err != nil {
		return nil, err
	}
	return char, nil
}

// ChangePassword verifies the old password for the character's account and
// stores a fresh hash and salt for the new one.
func (s *Service) ChangePassword(tx world.Tx, charID int64, oldPassword, newPassword string) error {
	acct, err := tx.AccountByCharacter(charID)
	if err != nil {
		return err
	}
	valid, err := s.hasher.Verify(oldPassword, acct.PasswordHash, acct.Salt)
	if err != nil {
		return err
	}
	if !valid {
		return ErrBadCredentials
	}
	hash, salt, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	return tx.SetAccountPassword(charID, hash, salt)
}

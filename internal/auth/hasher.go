// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ember Contributors

// Package auth provides password hashing, account operations, and the
// permission-level gate.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"

	"github.com/samber/oops"
	"golang.org/x/crypto/argon2"
)

// argon2id parameters. The salt is 256 bits; hash and salt are persisted as
// separate columns, so the derivation parameters are fixed for the life of
// a database rather than encoded per credential.
const (
	argon2Time    = 3
	argon2Memory  = 64 * 1024 // KiB
	argon2Threads = 4
	argon2SaltLen = 32
	argon2KeyLen  = 32
)

// ErrEmptyPassword is returned when attempting to hash an empty password.
var ErrEmptyPassword = oops.Code("AUTH_EMPTY_PASSWORD").Errorf("password cannot be empty")

// Hasher derives and verifies salted argon2id password hashes.
type Hasher struct{}

// NewHasher creates a Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// Hash derives a hash of the UTF-8 password under a fresh random salt.
// Both return values are base64; two calls with the same password produce
// different salts and therefore different hashes.
func (h *Hasher) Hash(password string) (hash, salt string, err error) {
	if password == "" {
		return "", "", ErrEmptyPassword
	}

	rawSalt := make([]byte, argon2SaltLen)
	if _, err := rand.Read(rawSalt); err != nil {
		return "", "", oops.Code("AUTH_SALT_FAILED").Wrap(err)
	}

	key := argon2.IDKey([]byte(password), rawSalt, argon2Time, argon2Memory, argon2Threads, argon2KeyLen)
	return base64.RawStdEncoding.EncodeToString(key),
		base64.RawStdEncoding.EncodeToString(rawSalt),
		nil
}

// Verify re-derives the hash with the stored salt and compares it to the
// stored hash in constant time.
func (h *Hasher) Verify(password, hash, salt string) (bool, error) {
	rawSalt, err := base64.RawStdEncoding.DecodeString(salt)
	if err != nil {
		return false, oops.Code("AUTH_INVALID_SALT").Wrap(err)
	}
	expected, err := base64.RawStdEncoding.DecodeString(hash)
	if err != nil {
		return false, oops.Code("AUTH_INVALID_HASH").Wrap(err)
	}
	if len(expected) == 0 {
		return false, oops.Code("AUTH_INVALID_HASH").Errorf("empty stored hash")
	}

	key := argon2.IDKey([]byte(password), rawSalt, argon2Time, argon2Memory, argon2Threads, uint32(len(expected)))
	return subtle.ConstantTimeCompare(key, expected) == 1, nil
}

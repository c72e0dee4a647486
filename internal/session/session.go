// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ember Contributors

// Package session associates transport links with authenticated characters.
package session

import (
	"log/slog"
	"time"
)

// Link is the bidirectional text channel the core writes to. The transport
// implements it; the core never constructs one. Write is buffered and
// non-blocking, and never silently partial. Kill forcibly terminates the
// connection.
type Link interface {
	Write(text string)
	Kill()
}

// Session is the transient association between a link and either no
// identity or exactly one authenticated character.
type Session struct {
	Link        Link
	CharacterID int64
	ConnectedAt time.Time
	LoginAt     time.Time

	authenticated bool
}

// Authenticated reports whether the session has logged in.
func (s *Session) Authenticated() bool {
	return s.authenticated
}

// Registry owns the link↔character mappings. The forward map tracks every
// live link; the reverse map targets broadcasts at connected characters
// only. The engine is single-threaded, so access is unsynchronized.
type Registry struct {
	byLink map[Link]*Session
	byChar map[int64]*Session
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byLink: make(map[Link]*Session),
		byChar: make(map[int64]*Session),
	}
}

// Add registers a newly connected, unauthenticated link.
func (r *Registry) Add(link Link) *Session {
	s := &Session{Link: link, ConnectedAt: time.Now()}
	r.byLink[link] = s
	return s
}

// Get returns the session for a link, or nil for an unknown link.
func (r *Registry) Get(link Link) *Session {
	return r.byLink[link]
}

// Authenticate binds the link to a character in both directions. A previous
// session for the same character is displaced; its link stays connected but
// no longer receives targeted output.
func (r *Registry) Authenticate(link Link, charID int64) {
	s, ok := r.byLink[link]
	if !ok {
		slog.Debug("authenticate called for unknown link", "char_id", charID)
		return
	}
	if prev, ok := r.byChar[charID]; ok && prev != s {
		prev.authenticated = false
		prev.CharacterID = 0
	}
	s.CharacterID = charID
	s.authenticated = true
	s.LoginAt = time.Now()
	r.byChar[charID] = s
}

// Remove drops the session for a link, clearing the reverse entry when this
// link still owns it. It returns the removed session, or nil.
func (r *Registry) Remove(link Link) *Session {
	s, ok := r.byLink[link]
	if !ok {
		return nil
	}
	delete(r.byLink, link)
	if s.authenticated {
		if cur, ok := r.byChar[s.CharacterID]; ok && cur == s {
			delete(r.byChar, s.CharacterID)
		}
	}
	return s
}

// LinkFor returns the link of a connected character, or nil.
func (r *Registry) LinkFor(charID int64) Link {
	s, ok := r.byChar[charID]
	if !ok {
		return nil
	}
	return s.Link
}

// Connected returns the character ids of every authenticated session.
func (r *Registry) Connected() []int64 {
	ids := make([]int64, 0, len(r.byChar))
	for id := range r.byChar {
		ids = append(ids, id)
	}
	return ids
}

// Len returns the number of live links, authenticated or not.
func (r *Registry) Len() int {
	return len(r.byLink)
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ember Contributors

package command

import (
	"log/slog"
	"strings"
)

// Registry holds registered commands in registration order. Order is
// significant: a full name that is a textual prefix of another must be
// registered after the longer one or it will shadow it.
type Registry struct {
	entries []Entry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends an entry. A shadowing registration (an earlier exact
// name that is a prefix of the new one) is logged, since the new entry can
// never match.
func (r *Registry) Register(e Entry) {
	if e.Kind == Exact {
		for _, prev := range r.entries {
			if prev.Kind == Exact && strings.HasPrefix(e.Name, prev.Name+" ") {
				slog.Warn("command shadowed by earlier registration",
					"command", e.Name,
					"shadowed_by", prev.Name)
			}
		}
	}
	r.entries = append(r.entries, e)
}

// Match finds the first entry matching the input line. Prefix entries are
// tried first, against the raw line; then exact entries, against the
// trimmed line with a single-space boundary. args is the text handed to
// the handler: untrimmed remainder for prefix matches, text after the
// boundary for exact matches.
func (r *Registry) Match(line string) (Entry, string, bool) {
	for _, e := range r.entries {
		if e.Kind != Prefix {
			continue
		}
		if rest, ok := strings.CutPrefix(line, e.Name); ok {
			return e, rest, true
		}
	}

	trimmed := strings.TrimSpace(line)
	for _, e := range r.entries {
		if e.Kind != Exact {
			continue
		}
		if trimmed == e.Name {
			return e, "", true
		}
		if rest, ok := strings.CutPrefix(trimmed, e.Name+" "); ok {
			return e, rest, true
		}
	}

	return Entry{}, "", false
}

// Entries returns the registered commands in order. The slice is a copy.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

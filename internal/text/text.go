// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ember Contributors

// Package text holds the user-visible message table. Defaults can be
// overridden per-key from configuration.
package text

import "fmt"

// Message keys.
const (
	Welcome           = "welcome"
	BadLogin          = "bad_login"
	NotUnderstood     = "not_understood"
	ThingNotFound     = "thing_not_found"
	ThingAmbiguous    = "thing_ambiguous"
	Syntax            = "syntax"
	CommandErrNoMsg   = "command_err_unspecified"
	CommandErrArgs    = "command_err_args"
	InternalError     = "internal_error"
	Nowhere           = "nowhere"
	ContentsPrefix    = "contents_prefix"
	DescMissing       = "desc_missing"
	Goodbye           = "goodbye"
	HasConnected      = "has_connected"
	HasDisconnected   = "has_disconnected"
	HasLeft           = "has_left"
	HasArrived        = "has_arrived"
	ExitLeadsNowhere  = "exit_leads_nowhere"
	PermissionDenied  = "permission_denied"
)

var defaults = map[string]string{
	Welcome:          "Welcome.  Type `connect <name> <password>' to connect.",
	BadLogin:         "I'm sorry, but those credentials were not right.",
	NotUnderstood:    "I don't understand what you mean.",
	ThingNotFound:    "I can't find any such thing as `%s'.",
	ThingAmbiguous:   "`%s' is ambiguous -- I can't tell which thing you mean.",
	Syntax:           "That command needs to be written similar to `%s'.",
	CommandErrNoMsg:  "[!!] There was a problem processing your command, but no explanation has been provided.",
	CommandErrArgs:   "[!!] There was a problem processing your command, but the arguments weren't as expected: %s",
	InternalError:    "[!!] Something went wrong on our side while processing that command.",
	Nowhere:          "You... erm... don't seem to actually be in a location that exists.",
	ContentsPrefix:   "You can see: ",
	DescMissing:      "You see nothing special.",
	Goodbye:          "Goodbye.",
	HasConnected:     "%s has connected.",
	HasDisconnected:  "%s has disconnected.",
	HasLeft:          "%s has left.",
	HasArrived:       "%s has arrived.",
	ExitLeadsNowhere: "That way doesn't seem to lead anywhere.",
	PermissionDenied: "You don't have permission to do that.",
}

// Table resolves message keys to strings, preferring overrides.
type Table struct {
	overrides map[string]string
}

// NewTable creates a table with the given per-key overrides. A nil map is
// fine.
func NewTable(overrides map[string]string) Table {
	return Table{overrides: overrides}
}

// Get returns the message for key.
func (t Table) Get(key string) string {
	if v, ok := t.overrides[key]; ok {
		return v
	}
	return defaults[key]
}

// Getf returns the message for key formatted with args.
func (t Table) Getf(key string, args ...any) string {
	return fmt.Sprintf(t.Get(key), args...)
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ember Contributors

package session

import "fmt"

// Terminator is the canonical line ending appended to every outgoing line.
const Terminator = "\r\n"

// WriteLine writes text to the link with the canonical terminator appended.
func WriteLine(l Link, text string) {
	l.Write(text + Terminator)
}

// WriteLinef formats and writes one terminated line to the link.
func WriteLinef(l Link, format string, args ...any) {
	WriteLine(l, fmt.Sprintf(format, args...))
}

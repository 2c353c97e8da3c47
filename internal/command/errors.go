// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// errors.go - Dispatch failure kinds and their rendering.
//
// Every failure a dispatch can produce is one of the sentinel kinds
// below, optionally wrapped with position information. The dispatcher
// renders each failure exactly once to the sender; callers receive the
// structured error for logging.

package command

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/forgecraft/internal/chat"
)

// Sentinel failure kinds, matched with errors.Is.
var (
	// ErrUnterminatedQuote is a quoted token with no closing quote.
	ErrUnterminatedQuote = errors.New("unterminated quoted string")

	// ErrUnknownCommand is a leading literal with no registration.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrPermissionDenied is a failed level or permission-node check.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrIncompleteCommand is input that ended before reaching an
	// executable node.
	ErrIncompleteCommand = errors.New("incomplete command")

	// ErrNoMatchingBranch is a token no child of the current node
	// accepted.
	ErrNoMatchingBranch = errors.New("incorrect argument")
)

// SyntaxError pins one of the sentinel kinds to a byte offset in the
// dispatched line. Detail optionally names the offending token.
type SyntaxError struct {
	Err    error
	Offset int
	Detail string
}

func (e *SyntaxError) Error() string {
	msg := e.Err.Error()
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return fmt.Sprintf("%s at offset %d", msg, e.Offset)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// ParseError is an argument parser rejecting its input. Reason is
// user-facing; Offset is the byte position where parsing diverged.
type ParseError struct {
	Offset int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at offset %d", e.Reason, e.Offset)
}

// Offset extracts the line offset recorded in err, if any.
func Offset(err error) (int, bool) {
	var se *SyntaxError
	if errors.As(err, &se) {
		return se.Offset, true
	}
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Offset, true
	}
	return 0, false
}

// RenderError formats err as the single message shown to the sender.
// Access failures stay terse so operators can tell "no access" from
// "mistyped"; position-bearing failures repeat the line with a caret
// under the failure offset.
func RenderError(line string, err error) *chat.Message {
	switch {
	case errors.Is(err, ErrPermissionDenied):
		return chat.Text("You do not have permission to use this command").Color(chat.Red)
	case errors.Is(err, ErrUnknownCommand):
		var se *SyntaxError
		if errors.As(err, &se) && se.Detail != "" {
			return chat.Textf("Unknown command: %s", se.Detail).Color(chat.Red)
		}
		return chat.Text("Unknown command").Color(chat.Red)
	}

	off, ok := Offset(err)
	if !ok {
		// A handler failure carries its own text.
		return chat.Text(upperFirst(err.Error())).Color(chat.Red)
	}
	if off > len(line) {
		off = len(line)
	}

	reason := err.Error()
	var pe *ParseError
	var se *SyntaxError
	switch {
	case errors.As(err, &pe):
		reason = pe.Reason
	case errors.As(err, &se):
		reason = se.Err.Error()
		if se.Detail != "" {
			reason += ": " + se.Detail
		}
	}

	caret := strings.Repeat(" ", runewidth.StringWidth(line[:off])) + "^"
	return chat.Text(upperFirst(reason)).Color(chat.Red).
		Append(chat.Text("\n" + line).Color(chat.Gray)).
		Append(chat.Text("\n" + caret).Color(chat.Red))
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// parser.go - The capability interface argument kinds implement, and
// the token input they consume from.

package command

import "fmt"

// Parser consumes a prefix of the remaining tokens for one argument
// and binds a typed value. A parser must take only what it needs so
// the next argument on the path sees the rest; greedy parsers are the
// recognized exception and must sit on a leaf node.
type Parser interface {
	// Kind names the value shape for diagnostics and usage text,
	// e.g. "integer" or "player".
	Kind() string

	// Parse consumes tokens from in and returns the bound value, or a
	// *ParseError locating the rejection.
	Parse(in *Input) (any, error)

	// Suggest proposes completions for the partial token at the
	// cursor. It works regardless of whether Parse would accept the
	// partial text.
	Suggest(prefix string, sender Sender) []string
}

// GreedyParser marks parsers that consume the rest of the line.
type GreedyParser interface {
	Parser
	Greedy() bool
}

func isGreedy(p Parser) bool {
	g, ok := p.(GreedyParser)
	return ok && g.Greedy()
}

// =============================================================================
// PARSER INPUT
// =============================================================================

// Input is a parser's view of the remaining tokens in one dispatch.
// Tokens are consumed from the front via Next.
type Input struct {
	line   string
	tokens []Token
	pos    int
	max    int
}

// NewInput builds a parser input over tokens starting at pos. The
// dispatcher builds inputs itself during traversal; parser
// implementations use this in their tests.
func NewInput(line string, tokens []Token, pos int) *Input {
	return &Input{line: line, tokens: tokens, pos: pos, max: pos}
}

// Remaining reports how many tokens are left.
func (in *Input) Remaining() int { return len(in.tokens) - in.pos }

// Peek returns the next token without consuming it.
func (in *Input) Peek() (Token, bool) {
	if in.pos >= len(in.tokens) {
		return Token{}, false
	}
	return in.tokens[in.pos], true
}

// Next consumes and returns the next token.
func (in *Input) Next() (Token, bool) {
	if in.pos >= len(in.tokens) {
		return Token{}, false
	}
	t := in.tokens[in.pos]
	in.pos++
	if in.pos > in.max {
		in.max = in.pos
	}
	return t, true
}

// Rest consumes every remaining token and returns the raw line text
// from the current token's start to the end of the line, quoting and
// spacing preserved. Empty when no tokens remain.
func (in *Input) Rest() string {
	t, ok := in.Peek()
	if !ok {
		return ""
	}
	in.pos = len(in.tokens)
	in.max = in.pos
	return in.line[t.Start:]
}

// Offset is the byte offset of the current position: the next token's
// start, or the end of the line once input is exhausted.
func (in *Input) Offset() int {
	if t, ok := in.Peek(); ok {
		return t.Start
	}
	return len(in.line)
}

// Errorf builds a *ParseError at the current position. Use it when
// input ran out before the parser was satisfied.
func (in *Input) Errorf(format string, args ...any) *ParseError {
	return &ParseError{Offset: in.Offset(), Reason: fmt.Sprintf(format, args...)}
}

// ErrorfAt builds a *ParseError pointing at an already-consumed token.
func (in *Input) ErrorfAt(tok Token, format string, args ...any) *ParseError {
	return &ParseError{Offset: tok.Start, Reason: fmt.Sprintf(format, args...)}
}

// =============================================================================
// CONSUMED ARGUMENTS
// =============================================================================

// ConsumedArgs maps argument names to their parsed values for one
// dispatch. It is built during traversal, handed to the handler, and
// discarded afterwards; values are never cached across dispatches.
type ConsumedArgs map[string]any

// String returns the named argument as a string.
func (a ConsumedArgs) String(name string) (string, bool) {
	v, ok := a[name].(string)
	return v, ok
}

// Int returns the named argument as an int.
func (a ConsumedArgs) Int(name string) (int, bool) {
	v, ok := a[name].(int)
	return v, ok
}

// Float returns the named argument as a float64.
func (a ConsumedArgs) Float(name string) (float64, bool) {
	v, ok := a[name].(float64)
	return v, ok
}

// Bool returns the named argument as a bool.
func (a ConsumedArgs) Bool(name string) (bool, bool) {
	v, ok := a[name].(bool)
	return v, ok
}

// clone copies the map so sibling branches cannot see each other's
// bindings while the traversal backtracks.
func (a ConsumedArgs) clone() ConsumedArgs {
	out := make(ConsumedArgs, len(a)+1)
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// primitives.go - Single-word, enumerated, and greedy string kinds.

package args

import (
	"strings"

	"github.com/jeranaias/forgecraft/internal/command"
)

// WordParser accepts any single token.
type WordParser struct{}

// Word matches one token verbatim and binds it as a string.
func Word() WordParser { return WordParser{} }

func (WordParser) Kind() string { return "word" }

func (WordParser) Parse(in *command.Input) (any, error) {
	tok, ok := in.Next()
	if !ok {
		return nil, in.Errorf("expected a word")
	}
	return tok.Text, nil
}

func (WordParser) Suggest(string, command.Sender) []string { return nil }

// EnumParser accepts one of a fixed set of options.
type EnumParser struct {
	options []string
}

// Enum matches one of options case-insensitively and binds the
// canonical lowercase form.
func Enum(options ...string) EnumParser {
	canon := make([]string, len(options))
	for i, o := range options {
		canon[i] = strings.ToLower(o)
	}
	return EnumParser{options: canon}
}

func (p EnumParser) Kind() string { return "option" }

func (p EnumParser) Parse(in *command.Input) (any, error) {
	tok, ok := in.Next()
	if !ok {
		return nil, in.Errorf("expected one of %s", strings.Join(p.options, ", "))
	}
	want := strings.ToLower(tok.Text)
	for _, o := range p.options {
		if o == want {
			return o, nil
		}
	}
	return nil, in.ErrorfAt(tok, "%q is not one of %s", tok.Text, strings.Join(p.options, ", "))
}

func (p EnumParser) Suggest(string, command.Sender) []string {
	return append([]string(nil), p.options...)
}

// MessageParser greedily takes the rest of the line.
type MessageParser struct{}

// Message consumes everything to the end of the line, spacing and
// quoting preserved, and binds it as a string. Greedy: the argument
// must be the last node on its path.
func Message() MessageParser { return MessageParser{} }

func (MessageParser) Kind() string { return "message" }

func (MessageParser) Parse(in *command.Input) (any, error) {
	rest := in.Rest()
	if rest == "" {
		return nil, in.Errorf("expected a message")
	}
	return rest, nil
}

func (MessageParser) Suggest(string, command.Sender) []string { return nil }

// Greedy implements command.GreedyParser.
func (MessageParser) Greedy() bool { return true }

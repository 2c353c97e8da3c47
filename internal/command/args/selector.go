// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// selector.go - Target selector kinds.
//
// Selectors parse into a description of the targets; the server
// resolves that description against the live roster when the handler
// runs. Parsing stays context-free so grammars can be built and tested
// without a server.

package args

import (
	"strings"

	"github.com/jeranaias/forgecraft/internal/command"
)

// SelectorKind says how a Selector picks its targets.
type SelectorKind int

const (
	// SelectName targets the player with the given name.
	SelectName SelectorKind = iota
	// SelectAll targets every online player (@a).
	SelectAll
	// SelectSelf targets the sender (@s).
	SelectSelf
	// SelectNearest targets the player closest to the sender (@p).
	SelectNearest
	// SelectRandom targets one random online player (@r).
	SelectRandom
	// SelectEntities targets every entity (@e). Only the entity kind
	// accepts it.
	SelectEntities
)

// Selector is a parsed target reference.
type Selector struct {
	Kind SelectorKind
	// Name is set for SelectName.
	Name string
	// Single limits resolution to exactly one target.
	Single bool
}

func (s Selector) String() string {
	switch s.Kind {
	case SelectAll:
		return "@a"
	case SelectSelf:
		return "@s"
	case SelectNearest:
		return "@p"
	case SelectRandom:
		return "@r"
	case SelectEntities:
		return "@e"
	default:
		return s.Name
	}
}

// GetSelector returns the named argument as a Selector.
func GetSelector(a command.ConsumedArgs, name string) (Selector, bool) {
	v, ok := a[name].(Selector)
	return v, ok
}

// validName reports whether s is a well-formed player name: 1 to 16
// characters of letters, digits, and underscores.
func validName(s string) bool {
	if len(s) == 0 || len(s) > 16 {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_':
		default:
			return false
		}
	}
	return true
}

// PlayersParser accepts a player name or a player selector.
type PlayersParser struct {
	names func() []string
}

// Players matches one token naming players: a literal name or one of
// @a, @s, @p, @r. The source function supplies online names for
// completion and may be nil.
func Players(names func() []string) PlayersParser {
	return PlayersParser{names: names}
}

func (PlayersParser) Kind() string { return "players" }

func (p PlayersParser) Parse(in *command.Input) (any, error) {
	tok, ok := in.Next()
	if !ok {
		return nil, in.Errorf("expected a player name or selector")
	}
	sel, err := parseSelector(in, tok, false)
	if err != nil {
		return nil, err
	}
	return sel, nil
}

func (p PlayersParser) Suggest(_ string, _ command.Sender) []string {
	out := []string{"@a", "@s", "@p", "@r"}
	if p.names != nil {
		out = append(out, p.names()...)
	}
	return out
}

// EntitiesParser accepts any number of entity targets, including @e.
type EntitiesParser struct {
	names func() []string
}

// Entities matches one token naming any number of targets. In
// addition to the player selectors it accepts @e.
func Entities(names func() []string) EntitiesParser {
	return EntitiesParser{names: names}
}

func (EntitiesParser) Kind() string { return "entities" }

func (p EntitiesParser) Parse(in *command.Input) (any, error) {
	tok, ok := in.Next()
	if !ok {
		return nil, in.Errorf("expected an entity name or selector")
	}
	sel, err := parseSelector(in, tok, true)
	if err != nil {
		return nil, err
	}
	return sel, nil
}

func (p EntitiesParser) Suggest(_ string, _ command.Sender) []string {
	out := []string{"@e", "@a", "@s", "@p", "@r"}
	if p.names != nil {
		out = append(out, p.names()...)
	}
	return out
}

// EntityParser accepts a single entity target, including @e.
type EntityParser struct {
	names func() []string
}

// Entity matches one token naming exactly one target. In addition to
// the player selectors it accepts @e.
func Entity(names func() []string) EntityParser {
	return EntityParser{names: names}
}

func (EntityParser) Kind() string { return "entity" }

func (p EntityParser) Parse(in *command.Input) (any, error) {
	tok, ok := in.Next()
	if !ok {
		return nil, in.Errorf("expected an entity name or selector")
	}
	sel, err := parseSelector(in, tok, true)
	if err != nil {
		return nil, err
	}
	sel.Single = true
	return sel, nil
}

func (p EntityParser) Suggest(_ string, _ command.Sender) []string {
	out := []string{"@e", "@a", "@s", "@p", "@r"}
	if p.names != nil {
		out = append(out, p.names()...)
	}
	return out
}

func parseSelector(in *command.Input, tok command.Token, allowEntities bool) (Selector, error) {
	if !strings.HasPrefix(tok.Text, "@") {
		if !validName(tok.Text) {
			return Selector{}, in.ErrorfAt(tok, "invalid player name %q", tok.Text)
		}
		return Selector{Kind: SelectName, Name: tok.Text}, nil
	}
	switch tok.Text {
	case "@a":
		return Selector{Kind: SelectAll}, nil
	case "@s":
		return Selector{Kind: SelectSelf}, nil
	case "@p":
		return Selector{Kind: SelectNearest}, nil
	case "@r":
		return Selector{Kind: SelectRandom}, nil
	case "@e":
		if allowEntities {
			return Selector{Kind: SelectEntities}, nil
		}
		return Selector{}, in.ErrorfAt(tok, "@e cannot be used here")
	}
	return Selector{}, in.ErrorfAt(tok, "unknown selector %q", tok.Text)
}

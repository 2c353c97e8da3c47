// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// gamemode.go - Game mode names, numeric ids, and one-letter forms.

package args

import (
	"strings"

	"github.com/jeranaias/forgecraft/internal/command"
)

// gamemodes maps every accepted spelling to the canonical name.
var gamemodes = map[string]string{
	"survival":  "survival",
	"s":         "survival",
	"0":         "survival",
	"creative":  "creative",
	"c":         "creative",
	"1":         "creative",
	"adventure": "adventure",
	"a":         "adventure",
	"2":         "adventure",
	"spectator": "spectator",
	"sp":        "spectator",
	"3":         "spectator",
}

// GamemodeNames lists the canonical mode names.
var GamemodeNames = []string{"survival", "creative", "adventure", "spectator"}

// GamemodeParser accepts a game mode in any spelling.
type GamemodeParser struct{}

// Gamemode matches survival, creative, adventure, or spectator, also
// by numeric id or first letter, and binds the canonical name.
func Gamemode() GamemodeParser { return GamemodeParser{} }

func (GamemodeParser) Kind() string { return "game mode" }

func (GamemodeParser) Parse(in *command.Input) (any, error) {
	tok, ok := in.Next()
	if !ok {
		return nil, in.Errorf("expected a game mode")
	}
	mode, ok := gamemodes[strings.ToLower(tok.Text)]
	if !ok {
		return nil, in.ErrorfAt(tok, "unknown game mode %q", tok.Text)
	}
	return mode, nil
}

func (GamemodeParser) Suggest(string, command.Sender) []string {
	return append([]string(nil), GamemodeNames...)
}

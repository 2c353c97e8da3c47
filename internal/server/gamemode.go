// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// gamemode.go - Player game modes.

package server

// GameMode is a player's rule set.
type GameMode int

const (
	Survival GameMode = iota
	Creative
	Adventure
	Spectator
)

// String returns the canonical lowercase mode name.
func (m GameMode) String() string {
	switch m {
	case Creative:
		return "creative"
	case Adventure:
		return "adventure"
	case Spectator:
		return "spectator"
	default:
		return "survival"
	}
}

// ParseGameMode resolves a canonical mode name as bound by the
// gamemode argument kind.
func ParseGameMode(name string) (GameMode, bool) {
	switch name {
	case "survival":
		return Survival, true
	case "creative":
		return Creative, true
	case "adventure":
		return Adventure, true
	case "spectator":
		return Spectator, true
	}
	return Survival, false
}

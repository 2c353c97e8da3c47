// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// entity.go - Non-player entities summoned into the world.

package server

import (
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jeranaias/forgecraft/internal/world"
)

// Entity is one summoned entity. Entities are plain records: they do
// not tick, fight, or path; they exist so selectors and the kill
// command have something real to act on.
type Entity struct {
	ID   uuid.UUID
	Kind string // resource id, e.g. "minecraft:zombie"
	Pos  world.Pos
}

// DisplayName renders the entity kind for messages, e.g.
// "minecraft:zombie" becomes "Zombie".
func (e *Entity) DisplayName() string {
	name := e.Kind
	if i := strings.IndexByte(name, ':'); i >= 0 {
		name = name[i+1:]
	}
	name = strings.ReplaceAll(name, "_", " ")
	return cases.Title(language.English).String(name)
}

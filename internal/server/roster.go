// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// roster.go - The online-player and entity registry.

package server

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
)

// =============================================================================
// ROSTER
// =============================================================================

// Roster tracks who and what is in the world. Player names are unique
// without regard to case. All methods are safe for concurrent use.
type Roster struct {
	mu       sync.RWMutex
	players  map[uuid.UUID]*Player
	byName   map[string]uuid.UUID // folded name -> uuid
	entities map[uuid.UUID]*Entity
}

// NewRoster returns an empty roster.
func NewRoster() *Roster {
	return &Roster{
		players:  make(map[uuid.UUID]*Player),
		byName:   make(map[string]uuid.UUID),
		entities: make(map[uuid.UUID]*Entity),
	}
}

// foldName normalizes a player name for lookup.
func foldName(name string) string {
	return cases.Fold().String(name)
}

// =============================================================================
// PLAYERS
// =============================================================================

// Join adds p. It fails when the uuid or the name is already taken.
func (r *Roster) Join(p *Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.players[p.UUID()]; ok {
		return fmt.Errorf("player %s is already online", p.UUID())
	}
	folded := foldName(p.Name())
	if _, ok := r.byName[folded]; ok {
		return fmt.Errorf("player name %s is already taken", p.Name())
	}
	r.players[p.UUID()] = p
	r.byName[folded] = p.UUID()
	return nil
}

// Leave removes the player with the given uuid and returns them.
func (r *Roster) Leave(id uuid.UUID) (*Player, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.players[id]
	if !ok {
		return nil, false
	}
	delete(r.players, id)
	delete(r.byName, foldName(p.Name()))
	return p, true
}

// ByName looks a player up by name, case-insensitively.
func (r *Roster) ByName(name string) (*Player, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byName[foldName(name)]
	if !ok {
		return nil, false
	}
	p, ok := r.players[id]
	return p, ok
}

// ByUUID looks a player up by uuid.
func (r *Roster) ByUUID(id uuid.UUID) (*Player, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.players[id]
	return p, ok
}

// Players returns the online players sorted by name.
func (r *Roster) Players() []*Player {
	r.mu.RLock()
	out := make([]*Player, 0, len(r.players))
	for _, p := range r.players {
		out = append(out, p)
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// Names returns the online player names sorted.
func (r *Roster) Names() []string {
	r.mu.RLock()
	out := make([]string, 0, len(r.players))
	for _, p := range r.players {
		out = append(out, p.Name())
	}
	r.mu.RUnlock()
	sort.Strings(out)
	return out
}

// Count returns how many players are online.
func (r *Roster) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.players)
}

// =============================================================================
// ENTITIES
// =============================================================================

// AddEntity records a summoned entity.
func (r *Roster) AddEntity(e *Entity) {
	r.mu.Lock()
	r.entities[e.ID] = e
	r.mu.Unlock()
}

// RemoveEntity removes the entity with the given id.
func (r *Roster) RemoveEntity(id uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entities[id]; !ok {
		return false
	}
	delete(r.entities, id)
	return true
}

// Entities returns the summoned entities ordered by kind, then id.
func (r *Roster) Entities() []*Entity {
	r.mu.RLock()
	out := make([]*Entity, 0, len(r.entities))
	for _, e := range r.entities {
		out = append(out, e)
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].Kind != out[j].Kind {
			return out[i].Kind < out[j].Kind
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out
}

// EntityCount returns how many summoned entities exist.
func (r *Roster) EntityCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entities)
}

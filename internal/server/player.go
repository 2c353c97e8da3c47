// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// player.go - The in-world sender variant.

package server

import (
	"sync"

	"github.com/google/uuid"

	"github.com/jeranaias/forgecraft/internal/chat"
	"github.com/jeranaias/forgecraft/internal/command"
	"github.com/jeranaias/forgecraft/internal/perm"
	"github.com/jeranaias/forgecraft/internal/world"
)

// MaxHealth is a player's full health in half-hearts.
const MaxHealth = 20

// defaultGrants is the node set every player starts with. The level
// gate does the tier work; the wildcard keeps the node gate open for
// built-in commands. The permissions.toml overlay adds nodes outside
// this namespace.
var defaultGrants = perm.NewSet("forgecraft.*")

// Player is one online player. It implements command.Sender; handlers
// mutate it through the setters. All methods are safe for concurrent
// use.
type Player struct {
	id   uuid.UUID
	name string

	// extra consults the live permission overlay. Set on join.
	extra func(node string) bool

	mu        sync.RWMutex
	level     perm.Level
	perms     perm.Set
	mode      GameMode
	w         *world.World
	pos       world.Pos
	rot       world.Rotation
	health    float64
	xpLevels  int
	xpPoints  int
	inventory map[string]int
	sink      func(*chat.Message)
}

// NewPlayer returns a player at full health in survival mode with the
// default permission grants. The server assigns world and position on
// join.
func NewPlayer(id uuid.UUID, name string) *Player {
	return &Player{
		id:        id,
		name:      name,
		perms:     defaultGrants,
		health:    MaxHealth,
		inventory: make(map[string]int),
	}
}

// UUID returns the player's stable identity.
func (p *Player) UUID() uuid.UUID { return p.id }

// OfflineUUID derives a stable uuid from a name, for admin commands
// that accept players who have never connected.
func OfflineUUID(name string) uuid.UUID {
	return uuid.NewMD5(uuid.Nil, []byte("OfflinePlayer:"+name))
}

// =============================================================================
// SENDER SURFACE
// =============================================================================

// Name returns the player's name.
func (p *Player) Name() string { return p.name }

// Level returns the player's permission level.
func (p *Player) Level() perm.Level {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.level
}

// HasPermission reports whether the player holds node, through the
// base grants or the live overlay.
func (p *Player) HasPermission(node string) bool {
	p.mu.RLock()
	perms, extra := p.perms, p.extra
	p.mu.RUnlock()
	if perms.Has(node) {
		return true
	}
	return extra != nil && extra(node)
}

// SendMessage delivers msg to the player's attached sink. Messages to
// a player without a sink are dropped.
func (p *Player) SendMessage(msg *chat.Message) {
	p.mu.RLock()
	sink := p.sink
	p.mu.RUnlock()
	if sink != nil {
		sink(msg)
	}
}

// IsPlayer reports true.
func (p *Player) IsPlayer() bool { return true }

// IsConsole reports false.
func (p *Player) IsConsole() bool { return false }

// Position returns where the player stands.
func (p *Player) Position() (world.Pos, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.pos, true
}

// World returns the world the player is in.
func (p *Player) World() (*world.World, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.w, p.w != nil
}

var _ command.Sender = (*Player)(nil)

// =============================================================================
// IDENTITY AND ACCESS
// =============================================================================

// SetLevel sets the player's permission level.
func (p *Player) SetLevel(l perm.Level) {
	p.mu.Lock()
	p.level = l
	p.mu.Unlock()
}

// SetPermissions replaces the player's base node set.
func (p *Player) SetPermissions(s perm.Set) {
	p.mu.Lock()
	p.perms = s
	p.mu.Unlock()
}

// SetSink attaches the delivery function for messages to this player.
func (p *Player) SetSink(sink func(*chat.Message)) {
	p.mu.Lock()
	p.sink = sink
	p.mu.Unlock()
}

func (p *Player) setExtra(fn func(node string) bool) {
	p.mu.Lock()
	p.extra = fn
	p.mu.Unlock()
}

// =============================================================================
// WORLD STATE
// =============================================================================

// SetWorld moves the player into w.
func (p *Player) SetWorld(w *world.World) {
	p.mu.Lock()
	p.w = w
	p.mu.Unlock()
}

// SetPosition moves the player.
func (p *Player) SetPosition(pos world.Pos) {
	p.mu.Lock()
	p.pos = pos
	p.mu.Unlock()
}

// Rotation returns the player's view direction.
func (p *Player) Rotation() world.Rotation {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.rot
}

// SetRotation turns the player.
func (p *Player) SetRotation(rot world.Rotation) {
	p.mu.Lock()
	p.rot = rot
	p.mu.Unlock()
}

// GameMode returns the player's game mode.
func (p *Player) GameMode() GameMode {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.mode
}

// SetGameMode switches the player's game mode and returns the previous
// one.
func (p *Player) SetGameMode(m GameMode) GameMode {
	p.mu.Lock()
	defer p.mu.Unlock()
	prev := p.mode
	p.mode = m
	return prev
}

// =============================================================================
// HEALTH
// =============================================================================

// Health returns the player's health in half-hearts.
func (p *Player) Health() float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.health
}

// SetHealth clamps health into [0, MaxHealth].
func (p *Player) SetHealth(h float64) {
	if h < 0 {
		h = 0
	}
	if h > MaxHealth {
		h = MaxHealth
	}
	p.mu.Lock()
	p.health = h
	p.mu.Unlock()
}

// ApplyDamage reduces health by amount and reports whether the player
// died from it.
func (p *Player) ApplyDamage(amount float64) bool {
	if amount < 0 {
		amount = 0
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	was := p.health
	p.health -= amount
	if p.health < 0 {
		p.health = 0
	}
	return was > 0 && p.health == 0
}

// Kill drops health to zero.
func (p *Player) Kill() {
	p.mu.Lock()
	p.health = 0
	p.mu.Unlock()
}

// Alive reports whether the player has health left.
func (p *Player) Alive() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.health > 0
}

// =============================================================================
// EXPERIENCE
// =============================================================================

// XP returns the player's experience levels and points.
func (p *Player) XP() (levels, points int) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.xpLevels, p.xpPoints
}

// AddXPLevels adds n levels, flooring at zero, and returns the new
// count.
func (p *Player) AddXPLevels(n int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.xpLevels += n
	if p.xpLevels < 0 {
		p.xpLevels = 0
	}
	return p.xpLevels
}

// AddXPPoints adds n points, flooring at zero, and returns the new
// count.
func (p *Player) AddXPPoints(n int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.xpPoints += n
	if p.xpPoints < 0 {
		p.xpPoints = 0
	}
	return p.xpPoints
}

// SetXPLevels sets the level count, flooring at zero.
func (p *Player) SetXPLevels(n int) {
	if n < 0 {
		n = 0
	}
	p.mu.Lock()
	p.xpLevels = n
	p.mu.Unlock()
}

// SetXPPoints sets the point count, flooring at zero.
func (p *Player) SetXPPoints(n int) {
	if n < 0 {
		n = 0
	}
	p.mu.Lock()
	p.xpPoints = n
	p.mu.Unlock()
}

// =============================================================================
// INVENTORY
// =============================================================================

// Give adds count of item and returns the new total held.
func (p *Player) Give(item string, count int) int {
	if count < 0 {
		count = 0
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.inventory[item] += count
	return p.inventory[item]
}

// ItemCount returns how many of item the player holds.
func (p *Player) ItemCount(item string) int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.inventory[item]
}

// ClearItem removes every copy of item and returns how many were
// removed.
func (p *Player) ClearItem(item string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := p.inventory[item]
	delete(p.inventory, item)
	return n
}

// Clear empties the inventory and returns how many items were removed.
func (p *Player) Clear() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	total := 0
	for _, n := range p.inventory {
		total += n
	}
	p.inventory = make(map[string]int)
	return total
}

// Inventory returns a copy of the item counts.
func (p *Player) Inventory() map[string]int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make(map[string]int, len(p.inventory))
	for item, n := range p.inventory {
		out[item] = n
	}
	return out
}

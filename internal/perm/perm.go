// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package perm

import (
	"fmt"
	"strings"
)

// Level is an ordered operator privilege tier. Console and RCON senders
// always act at Four; players default to Zero until opped.
type Level uint8

const (
	// Zero is the default tier: chat-adjacent commands only.
	Zero Level = 0
	// One is reserved for moderator bypasses (spawn protection); no
	// built-in command registers at this tier.
	One Level = 1
	// Two unlocks world-mutating commands (give, setblock, teleport).
	Two Level = 2
	// Three unlocks player administration (op, kick, ban).
	Three Level = 3
	// Four unlocks server administration (stop).
	Four Level = 4
)

// String returns the level's numeric name.
func (l Level) String() string {
	return fmt.Sprintf("%d", uint8(l))
}

// AtLeast reports whether l satisfies a required minimum.
func (l Level) AtLeast(min Level) bool {
	return l >= min
}

// ParseLevel converts a config value (0-4) into a Level.
func ParseLevel(n int) (Level, error) {
	if n < 0 || n > 4 {
		return Zero, fmt.Errorf("permission level must be 0-4, got %d", n)
	}
	return Level(n), nil
}

// Set holds the permission nodes granted to one player. The zero value
// is an empty set. Sets are immutable once built; concurrent reads need
// no locking.
type Set struct {
	nodes map[string]struct{}
}

// NewSet builds a Set from node strings. A node ending in ".*" grants
// every node under that prefix; a bare "*" grants everything.
func NewSet(nodes ...string) Set {
	s := Set{nodes: make(map[string]struct{}, len(nodes))}
	for _, n := range nodes {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		s.nodes[n] = struct{}{}
	}
	return s
}

// Has reports whether the set grants node, directly or through a
// wildcard entry.
func (s Set) Has(node string) bool {
	if len(s.nodes) == 0 {
		return false
	}
	if _, ok := s.nodes["*"]; ok {
		return true
	}
	if _, ok := s.nodes[node]; ok {
		return true
	}
	// Walk prefixes: "forgecraft.command.x" is granted by "forgecraft.command.*"
	// and by "forgecraft.*".
	for i := len(node) - 1; i > 0; i-- {
		if node[i] != '.' {
			continue
		}
		if _, ok := s.nodes[node[:i]+".*"]; ok {
			return true
		}
	}
	return false
}

// Nodes returns the granted nodes in unspecified order.
func (s Set) Nodes() []string {
	out := make([]string, 0, len(s.nodes))
	for n := range s.nodes {
		out = append(out, n)
	}
	return out
}

// Len returns the number of distinct grants.
func (s Set) Len() int {
	return len(s.nodes)
}

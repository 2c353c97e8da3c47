// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package perm defines the operator permission model for forgecraft.
//
// Permissions have two layers: an ordered numeric level (0-4, mirroring
// the vanilla op-level scheme) gating whole commands, and named
// permission nodes ("forgecraft.gamemode") that player senders may hold
// individually, with trailing-wildcard grants ("forgecraft.*").
//
// # Key Types
//
//   - Level: ordered privilege tier, Zero through Four
//   - Set: a player's granted permission nodes
//
// # Usage
//
// Check a node against a grant set:
//
//	set := perm.NewSet("forgecraft.gamemode", "forgecraft.time")
//	set.Has("forgecraft.gamemode") // true
//	set.Has("forgecraft.stop")     // false
//
// Wildcards grant whole prefixes:
//
//	perm.NewSet("forgecraft.*").Has("forgecraft.ban") // true
package perm

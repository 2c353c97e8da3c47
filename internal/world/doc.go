// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package world holds the per-world state command handlers act on:
// game time, weather, the world border, the seed, and a sparse block
// map for block-editing commands.
//
// A World serializes its own access; handlers call its methods from
// any goroutine without extra locking. The coordinate types Pos,
// BlockPos, and Rotation are plain values shared across packages.
package world

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store persists operator grants, bans, and the whitelist.
//
// The backing database is a single SQLite file under the server data
// directory. Admin commands (op, ban, pardon, whitelist) write through
// this package, and the permission checks on dispatch read from it.
//
// # Key Types
//
//   - Store: open database handle with all CRUD operations
//   - OpEntry, BanEntry, IPBanEntry, WhitelistEntry: row records
//
// # Usage
//
// Open a store and grant operator status:
//
//	st, err := store.Open(filepath.Join(dataDir, "forgecraft.db"), logger)
//	err = st.SetOp(store.OpEntry{UUID: id, Name: "Steve", Level: perm.Four})
//
// # Permission Overlay
//
// Alongside the database, an optional permissions.toml file grants
// extra permission nodes per player. WatchPermissions loads it and
// reloads on edit, so grants change without a restart:
//
//	[players]
//	Steve = ["forgecraft.give", "forgecraft.time"]
package store

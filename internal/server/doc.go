// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package server holds the running server model that command handlers
// act on: the player roster, world handle, boss bars, and the
// start/stop lifecycle.
//
// # Key Types
//
//   - Server: top-level state, lifecycle, broadcast, selector resolution
//   - Player: an online player, implementing command.Sender
//   - Roster: the online-player and entity registry
//   - Console: the local console sender, level Four
//
// # Usage
//
// Build a server, register commands, and run:
//
//	srv := server.New(cfg, logger, st)
//	commands.RegisterDefaults(srv.Dispatcher(), srv)
//	srv.Dispatcher().Freeze()
//	srv.Start()
//	defer srv.Stop()
//
// Dispatch on behalf of the console:
//
//	srv.Dispatcher().Dispatch(ctx, "time set noon", srv.Console())
package server

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands holds the built-in command set, one file per
// command. RegisterDefaults wires all of them into a dispatcher
// against a server:
//
//	srv := server.New(cfg, logger, st)
//	if err := commands.RegisterDefaults(srv.Dispatcher(), srv); err != nil {
//		return err
//	}
//	srv.Dispatcher().Freeze()
//
// Every command guards itself with a node under the forgecraft
// namespace ("forgecraft.give") and one of the four operator levels.
// Handlers mutate the server model directly and answer through chat
// messages; failures are returned as errors and rendered once by the
// dispatcher.
package commands

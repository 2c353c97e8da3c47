// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package command implements the server's command engine: the grammar
// trees commands register at startup, the dispatcher that matches raw
// input lines against them, and the suggestion driver behind tab
// completion.
//
// A command's grammar is a tree of literal and typed-argument nodes
// built fluently at registration time:
//
//	tree := command.NewTree("gamemode", "Changes a player's game mode", "gm").
//		Then(command.Arg("mode", args.Gamemode()).
//			Executes(setOwnMode{srv}).
//			Then(command.Arg("target", args.Players(srv.PlayerNames)).
//				Executes(setOtherMode{srv}))).
//		MustBuild()
//
//	d.Register(tree, "forgecraft.gamemode", perm.Two)
//
// Dispatch tokenizes a line, resolves the leading literal through the
// registry (aliases included), applies the registration's permission
// gate, and walks the tree consuming tokens. Reaching an executable
// node with no tokens left runs its handler with the accumulated
// arguments. Any failure is rendered once to the sender as a single
// message with a caret under the offending position.
//
// The suggestion driver replays the same walk without executing
// anything, collecting the union of next-token candidates from every
// node reachable at the cursor.
//
// # Key Types
//
//   - Dispatcher: name/alias registry plus the dispatch and suggest entry points
//   - Tree, TreeBuilder, NodeBuilder: immutable grammars and their builders
//   - Parser: the capability interface argument kinds implement
//   - Sender: the capability surface of whoever issued the command
//   - ConsumedArgs: parsed argument values handed to a handler
//
// # Concurrency
//
// The registry is populated during boot and frozen before the first
// client connects. Dispatch and Suggest run concurrently from any
// number of callers; trees are immutable and per-dispatch state is
// never shared. No dispatcher lock is held while a handler runs.
package command

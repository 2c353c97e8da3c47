// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package args implements the argument kinds command grammars are
// built from. Each kind satisfies command.Parser: it consumes a prefix
// of the remaining tokens, binds a typed value, and proposes
// completions for the token under the cursor.
//
// Parsers are context-free. A selector like @a or a relative
// coordinate like ~10 parses into a value describing the reference,
// and the handler resolves it against live server state. Parsers that
// benefit from dynamic completion candidates, such as player names,
// take a source function at construction time.
//
// # Usage
//
//	command.Arg("targets", args.Players(srv.PlayerNames))
//	command.Arg("amount", args.Integer().Min(1).Max(6400))
//	command.Arg("pos", args.Vec3())
//	command.Arg("reason", args.Message())
//
// Typed values come back out of command.ConsumedArgs through the Get
// helpers next to each value type:
//
//	sel, _ := args.GetSelector(a, "targets")
//	players := srv.Resolve(sel, sender)
package args

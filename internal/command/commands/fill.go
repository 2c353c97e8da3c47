// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"context"

	"github.com/jeranaias/forgecraft/internal/command"
	"github.com/jeranaias/forgecraft/internal/command/args"
	"github.com/jeranaias/forgecraft/internal/perm"
	"github.com/jeranaias/forgecraft/internal/server"
)

func fillCommand(srv *server.Server) builtin {
	tree := command.NewTree("fill", "Fill a region with a block").
		Then(command.Arg("from", args.BlockPos()).
			Then(command.Arg("to", args.BlockPos()).
				Then(command.Arg("block", args.Resource("block", blockNames)).
					Executes(command.HandlerFunc(func(ctx context.Context, s command.Sender, a command.ConsumedArgs) error {
						fromSpec, _ := args.GetBlockPos(a, "from")
						toSpec, _ := args.GetBlockPos(a, "to")
						block, _ := a.String("block")

						base, err := senderBlock(s, fromSpec.Relative() || toSpec.Relative())
						if err != nil {
							return err
						}
						n, err := srv.World().Fill(fromSpec.Resolve(base), toSpec.Resolve(base), block)
						if err != nil {
							return err
						}
						reply(s, "Successfully filled %d block(s)", n)
						return nil
					}))))).
		MustBuild()

	return builtin{tree: tree, node: "forgecraft.fill", level: perm.Two}
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"context"
	"fmt"

	"github.com/jeranaias/forgecraft/internal/command"
	"github.com/jeranaias/forgecraft/internal/command/args"
	"github.com/jeranaias/forgecraft/internal/perm"
	"github.com/jeranaias/forgecraft/internal/server"
	"github.com/jeranaias/forgecraft/internal/world"
)

// knownBlocks feeds block-id suggestions for setblock and fill.
var knownBlocks = []string{
	"minecraft:air",
	"minecraft:bedrock",
	"minecraft:bricks",
	"minecraft:cobblestone",
	"minecraft:diamond_block",
	"minecraft:dirt",
	"minecraft:glass",
	"minecraft:gold_block",
	"minecraft:grass_block",
	"minecraft:gravel",
	"minecraft:iron_block",
	"minecraft:lava",
	"minecraft:oak_log",
	"minecraft:oak_planks",
	"minecraft:obsidian",
	"minecraft:sand",
	"minecraft:stone",
	"minecraft:water",
}

func blockNames() []string { return knownBlocks }

// senderBlock is the block the sender stands in, the base for
// relative block coordinates.
func senderBlock(s command.Sender, relative bool) (world.BlockPos, error) {
	pos, ok := s.Position()
	if !ok && relative {
		return world.BlockPos{}, fmt.Errorf("relative coordinates require a position")
	}
	return pos.Block(), nil
}

func setblockCommand(srv *server.Server) builtin {
	tree := command.NewTree("setblock", "Place a block").
		Then(command.Arg("pos", args.BlockPos()).
			Then(command.Arg("block", args.Resource("block", blockNames)).
				Executes(command.HandlerFunc(func(ctx context.Context, s command.Sender, a command.ConsumedArgs) error {
					spec, _ := args.GetBlockPos(a, "pos")
					block, _ := a.String("block")

					base, err := senderBlock(s, spec.Relative())
					if err != nil {
						return err
					}
					at := spec.Resolve(base)
					srv.World().SetBlock(at, block)
					reply(s, "Changed the block at %d, %d, %d", at.X, at.Y, at.Z)
					return nil
				})))).
		MustBuild()

	return builtin{tree: tree, node: "forgecraft.setblock", level: perm.Two}
}

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

// MaxGiveCount caps one give, matching the vanilla six-stack rule
// for 64-stackable items times the hotbar-and-inventory rows.
const MaxGiveCount = 6400

// knownItems feeds item-id suggestions. Any well-formed id is
// accepted; these are just the common ones worth completing.
var knownItems = []string{
	"minecraft:apple",
	"minecraft:arrow",
	"minecraft:bow",
	"minecraft:bread",
	"minecraft:coal",
	"minecraft:cobblestone",
	"minecraft:diamond",
	"minecraft:diamond_pickaxe",
	"minecraft:diamond_sword",
	"minecraft:dirt",
	"minecraft:emerald",
	"minecraft:ender_pearl",
	"minecraft:glass",
	"minecraft:gold_ingot",
	"minecraft:golden_apple",
	"minecraft:iron_ingot",
	"minecraft:iron_sword",
	"minecraft:oak_log",
	"minecraft:oak_planks",
	"minecraft:obsidian",
	"minecraft:stick",
	"minecraft:stone",
	"minecraft:torch",
	"minecraft:water_bucket",
}

func itemNames() []string { return knownItems }

func giveCommand(srv *server.Server) builtin {
	give := func(s command.Sender, a command.ConsumedArgs, count int) error {
		sel, _ := args.GetSelector(a, "targets")
		item, _ := a.String("item")

		targets, err := srv.ResolvePlayers(sel, s)
		if err != nil {
			return err
		}
		for _, p := range targets {
			p.Give(item, count)
		}
		if len(targets) == 1 {
			reply(s, "Gave %d [%s] to %s", count, item, targets[0].Name())
		} else {
			reply(s, "Gave %d [%s] to %d players", count, item, len(targets))
		}
		return nil
	}

	tree := command.NewTree("give", "Give items to players").
		Then(command.Arg("targets", args.Players(srv.Roster().Names)).
			Then(command.Arg("item", args.Resource("item", itemNames)).
				Executes(command.HandlerFunc(func(ctx context.Context, s command.Sender, a command.ConsumedArgs) error {
					return give(s, a, 1)
				})).
				Then(command.Arg("count", args.Integer().Min(1).Max(MaxGiveCount)).
					Executes(command.HandlerFunc(func(ctx context.Context, s command.Sender, a command.ConsumedArgs) error {
						count, _ := a.Int("count")
						return give(s, a, count)
					}))))).
		MustBuild()

	return builtin{tree: tree, node: "forgecraft.give", level: perm.Two}
}

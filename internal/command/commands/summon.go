// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jeranaias/forgecraft/internal/command"
	"github.com/jeranaias/forgecraft/internal/command/args"
	"github.com/jeranaias/forgecraft/internal/perm"
	"github.com/jeranaias/forgecraft/internal/server"
	"github.com/jeranaias/forgecraft/internal/world"
)

// knownEntityTypes feeds entity-type suggestions for summon.
var knownEntityTypes = []string{
	"minecraft:armor_stand",
	"minecraft:chicken",
	"minecraft:cow",
	"minecraft:creeper",
	"minecraft:enderman",
	"minecraft:horse",
	"minecraft:iron_golem",
	"minecraft:pig",
	"minecraft:sheep",
	"minecraft:skeleton",
	"minecraft:spider",
	"minecraft:villager",
	"minecraft:wolf",
	"minecraft:zombie",
}

func entityTypeNames() []string { return knownEntityTypes }

func summonCommand(srv *server.Server) builtin {
	summon := func(s command.Sender, kind string, at world.Pos) error {
		e := &server.Entity{ID: uuid.New(), Kind: kind, Pos: at}
		srv.Roster().AddEntity(e)
		reply(s, "Summoned new %s", e.DisplayName())
		return nil
	}

	tree := command.NewTree("summon", "Summon an entity").
		Then(command.Arg("entity", args.Resource("entity type", entityTypeNames)).
			Executes(command.HandlerFunc(func(ctx context.Context, s command.Sender, a command.ConsumedArgs) error {
				kind, _ := a.String("entity")
				pos, ok := s.Position()
				if !ok {
					return fmt.Errorf("an entity is required to run this command here")
				}
				return summon(s, kind, pos)
			})).
			Then(command.Arg("pos", args.Vec3()).
				Executes(command.HandlerFunc(func(ctx context.Context, s command.Sender, a command.ConsumedArgs) error {
					kind, _ := a.String("entity")
					spec, _ := args.GetPosition(a, "pos")

					base, ok := s.Position()
					if !ok && spec.Relative() {
						return fmt.Errorf("relative coordinates require a position")
					}
					return summon(s, kind, spec.Resolve(base))
				})))).
		MustBuild()

	return builtin{tree: tree, node: "forgecraft.summon", level: perm.Two}
}

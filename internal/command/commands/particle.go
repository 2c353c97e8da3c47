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
)

// knownParticles feeds particle-name suggestions.
var knownParticles = []string{
	"minecraft:angry_villager",
	"minecraft:cloud",
	"minecraft:crit",
	"minecraft:explosion",
	"minecraft:firework",
	"minecraft:flame",
	"minecraft:happy_villager",
	"minecraft:heart",
	"minecraft:note",
	"minecraft:portal",
	"minecraft:smoke",
	"minecraft:splash",
}

func particleNames() []string { return knownParticles }

func particleCommand(srv *server.Server) builtin {
	tree := command.NewTree("particle", "Display a particle effect").
		Then(command.Arg("name", args.Resource("particle", particleNames)).
			Executes(command.HandlerFunc(func(ctx context.Context, s command.Sender, a command.ConsumedArgs) error {
				name, _ := a.String("name")
				if _, ok := s.Position(); !ok {
					return fmt.Errorf("an entity is required to run this command here")
				}
				reply(s, "Displaying particle %s", name)
				return nil
			})).
			Then(command.Arg("pos", args.Vec3()).
				Executes(command.HandlerFunc(func(ctx context.Context, s command.Sender, a command.ConsumedArgs) error {
					name, _ := a.String("name")
					spec, _ := args.GetPosition(a, "pos")

					if _, ok := s.Position(); !ok && spec.Relative() {
						return fmt.Errorf("relative coordinates require a position")
					}
					reply(s, "Displaying particle %s", name)
					return nil
				})))).
		MustBuild()

	return builtin{tree: tree, node: "forgecraft.particle", level: perm.Two}
}

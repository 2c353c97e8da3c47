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

// knownSounds feeds sound-event suggestions.
var knownSounds = []string{
	"minecraft:ambient.cave",
	"minecraft:block.anvil.land",
	"minecraft:block.bell.use",
	"minecraft:block.note_block.pling",
	"minecraft:entity.ender_dragon.growl",
	"minecraft:entity.experience_orb.pickup",
	"minecraft:entity.lightning_bolt.thunder",
	"minecraft:entity.player.levelup",
	"minecraft:entity.villager.trade",
	"minecraft:music_disc.cat",
}

func soundNames() []string { return knownSounds }

func playsoundCommand(srv *server.Server) builtin {
	play := func(s command.Sender, a command.ConsumedArgs) error {
		sound, _ := a.String("sound")
		sel, _ := args.GetSelector(a, "targets")

		targets, err := srv.ResolvePlayers(sel, s)
		if err != nil {
			return err
		}
		if len(targets) == 1 {
			reply(s, "Played sound '%s' to %s", sound, targets[0].Name())
		} else {
			reply(s, "Played sound '%s' to %d players", sound, len(targets))
		}
		return nil
	}
	handler := command.HandlerFunc(func(ctx context.Context, s command.Sender, a command.ConsumedArgs) error {
		return play(s, a)
	})

	tree := command.NewTree("playsound", "Play a sound to players").
		Then(command.Arg("sound", args.Resource("sound", soundNames)).
			Then(command.Arg("targets", args.Players(srv.Roster().Names)).
				Executes(handler).
				Then(command.Arg("volume", args.Float().Min(0)).
					Executes(handler).
					Then(command.Arg("pitch", args.Float().Min(0).Max(2)).
						Executes(handler))))).
		MustBuild()

	return builtin{tree: tree, node: "forgecraft.playsound", level: perm.Two}
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"context"
	"fmt"

	"github.com/jeranaias/forgecraft/internal/chat"
	"github.com/jeranaias/forgecraft/internal/command"
	"github.com/jeranaias/forgecraft/internal/command/args"
	"github.com/jeranaias/forgecraft/internal/perm"
	"github.com/jeranaias/forgecraft/internal/server"
)

func gamemodeCommand(srv *server.Server) builtin {
	apply := func(s command.Sender, mode server.GameMode, targets []*server.Player) {
		for _, p := range targets {
			if p.SetGameMode(mode) == mode {
				continue
			}
			if p == s {
				reply(s, "Set own game mode to %s", modeTitle(mode))
				continue
			}
			p.SendMessage(chat.Textf("Your game mode has been updated to %s", modeTitle(mode)))
			reply(s, "Set %s's game mode to %s", p.Name(), modeTitle(mode))
		}
	}

	tree := command.NewTree("gamemode", "Change a player's game mode").
		Then(command.Arg("mode", args.Gamemode()).
			Executes(command.HandlerFunc(func(ctx context.Context, s command.Sender, a command.ConsumedArgs) error {
				mode := parsedMode(a)
				p, ok := s.(*server.Player)
				if !ok {
					return fmt.Errorf("an entity is required to run this command here")
				}
				apply(s, mode, []*server.Player{p})
				return nil
			})).
			Then(command.Arg("targets", args.Players(srv.Roster().Names)).
				Executes(command.HandlerFunc(func(ctx context.Context, s command.Sender, a command.ConsumedArgs) error {
					mode := parsedMode(a)
					sel, _ := args.GetSelector(a, "targets")
					targets, err := srv.ResolvePlayers(sel, s)
					if err != nil {
						return err
					}
					apply(s, mode, targets)
					return nil
				})))).
		MustBuild()

	return builtin{tree: tree, node: "forgecraft.gamemode", level: perm.Two}
}

// parsedMode reads the canonical mode name bound by the gamemode
// parser.
func parsedMode(a command.ConsumedArgs) server.GameMode {
	name, _ := a.String("mode")
	mode, _ := server.ParseGameMode(name)
	return mode
}

func modeTitle(m server.GameMode) string {
	switch m {
	case server.Creative:
		return "Creative Mode"
	case server.Adventure:
		return "Adventure Mode"
	case server.Spectator:
		return "Spectator Mode"
	default:
		return "Survival Mode"
	}
}

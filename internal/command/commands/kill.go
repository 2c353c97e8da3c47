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

func killCommand(srv *server.Server) builtin {
	kill := func(s command.Sender, targets []server.Target) {
		for _, t := range targets {
			if t.Player != nil {
				t.Player.Kill()
				srv.Broadcast(chat.Textf("%s died", t.Player.Name()))
			} else {
				srv.Roster().RemoveEntity(t.Entity.ID)
			}
		}
		if len(targets) == 1 {
			reply(s, "Killed %s", targets[0].Name())
		} else {
			reply(s, "Killed %d entities", len(targets))
		}
	}

	tree := command.NewTree("kill", "Remove entities from the world").
		Executes(command.HandlerFunc(func(ctx context.Context, s command.Sender, a command.ConsumedArgs) error {
			p, ok := s.(*server.Player)
			if !ok {
				return fmt.Errorf("an entity is required to run this command here")
			}
			kill(s, []server.Target{{Player: p}})
			return nil
		})).
		Then(command.Arg("targets", args.Entities(srv.Roster().Names)).
			Executes(command.HandlerFunc(func(ctx context.Context, s command.Sender, a command.ConsumedArgs) error {
				sel, _ := args.GetSelector(a, "targets")
				targets, err := srv.ResolveTargets(sel, s)
				if err != nil {
					return err
				}
				kill(s, targets)
				return nil
			}))).
		MustBuild()

	return builtin{tree: tree, node: "forgecraft.kill", level: perm.Two}
}

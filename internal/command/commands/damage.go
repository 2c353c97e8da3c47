// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"context"

	"github.com/jeranaias/forgecraft/internal/chat"
	"github.com/jeranaias/forgecraft/internal/command"
	"github.com/jeranaias/forgecraft/internal/command/args"
	"github.com/jeranaias/forgecraft/internal/perm"
	"github.com/jeranaias/forgecraft/internal/server"
)

func damageCommand(srv *server.Server) builtin {
	tree := command.NewTree("damage", "Apply damage to an entity").
		Then(command.Arg("target", args.Entity(srv.Roster().Names)).
			Then(command.Arg("amount", args.Float().Min(0)).
				Executes(command.HandlerFunc(func(ctx context.Context, s command.Sender, a command.ConsumedArgs) error {
					sel, _ := args.GetSelector(a, "target")
					amount, _ := a.Float("amount")

					targets, err := srv.ResolveTargets(sel, s)
					if err != nil {
						return err
					}
					t := targets[0]
					if t.Player != nil {
						if t.Player.ApplyDamage(amount) {
							srv.Broadcast(chat.Textf("%s died", t.Player.Name()))
						}
					} else if amount > 0 {
						// Plain entities carry no health pool; any hit
						// removes them.
						srv.Roster().RemoveEntity(t.Entity.ID)
					}
					reply(s, "Applied %.1f damage to %s", amount, t.Name())
					return nil
				})))).
		MustBuild()

	return builtin{tree: tree, node: "forgecraft.damage", level: perm.Two}
}

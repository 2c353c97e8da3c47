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

func experienceCommand(srv *server.Server) builtin {
	resolve := func(s command.Sender, a command.ConsumedArgs) ([]*server.Player, error) {
		sel, _ := args.GetSelector(a, "targets")
		return srv.ResolvePlayers(sel, s)
	}

	add := func(levels bool) command.Handler {
		return command.HandlerFunc(func(ctx context.Context, s command.Sender, a command.ConsumedArgs) error {
			targets, err := resolve(s, a)
			if err != nil {
				return err
			}
			amount, _ := a.Int("amount")
			unit := "points"
			for _, p := range targets {
				if levels {
					p.AddXPLevels(amount)
				} else {
					p.AddXPPoints(amount)
				}
			}
			if levels {
				unit = "levels"
			}
			if len(targets) == 1 {
				reply(s, "Gave %d experience %s to %s", amount, unit, targets[0].Name())
			} else {
				reply(s, "Gave %d experience %s to %d players", amount, unit, len(targets))
			}
			return nil
		})
	}

	set := func(levels bool) command.Handler {
		return command.HandlerFunc(func(ctx context.Context, s command.Sender, a command.ConsumedArgs) error {
			targets, err := resolve(s, a)
			if err != nil {
				return err
			}
			amount, _ := a.Int("amount")
			unit := "points"
			for _, p := range targets {
				if levels {
					p.SetXPLevels(amount)
				} else {
					p.SetXPPoints(amount)
				}
			}
			if levels {
				unit = "levels"
			}
			if len(targets) == 1 {
				reply(s, "Set %d experience %s on %s", amount, unit, targets[0].Name())
			} else {
				reply(s, "Set %d experience %s on %d players", amount, unit, len(targets))
			}
			return nil
		})
	}

	query := func(levels bool) command.Handler {
		return command.HandlerFunc(func(ctx context.Context, s command.Sender, a command.ConsumedArgs) error {
			targets, err := resolve(s, a)
			if err != nil {
				return err
			}
			p := targets[0]
			lv, pts := p.XP()
			if levels {
				reply(s, "%s has %d experience levels", p.Name(), lv)
			} else {
				reply(s, "%s has %d experience points", p.Name(), pts)
			}
			return nil
		})
	}

	tree := command.NewTree("experience", "Add, set, or query player experience", "xp").
		Then(
			command.Literal("add").Then(
				command.Arg("targets", args.Players(srv.Roster().Names)).Then(
					command.Arg("amount", args.Integer()).
						Executes(add(false)).
						Then(
							command.Literal("points").Executes(add(false)),
							command.Literal("levels").Executes(add(true))))),
			command.Literal("set").Then(
				command.Arg("targets", args.Players(srv.Roster().Names)).Then(
					command.Arg("amount", args.Integer().Min(0)).
						Executes(set(false)).
						Then(
							command.Literal("points").Executes(set(false)),
							command.Literal("levels").Executes(set(true))))),
			command.Literal("query").Then(
				command.Arg("targets", args.Entity(srv.Roster().Names)).Then(
					command.Literal("points").Executes(query(false)),
					command.Literal("levels").Executes(query(true))))).
		MustBuild()

	return builtin{tree: tree, node: "forgecraft.experience", level: perm.Two}
}

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

func clearCommand(srv *server.Server) builtin {
	clear := func(s command.Sender, targets []*server.Player, item string) error {
		total := 0
		for _, p := range targets {
			if item == "" {
				total += p.Clear()
			} else {
				total += p.ClearItem(item)
			}
		}
		switch {
		case total == 0 && len(targets) == 1:
			return fmt.Errorf("no items were found on player %s", targets[0].Name())
		case total == 0:
			return fmt.Errorf("no items were found on %d players", len(targets))
		case len(targets) == 1:
			reply(s, "Removed %d item(s) from player %s", total, targets[0].Name())
		default:
			reply(s, "Removed %d item(s) from %d players", total, len(targets))
		}
		return nil
	}

	resolve := func(s command.Sender, a command.ConsumedArgs) ([]*server.Player, error) {
		sel, _ := args.GetSelector(a, "targets")
		return srv.ResolvePlayers(sel, s)
	}

	tree := command.NewTree("clear", "Remove items from player inventories").
		Executes(command.HandlerFunc(func(ctx context.Context, s command.Sender, a command.ConsumedArgs) error {
			p, ok := s.(*server.Player)
			if !ok {
				return fmt.Errorf("an entity is required to run this command here")
			}
			return clear(s, []*server.Player{p}, "")
		})).
		Then(command.Arg("targets", args.Players(srv.Roster().Names)).
			Executes(command.HandlerFunc(func(ctx context.Context, s command.Sender, a command.ConsumedArgs) error {
				targets, err := resolve(s, a)
				if err != nil {
					return err
				}
				return clear(s, targets, "")
			})).
			Then(command.Arg("item", args.Resource("item", itemNames)).
				Executes(command.HandlerFunc(func(ctx context.Context, s command.Sender, a command.ConsumedArgs) error {
					targets, err := resolve(s, a)
					if err != nil {
						return err
					}
					item, _ := a.String("item")
					return clear(s, targets, item)
				})))).
		MustBuild()

	return builtin{tree: tree, node: "forgecraft.clear", level: perm.Two}
}

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

func titleCommand(srv *server.Server) builtin {
	resolve := func(s command.Sender, a command.ConsumedArgs) ([]*server.Player, error) {
		sel, _ := args.GetSelector(a, "targets")
		return srv.ResolvePlayers(sel, s)
	}

	// show builds the leaf for one display slot.
	show := func(slot string, style func(string) *chat.Message) *command.NodeBuilder {
		return command.Literal(slot).Then(
			command.Arg("title", args.Message()).
				Executes(command.HandlerFunc(func(ctx context.Context, s command.Sender, a command.ConsumedArgs) error {
					targets, err := resolve(s, a)
					if err != nil {
						return err
					}
					text, _ := a.String("title")
					for _, p := range targets {
						p.SendMessage(style(text))
					}
					if len(targets) == 1 {
						reply(s, "Showed new %s for %s", slot, targets[0].Name())
					} else {
						reply(s, "Showed new %s for %d players", slot, len(targets))
					}
					return nil
				})))
	}

	tree := command.NewTree("title", "Show a title to players").
		Then(command.Arg("targets", args.Players(srv.Roster().Names)).Then(
			show("title", func(t string) *chat.Message {
				return chat.Text(t).Color(chat.Gold).Bold()
			}),
			show("subtitle", func(t string) *chat.Message {
				return chat.Text(t).Color(chat.Yellow)
			}),
			show("actionbar", func(t string) *chat.Message {
				return chat.Text(t).Italic()
			}),
			command.Literal("clear").
				Executes(command.HandlerFunc(func(ctx context.Context, s command.Sender, a command.ConsumedArgs) error {
					targets, err := resolve(s, a)
					if err != nil {
						return err
					}
					if len(targets) == 1 {
						reply(s, "Cleared titles for %s", targets[0].Name())
					} else {
						reply(s, "Cleared titles for %d players", len(targets))
					}
					return nil
				})))).
		MustBuild()

	return builtin{tree: tree, node: "forgecraft.title", level: perm.Two}
}

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

func msgCommand(srv *server.Server) builtin {
	tree := command.NewTree("msg", "Whisper to a player", "tell", "w").
		Then(command.Arg("targets", args.Players(srv.Roster().Names)).
			Then(command.Arg("message", args.Message()).
				Executes(command.HandlerFunc(func(ctx context.Context, s command.Sender, a command.ConsumedArgs) error {
					sel, _ := args.GetSelector(a, "targets")
					text, _ := a.String("message")

					targets, err := srv.ResolvePlayers(sel, s)
					if err != nil {
						return err
					}
					for _, p := range targets {
						p.SendMessage(chat.Textf("%s whispers to you: %s", s.Name(), text).
							Color(chat.Gray).Italic())
						s.SendMessage(chat.Textf("You whisper to %s: %s", p.Name(), text).
							Color(chat.Gray).Italic())
					}
					return nil
				})))).
		MustBuild()

	return builtin{tree: tree, node: "forgecraft.msg", level: perm.Zero}
}

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

// DefaultKickReason is used when kick is given no reason.
const DefaultKickReason = "Kicked by an operator"

func kickCommand(srv *server.Server) builtin {
	kick := func(s command.Sender, a command.ConsumedArgs, reason string) error {
		sel, _ := args.GetSelector(a, "targets")
		targets, err := srv.ResolvePlayers(sel, s)
		if err != nil {
			return err
		}
		for _, p := range targets {
			p.SendMessage(chat.Textf("You have been kicked: %s", reason).Color(chat.Red))
			srv.Leave(p.UUID())
			reply(s, "Kicked %s: %s", p.Name(), reason)
		}
		return nil
	}

	tree := command.NewTree("kick", "Disconnect a player").
		Then(command.Arg("targets", args.Players(srv.Roster().Names)).
			Executes(command.HandlerFunc(func(ctx context.Context, s command.Sender, a command.ConsumedArgs) error {
				return kick(s, a, DefaultKickReason)
			})).
			Then(command.Arg("reason", args.Message()).
				Executes(command.HandlerFunc(func(ctx context.Context, s command.Sender, a command.ConsumedArgs) error {
					reason, _ := a.String("reason")
					return kick(s, a, reason)
				})))).
		MustBuild()

	return builtin{tree: tree, node: "forgecraft.kick", level: perm.Three}
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"context"

	"github.com/jeranaias/forgecraft/internal/chat"
	"github.com/jeranaias/forgecraft/internal/command"
	"github.com/jeranaias/forgecraft/internal/perm"
	"github.com/jeranaias/forgecraft/internal/server"
)

func banlistCommand(srv *server.Server) builtin {
	players := func(s command.Sender) (int, *chat.Message, error) {
		bans, err := srv.Store().Bans()
		if err != nil {
			return 0, nil, err
		}
		msg := chat.Empty()
		for _, b := range bans {
			msg.Append(chat.Textf("\n%s was banned by %s: %s", b.Name, b.Source, b.Reason))
		}
		return len(bans), msg, nil
	}
	ips := func(s command.Sender) (int, *chat.Message, error) {
		bans, err := srv.Store().IPBans()
		if err != nil {
			return 0, nil, err
		}
		msg := chat.Empty()
		for _, b := range bans {
			msg.Append(chat.Textf("\nIP %s was banned by %s: %s", b.IP, b.Source, b.Reason))
		}
		return len(bans), msg, nil
	}

	send := func(s command.Sender, n int, body *chat.Message) {
		if n == 0 {
			reply(s, "There are no bans")
			return
		}
		s.SendMessage(chat.Textf("There are %d ban(s):", n).Append(body))
	}

	tree := command.NewTree("banlist", "List bans").
		Executes(command.HandlerFunc(func(ctx context.Context, s command.Sender, a command.ConsumedArgs) error {
			np, bodyP, err := players(s)
			if err != nil {
				return err
			}
			ni, bodyI, err := ips(s)
			if err != nil {
				return err
			}
			send(s, np+ni, bodyP.Append(bodyI))
			return nil
		})).
		Then(
			command.Literal("players").
				Executes(command.HandlerFunc(func(ctx context.Context, s command.Sender, a command.ConsumedArgs) error {
					n, body, err := players(s)
					if err != nil {
						return err
					}
					send(s, n, body)
					return nil
				})),
			command.Literal("ips").
				Executes(command.HandlerFunc(func(ctx context.Context, s command.Sender, a command.ConsumedArgs) error {
					n, body, err := ips(s)
					if err != nil {
						return err
					}
					send(s, n, body)
					return nil
				}))).
		MustBuild()

	return builtin{tree: tree, node: "forgecraft.banlist", level: perm.Three}
}

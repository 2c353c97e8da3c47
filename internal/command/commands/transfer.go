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

// DefaultGamePort is the port transfer assumes when none is given.
const DefaultGamePort = 25565

func transferCommand(srv *server.Server) builtin {
	transfer := func(s command.Sender, a command.ConsumedArgs, port int, targets []*server.Player) error {
		host, _ := a.String("hostname")
		for _, p := range targets {
			p.SendMessage(chat.Textf("You are being transferred to %s:%d", host, port).Color(chat.Yellow))
			srv.Leave(p.UUID())
		}
		if len(targets) == 1 {
			reply(s, "Transferring %s to %s:%d", targets[0].Name(), host, port)
		} else {
			reply(s, "Transferring %d players to %s:%d", len(targets), host, port)
		}
		return nil
	}

	selfOnly := func(s command.Sender) ([]*server.Player, error) {
		p, ok := s.(*server.Player)
		if !ok {
			return nil, fmt.Errorf("an entity is required to run this command here")
		}
		return []*server.Player{p}, nil
	}

	tree := command.NewTree("transfer", "Transfer players to another server").
		Then(command.Arg("hostname", args.Word()).
			Executes(command.HandlerFunc(func(ctx context.Context, s command.Sender, a command.ConsumedArgs) error {
				targets, err := selfOnly(s)
				if err != nil {
					return err
				}
				return transfer(s, a, DefaultGamePort, targets)
			})).
			Then(command.Arg("port", args.Integer().Min(1).Max(65535)).
				Executes(command.HandlerFunc(func(ctx context.Context, s command.Sender, a command.ConsumedArgs) error {
					targets, err := selfOnly(s)
					if err != nil {
						return err
					}
					port, _ := a.Int("port")
					return transfer(s, a, port, targets)
				})).
				Then(command.Arg("targets", args.Players(srv.Roster().Names)).
					Executes(command.HandlerFunc(func(ctx context.Context, s command.Sender, a command.ConsumedArgs) error {
						sel, _ := args.GetSelector(a, "targets")
						targets, err := srv.ResolvePlayers(sel, s)
						if err != nil {
							return err
						}
						port, _ := a.Int("port")
						return transfer(s, a, port, targets)
					}))))).
		MustBuild()

	return builtin{tree: tree, node: "forgecraft.transfer", level: perm.Two}
}

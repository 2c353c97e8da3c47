// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"context"
	"strings"

	"github.com/jeranaias/forgecraft/internal/command"
	"github.com/jeranaias/forgecraft/internal/perm"
	"github.com/jeranaias/forgecraft/internal/server"
)

func listCommand(srv *server.Server) builtin {
	list := func(s command.Sender, uuids bool) {
		players := srv.Roster().Players()
		names := make([]string, len(players))
		for i, p := range players {
			if uuids {
				names[i] = p.Name() + " (" + p.UUID().String() + ")"
			} else {
				names[i] = p.Name()
			}
		}
		reply(s, "There are %d of a max of %d players online: %s",
			len(players), srv.Config().Server.MaxPlayers, strings.Join(names, ", "))
	}

	tree := command.NewTree("list", "List online players").
		Executes(command.HandlerFunc(func(ctx context.Context, s command.Sender, a command.ConsumedArgs) error {
			list(s, false)
			return nil
		})).
		Then(command.Literal("uuids").
			Executes(command.HandlerFunc(func(ctx context.Context, s command.Sender, a command.ConsumedArgs) error {
				list(s, true)
				return nil
			}))).
		MustBuild()

	return builtin{tree: tree, node: "forgecraft.list", level: perm.Zero}
}

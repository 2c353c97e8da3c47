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

func seedCommand(srv *server.Server) builtin {
	tree := command.NewTree("seed", "Show the world seed").
		Executes(command.HandlerFunc(func(ctx context.Context, s command.Sender, a command.ConsumedArgs) error {
			s.SendMessage(chat.Text("Seed: ").
				Append(chat.Textf("[%d]", srv.World().Seed()).Color(chat.Green)))
			return nil
		})).
		MustBuild()

	return builtin{tree: tree, node: "forgecraft.seed", level: perm.Two}
}

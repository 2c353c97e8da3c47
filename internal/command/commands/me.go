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

func meCommand(srv *server.Server) builtin {
	tree := command.NewTree("me", "Broadcast a third-person action").
		Then(command.Arg("action", args.Message()).
			Executes(command.HandlerFunc(func(ctx context.Context, s command.Sender, a command.ConsumedArgs) error {
				action, _ := a.String("action")
				srv.Broadcast(chat.Textf("* %s %s", s.Name(), action))
				return nil
			}))).
		MustBuild()

	return builtin{tree: tree, node: "forgecraft.me", level: perm.Zero}
}

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

func sayCommand(srv *server.Server) builtin {
	tree := command.NewTree("say", "Broadcast a message").
		Then(command.Arg("message", args.Message()).
			Executes(command.HandlerFunc(func(ctx context.Context, s command.Sender, a command.ConsumedArgs) error {
				text, _ := a.String("message")
				srv.Broadcast(chat.Textf("[%s] %s", s.Name(), text))
				return nil
			}))).
		MustBuild()

	return builtin{tree: tree, node: "forgecraft.say", level: perm.Two}
}

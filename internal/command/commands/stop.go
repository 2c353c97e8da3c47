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

func stopCommand(srv *server.Server) builtin {
	tree := command.NewTree("stop", "Stop the server").
		Executes(command.HandlerFunc(func(ctx context.Context, s command.Sender, a command.ConsumedArgs) error {
			srv.Broadcast(chat.Text("Stopping the server").Color(chat.Red))
			srv.Stop()
			return nil
		})).
		MustBuild()

	return builtin{tree: tree, node: "forgecraft.stop", level: perm.Four}
}

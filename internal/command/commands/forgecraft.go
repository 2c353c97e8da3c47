// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"context"
	"time"

	"github.com/jeranaias/forgecraft/internal/chat"
	"github.com/jeranaias/forgecraft/internal/command"
	"github.com/jeranaias/forgecraft/internal/perm"
	"github.com/jeranaias/forgecraft/internal/server"
)

func forgecraftCommand(srv *server.Server) builtin {
	tree := command.NewTree("forgecraft", "Show server version and status", "version").
		Executes(command.HandlerFunc(func(ctx context.Context, s command.Sender, a command.ConsumedArgs) error {
			w := srv.World()
			s.SendMessage(chat.Textf("forgecraft %s", server.Version).Color(chat.Gold).
				Append(chat.Textf("\n%s", srv.Config().Server.Motd).Color(chat.Gray)).
				Append(chat.Textf("\nLevel %q (seed %d), day %d", w.Name(), w.Seed(), w.Day())).
				Append(chat.Textf("\nUp %s, %d player(s) online",
					srv.Uptime().Round(time.Second), srv.Roster().Count())))
			return nil
		})).
		MustBuild()

	return builtin{tree: tree, node: "forgecraft.version", level: perm.Zero}
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"context"
	"fmt"

	"github.com/jeranaias/forgecraft/internal/command"
	"github.com/jeranaias/forgecraft/internal/command/args"
	"github.com/jeranaias/forgecraft/internal/perm"
	"github.com/jeranaias/forgecraft/internal/server"
)

func pardonCommand(srv *server.Server) builtin {
	tree := command.NewTree("pardon", "Lift a player ban").
		Then(command.Arg("target", args.Word()).
			Executes(command.HandlerFunc(func(ctx context.Context, s command.Sender, a command.ConsumedArgs) error {
				name, _ := a.String("target")
				removed, err := srv.Store().RemoveBan(name)
				if err != nil {
					return err
				}
				if !removed {
					return fmt.Errorf("nothing changed. The player isn't banned")
				}
				reply(s, "Unbanned %s", name)
				return nil
			}))).
		MustBuild()

	return builtin{tree: tree, node: "forgecraft.pardon", level: perm.Three}
}

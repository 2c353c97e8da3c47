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

func deopCommand(srv *server.Server) builtin {
	tree := command.NewTree("deop", "Revoke operator status").
		Then(command.Arg("targets", args.Players(srv.Roster().Names)).
			Executes(command.HandlerFunc(func(ctx context.Context, s command.Sender, a command.ConsumedArgs) error {
				sel, _ := args.GetSelector(a, "targets")
				profiles, err := profileTargets(srv, sel, s)
				if err != nil {
					return err
				}

				changed := 0
				for _, pr := range profiles {
					removed, err := srv.Store().RemoveOp(pr.id)
					if err != nil {
						return err
					}
					if !removed {
						continue
					}
					if p, online := srv.Roster().ByUUID(pr.id); online {
						p.SetLevel(perm.Zero)
					}
					reply(s, "Made %s no longer a server operator", pr.name)
					changed++
				}
				if changed == 0 {
					return fmt.Errorf("nothing changed. The player is not an operator")
				}
				return nil
			}))).
		MustBuild()

	return builtin{tree: tree, node: "forgecraft.deop", level: perm.Three}
}

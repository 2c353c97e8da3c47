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
	"github.com/jeranaias/forgecraft/internal/store"
)

// OpLevel is the level granted by op, the vanilla default.
const OpLevel = perm.Four

func opCommand(srv *server.Server) builtin {
	tree := command.NewTree("op", "Grant operator status").
		Then(command.Arg("targets", args.Players(srv.Roster().Names)).
			Executes(command.HandlerFunc(func(ctx context.Context, s command.Sender, a command.ConsumedArgs) error {
				sel, _ := args.GetSelector(a, "targets")
				profiles, err := profileTargets(srv, sel, s)
				if err != nil {
					return err
				}

				changed := 0
				for _, pr := range profiles {
					if _, already, err := srv.Store().OpLevel(pr.id); err != nil {
						return err
					} else if already {
						continue
					}
					err := srv.Store().SetOp(store.OpEntry{UUID: pr.id, Name: pr.name, Level: OpLevel})
					if err != nil {
						return err
					}
					if p, online := srv.Roster().ByUUID(pr.id); online {
						p.SetLevel(OpLevel)
					}
					reply(s, "Made %s a server operator", pr.name)
					changed++
				}
				if changed == 0 {
					return fmt.Errorf("nothing changed. The player already is an operator")
				}
				return nil
			}))).
		MustBuild()

	return builtin{tree: tree, node: "forgecraft.op", level: perm.Three}
}

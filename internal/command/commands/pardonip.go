// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"context"
	"fmt"
	"net"

	"github.com/jeranaias/forgecraft/internal/command"
	"github.com/jeranaias/forgecraft/internal/command/args"
	"github.com/jeranaias/forgecraft/internal/perm"
	"github.com/jeranaias/forgecraft/internal/server"
)

func pardonIPCommand(srv *server.Server) builtin {
	tree := command.NewTree("pardon-ip", "Lift an IP ban").
		Then(command.Arg("target", args.Word()).
			Executes(command.HandlerFunc(func(ctx context.Context, s command.Sender, a command.ConsumedArgs) error {
				target, _ := a.String("target")
				ip := net.ParseIP(target)
				if ip == nil {
					return fmt.Errorf("invalid IP address")
				}
				removed, err := srv.Store().RemoveIPBan(ip.String())
				if err != nil {
					return err
				}
				if !removed {
					return fmt.Errorf("nothing changed. That IP isn't banned")
				}
				reply(s, "Unbanned IP %s", ip)
				return nil
			}))).
		MustBuild()

	return builtin{tree: tree, node: "forgecraft.pardon-ip", level: perm.Three}
}

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
	"github.com/jeranaias/forgecraft/internal/store"
)

func banIPCommand(srv *server.Server) builtin {
	ban := func(s command.Sender, a command.ConsumedArgs, reason string) error {
		target, _ := a.String("target")
		ip := net.ParseIP(target)
		if ip == nil {
			return fmt.Errorf("invalid IP address")
		}

		if _, already, err := srv.Store().IPBanned(ip.String()); err != nil {
			return err
		} else if already {
			return fmt.Errorf("nothing changed. That IP is already banned")
		}
		err := srv.Store().AddIPBan(store.IPBanEntry{
			IP:     ip.String(),
			Reason: reason,
			Source: s.Name(),
		})
		if err != nil {
			return err
		}
		reply(s, "Banned IP %s: %s", ip, reason)
		return nil
	}

	tree := command.NewTree("ban-ip", "Ban an IP address").
		Then(command.Arg("target", args.Word()).
			Executes(command.HandlerFunc(func(ctx context.Context, s command.Sender, a command.ConsumedArgs) error {
				return ban(s, a, DefaultBanReason)
			})).
			Then(command.Arg("reason", args.Message()).
				Executes(command.HandlerFunc(func(ctx context.Context, s command.Sender, a command.ConsumedArgs) error {
					reason, _ := a.String("reason")
					return ban(s, a, reason)
				})))).
		MustBuild()

	return builtin{tree: tree, node: "forgecraft.ban-ip", level: perm.Three}
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/jeranaias/forgecraft/internal/command"
	"github.com/jeranaias/forgecraft/internal/command/args"
	"github.com/jeranaias/forgecraft/internal/perm"
	"github.com/jeranaias/forgecraft/internal/server"
	"github.com/jeranaias/forgecraft/internal/store"
)

func whitelistCommand(srv *server.Server) builtin {
	tree := command.NewTree("whitelist", "Manage the whitelist").
		Then(
			command.Literal("add").Then(
				command.Arg("targets", args.Players(srv.Roster().Names)).
					Executes(command.HandlerFunc(func(ctx context.Context, s command.Sender, a command.ConsumedArgs) error {
						sel, _ := args.GetSelector(a, "targets")
						profiles, err := profileTargets(srv, sel, s)
						if err != nil {
							return err
						}
						changed := 0
						for _, pr := range profiles {
							listed, err := srv.Store().Whitelisted(pr.name)
							if err != nil {
								return err
							}
							if listed {
								continue
							}
							err = srv.Store().AddWhitelist(store.WhitelistEntry{UUID: pr.id, Name: pr.name})
							if err != nil {
								return err
							}
							reply(s, "Added %s to the whitelist", pr.name)
							changed++
						}
						if changed == 0 {
							return fmt.Errorf("player is already whitelisted")
						}
						return nil
					}))),
			command.Literal("remove").Then(
				command.Arg("target", args.Word()).
					Executes(command.HandlerFunc(func(ctx context.Context, s command.Sender, a command.ConsumedArgs) error {
						name, _ := a.String("target")
						removed, err := srv.Store().RemoveWhitelist(name)
						if err != nil {
							return err
						}
						if !removed {
							return fmt.Errorf("player is not whitelisted")
						}
						reply(s, "Removed %s from the whitelist", name)
						return nil
					}))),
			command.Literal("list").
				Executes(command.HandlerFunc(func(ctx context.Context, s command.Sender, a command.ConsumedArgs) error {
					entries, err := srv.Store().Whitelist()
					if err != nil {
						return err
					}
					if len(entries) == 0 {
						reply(s, "There are no whitelisted players")
						return nil
					}
					names := make([]string, len(entries))
					for i, e := range entries {
						names[i] = e.Name
					}
					reply(s, "There are %d whitelisted player(s): %s", len(names), strings.Join(names, ", "))
					return nil
				})),
			command.Literal("on").
				Executes(command.HandlerFunc(func(ctx context.Context, s command.Sender, a command.ConsumedArgs) error {
					srv.Config().Server.Whitelist = true
					reply(s, "Whitelist is now turned on")
					return nil
				})),
			command.Literal("off").
				Executes(command.HandlerFunc(func(ctx context.Context, s command.Sender, a command.ConsumedArgs) error {
					srv.Config().Server.Whitelist = false
					reply(s, "Whitelist is now turned off")
					return nil
				}))).
		MustBuild()

	return builtin{tree: tree, node: "forgecraft.whitelist", level: perm.Three}
}

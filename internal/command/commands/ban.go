// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"context"
	"fmt"

	"github.com/jeranaias/forgecraft/internal/chat"
	"github.com/jeranaias/forgecraft/internal/command"
	"github.com/jeranaias/forgecraft/internal/command/args"
	"github.com/jeranaias/forgecraft/internal/perm"
	"github.com/jeranaias/forgecraft/internal/server"
	"github.com/jeranaias/forgecraft/internal/store"
)

// DefaultBanReason is used when ban is given no reason.
const DefaultBanReason = "Banned by an operator"

func banCommand(srv *server.Server) builtin {
	ban := func(s command.Sender, a command.ConsumedArgs, reason string) error {
		sel, _ := args.GetSelector(a, "targets")
		profiles, err := profileTargets(srv, sel, s)
		if err != nil {
			return err
		}

		changed := 0
		for _, pr := range profiles {
			if _, already, err := srv.Store().BanByName(pr.name); err != nil {
				return err
			} else if already {
				continue
			}
			err := srv.Store().AddBan(store.BanEntry{
				UUID:   pr.id,
				Name:   pr.name,
				Reason: reason,
				Source: s.Name(),
			})
			if err != nil {
				return err
			}
			if p, online := srv.Roster().ByUUID(pr.id); online {
				p.SendMessage(chat.Textf("You have been banned: %s", reason).Color(chat.Red))
				srv.Leave(p.UUID())
			}
			reply(s, "Banned %s: %s", pr.name, reason)
			changed++
		}
		if changed == 0 {
			return fmt.Errorf("nothing changed. The player is already banned")
		}
		return nil
	}

	tree := command.NewTree("ban", "Ban a player").
		Then(command.Arg("targets", args.Players(srv.Roster().Names)).
			Executes(command.HandlerFunc(func(ctx context.Context, s command.Sender, a command.ConsumedArgs) error {
				return ban(s, a, DefaultBanReason)
			})).
			Then(command.Arg("reason", args.Message()).
				Executes(command.HandlerFunc(func(ctx context.Context, s command.Sender, a command.ConsumedArgs) error {
					reason, _ := a.String("reason")
					return ban(s, a, reason)
				})))).
		MustBuild()

	return builtin{tree: tree, node: "forgecraft.ban", level: perm.Three}
}

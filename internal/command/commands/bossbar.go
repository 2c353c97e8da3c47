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
)

func bossbarCommand(srv *server.Server) builtin {
	idArg := func() *command.NodeBuilder {
		return command.Arg("id", args.Resource("bossbar", srv.BossBarIDs))
	}
	bar := func(a command.ConsumedArgs) (*server.BossBar, error) {
		id, _ := a.String("id")
		b, ok := srv.BossBar(id)
		if !ok {
			return nil, fmt.Errorf("no bossbar exists with the id %q", id)
		}
		return b, nil
	}

	tree := command.NewTree("bossbar", "Manage custom boss bars").
		Then(
			command.Literal("add").Then(
				idArg().Then(
					command.Arg("name", args.Message()).
						Executes(command.HandlerFunc(func(ctx context.Context, s command.Sender, a command.ConsumedArgs) error {
							id, _ := a.String("id")
							name, _ := a.String("name")
							b, err := srv.AddBossBar(id, name)
							if err != nil {
								return err
							}
							reply(s, "Created custom bossbar [%s]", b.Name())
							return nil
						})))),
			command.Literal("remove").Then(
				idArg().
					Executes(command.HandlerFunc(func(ctx context.Context, s command.Sender, a command.ConsumedArgs) error {
						b, err := bar(a)
						if err != nil {
							return err
						}
						srv.RemoveBossBar(b.ID())
						reply(s, "Removed custom bossbar [%s]", b.Name())
						return nil
					}))),
			command.Literal("list").
				Executes(command.HandlerFunc(func(ctx context.Context, s command.Sender, a command.ConsumedArgs) error {
					bars := srv.BossBars()
					if len(bars) == 0 {
						reply(s, "There are no custom bossbars active")
						return nil
					}
					names := make([]string, len(bars))
					for i, b := range bars {
						names[i] = "[" + b.Name() + "]"
					}
					reply(s, "There are %d custom bossbar(s) active: %s", len(bars), strings.Join(names, ", "))
					return nil
				})),
			command.Literal("get").Then(
				idArg().Then(
					command.Literal("value").
						Executes(command.HandlerFunc(func(ctx context.Context, s command.Sender, a command.ConsumedArgs) error {
							b, err := bar(a)
							if err != nil {
								return err
							}
							reply(s, "Custom bossbar [%s] has a value of %d", b.Name(), b.Value())
							return nil
						})),
					command.Literal("max").
						Executes(command.HandlerFunc(func(ctx context.Context, s command.Sender, a command.ConsumedArgs) error {
							b, err := bar(a)
							if err != nil {
								return err
							}
							reply(s, "Custom bossbar [%s] has a maximum of %d", b.Name(), b.Max())
							return nil
						})),
					command.Literal("visible").
						Executes(command.HandlerFunc(func(ctx context.Context, s command.Sender, a command.ConsumedArgs) error {
							b, err := bar(a)
							if err != nil {
								return err
							}
							if b.Visible() {
								reply(s, "Custom bossbar [%s] is currently shown", b.Name())
							} else {
								reply(s, "Custom bossbar [%s] is currently hidden", b.Name())
							}
							return nil
						})))),
			command.Literal("set").Then(
				idArg().Then(
					command.Literal("name").Then(
						command.Arg("name", args.Message()).
							Executes(command.HandlerFunc(func(ctx context.Context, s command.Sender, a command.ConsumedArgs) error {
								b, err := bar(a)
								if err != nil {
									return err
								}
								name, _ := a.String("name")
								b.SetName(name)
								reply(s, "Custom bossbar [%s] has been renamed", b.Name())
								return nil
							}))),
					command.Literal("color").Then(
						command.Arg("color", args.Enum(server.BossBarColors...)).
							Executes(command.HandlerFunc(func(ctx context.Context, s command.Sender, a command.ConsumedArgs) error {
								b, err := bar(a)
								if err != nil {
									return err
								}
								name, _ := a.String("color")
								c, _ := server.ParseBossBarColor(name)
								b.SetColor(c)
								reply(s, "Custom bossbar [%s] has changed color", b.Name())
								return nil
							}))),
					command.Literal("style").Then(
						command.Arg("style", args.Enum(server.BossBarStyles...)).
							Executes(command.HandlerFunc(func(ctx context.Context, s command.Sender, a command.ConsumedArgs) error {
								b, err := bar(a)
								if err != nil {
									return err
								}
								name, _ := a.String("style")
								st, _ := server.ParseBossBarStyle(name)
								b.SetStyle(st)
								reply(s, "Custom bossbar [%s] has changed style", b.Name())
								return nil
							}))),
					command.Literal("value").Then(
						command.Arg("value", args.Integer().Min(0)).
							Executes(command.HandlerFunc(func(ctx context.Context, s command.Sender, a command.ConsumedArgs) error {
								b, err := bar(a)
								if err != nil {
									return err
								}
								v, _ := a.Int("value")
								b.SetValue(v)
								reply(s, "Changed custom bossbar [%s] value to %d", b.Name(), b.Value())
								return nil
							}))),
					command.Literal("max").Then(
						command.Arg("max", args.Integer().Min(1)).
							Executes(command.HandlerFunc(func(ctx context.Context, s command.Sender, a command.ConsumedArgs) error {
								b, err := bar(a)
								if err != nil {
									return err
								}
								m, _ := a.Int("max")
								b.SetMax(m)
								reply(s, "Changed custom bossbar [%s] maximum to %d", b.Name(), b.Max())
								return nil
							}))),
					command.Literal("visible").Then(
						command.Arg("visible", args.Enum("true", "false")).
							Executes(command.HandlerFunc(func(ctx context.Context, s command.Sender, a command.ConsumedArgs) error {
								b, err := bar(a)
								if err != nil {
									return err
								}
								v, _ := a.String("visible")
								b.SetVisible(v == "true")
								if b.Visible() {
									reply(s, "Custom bossbar [%s] is now visible", b.Name())
								} else {
									reply(s, "Custom bossbar [%s] is now hidden", b.Name())
								}
								return nil
							})))))).
		MustBuild()

	return builtin{tree: tree, node: "forgecraft.bossbar", level: perm.Two}
}

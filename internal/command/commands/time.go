// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"context"

	"github.com/jeranaias/forgecraft/internal/command"
	"github.com/jeranaias/forgecraft/internal/command/args"
	"github.com/jeranaias/forgecraft/internal/perm"
	"github.com/jeranaias/forgecraft/internal/server"
	"github.com/jeranaias/forgecraft/internal/world"
)

func timeCommand(srv *server.Server) builtin {
	set := func(t int64) command.Handler {
		return command.HandlerFunc(func(ctx context.Context, s command.Sender, a command.ConsumedArgs) error {
			srv.World().SetDayTime(t)
			reply(s, "Set the time to %d", t)
			return nil
		})
	}
	query := func(get func() int64) command.Handler {
		return command.HandlerFunc(func(ctx context.Context, s command.Sender, a command.ConsumedArgs) error {
			reply(s, "The time is %d", get())
			return nil
		})
	}

	w := srv.World()
	tree := command.NewTree("time", "Change or query the world time").
		Then(
			command.Literal("set").Then(
				command.Literal("day").Executes(set(world.TimeDay)),
				command.Literal("noon").Executes(set(world.TimeNoon)),
				command.Literal("night").Executes(set(world.TimeNight)),
				command.Literal("midnight").Executes(set(world.TimeMidnight)),
				command.Arg("time", args.Duration()).
					Executes(command.HandlerFunc(func(ctx context.Context, s command.Sender, a command.ConsumedArgs) error {
						ticks, _ := args.GetTicks(a, "time")
						w.SetDayTime(ticks)
						reply(s, "Set the time to %d", w.DayTime())
						return nil
					}))),
			command.Literal("add").Then(
				command.Arg("time", args.Duration()).
					Executes(command.HandlerFunc(func(ctx context.Context, s command.Sender, a command.ConsumedArgs) error {
						ticks, _ := args.GetTicks(a, "time")
						w.AddTime(ticks)
						reply(s, "Set the time to %d", w.DayTime())
						return nil
					}))),
			command.Literal("query").Then(
				command.Literal("daytime").Executes(query(w.DayTime)),
				command.Literal("gametime").Executes(query(w.Time)),
				command.Literal("day").Executes(query(w.Day)))).
		MustBuild()

	return builtin{tree: tree, node: "forgecraft.time", level: perm.Two}
}

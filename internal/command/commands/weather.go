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

func weatherCommand(srv *server.Server) builtin {
	kind := func(w world.Weather, feedback string) *command.NodeBuilder {
		return command.Literal(w.String()).
			Executes(command.HandlerFunc(func(ctx context.Context, s command.Sender, a command.ConsumedArgs) error {
				srv.World().SetWeather(w, 0)
				reply(s, "%s", feedback)
				return nil
			})).
			Then(command.Arg("duration", args.Duration()).
				Executes(command.HandlerFunc(func(ctx context.Context, s command.Sender, a command.ConsumedArgs) error {
					ticks, _ := args.GetTicks(a, "duration")
					srv.World().SetWeather(w, ticks)
					reply(s, "%s", feedback)
					return nil
				})))
	}

	tree := command.NewTree("weather", "Change the weather").
		Then(
			kind(world.Clear, "Set the weather to clear"),
			kind(world.Rain, "Set the weather to rain"),
			kind(world.Thunder, "Set the weather to rain & thunder")).
		MustBuild()

	return builtin{tree: tree, node: "forgecraft.weather", level: perm.Two}
}

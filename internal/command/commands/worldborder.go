// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"context"

	"github.com/jeranaias/forgecraft/internal/command"
	"github.com/jeranaias/forgecraft/internal/command/args"
	"github.com/jeranaias/forgecraft/internal/perm"
	"github.com/jeranaias/forgecraft/internal/server"
)

func worldborderCommand(srv *server.Server) builtin {
	w := srv.World()

	tree := command.NewTree("worldborder", "Manage the world border").
		Then(
			command.Literal("get").
				Executes(command.HandlerFunc(func(ctx context.Context, s command.Sender, a command.ConsumedArgs) error {
					reply(s, "The world border is currently %.1f block(s) wide", w.Border().Size)
					return nil
				})),
			command.Literal("set").Then(
				command.Arg("distance", args.Float().Min(1)).
					Executes(command.HandlerFunc(func(ctx context.Context, s command.Sender, a command.ConsumedArgs) error {
						size, _ := a.Float("distance")
						if err := w.SetBorderSize(size); err != nil {
							return err
						}
						reply(s, "Set the world border to %.1f block(s) wide", size)
						return nil
					}))),
			command.Literal("add").Then(
				command.Arg("distance", args.Float()).
					Executes(command.HandlerFunc(func(ctx context.Context, s command.Sender, a command.ConsumedArgs) error {
						delta, _ := a.Float("distance")
						if err := w.GrowBorder(delta); err != nil {
							return err
						}
						size := w.Border().Size
						if delta < 0 {
							reply(s, "Shrank the world border by %.1f block(s) to %.1f block(s) wide", -delta, size)
						} else {
							reply(s, "Grew the world border by %.1f block(s) to %.1f block(s) wide", delta, size)
						}
						return nil
					}))),
			command.Literal("center").Then(
				command.Arg("x", args.Float()).Then(
					command.Arg("z", args.Float()).
						Executes(command.HandlerFunc(func(ctx context.Context, s command.Sender, a command.ConsumedArgs) error {
							x, _ := a.Float("x")
							z, _ := a.Float("z")
							w.SetBorderCenter(x, z)
							reply(s, "Set the center of the world border to %.1f, %.1f", x, z)
							return nil
						})))),
			command.Literal("damage").Then(
				command.Literal("amount").Then(
					command.Arg("damagePerBlock", args.Float().Min(0)).
						Executes(command.HandlerFunc(func(ctx context.Context, s command.Sender, a command.ConsumedArgs) error {
							amount, _ := a.Float("damagePerBlock")
							w.SetBorderDamage(amount, w.Border().DamageBuffer)
							reply(s, "Set the world border damage to %.2f per block each second", amount)
							return nil
						}))),
				command.Literal("buffer").Then(
					command.Arg("distance", args.Float().Min(0)).
						Executes(command.HandlerFunc(func(ctx context.Context, s command.Sender, a command.ConsumedArgs) error {
							buffer, _ := a.Float("distance")
							w.SetBorderDamage(w.Border().DamagePerBlock, buffer)
							reply(s, "Set the world border damage buffer to %.1f block(s)", buffer)
							return nil
						})))),
			command.Literal("warning").Then(
				command.Literal("distance").Then(
					command.Arg("distance", args.Integer().Min(0)).
						Executes(command.HandlerFunc(func(ctx context.Context, s command.Sender, a command.ConsumedArgs) error {
							blocks, _ := a.Int("distance")
							w.SetBorderWarning(blocks, w.Border().WarningTime)
							reply(s, "Set the world border warning distance to %d block(s)", blocks)
							return nil
						}))),
				command.Literal("time").Then(
					command.Arg("time", args.Integer().Min(0)).
						Executes(command.HandlerFunc(func(ctx context.Context, s command.Sender, a command.ConsumedArgs) error {
							seconds, _ := a.Int("time")
							w.SetBorderWarning(w.Border().WarningBlocks, seconds)
							reply(s, "Set the world border warning time to %d second(s)", seconds)
							return nil
						}))))).
		MustBuild()

	return builtin{tree: tree, node: "forgecraft.worldborder", level: perm.Two}
}

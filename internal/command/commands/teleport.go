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

func teleportCommand(srv *server.Server) builtin {
	// destination resolves the single entity a teleport moves onto.
	destination := func(s command.Sender, a command.ConsumedArgs) (server.Target, error) {
		sel, _ := args.GetSelector(a, "destination")
		targets, err := srv.ResolveTargets(sel, s)
		if err != nil {
			return server.Target{}, err
		}
		return targets[0], nil
	}

	// moveTo applies the coordinate form. Relative coordinates resolve
	// against each teleported player, the vanilla teleport rule.
	moveTo := func(s command.Sender, targets []*server.Player, a command.ConsumedArgs) error {
		loc, _ := args.GetPosition(a, "location")
		rot, hasRot := args.GetRotation(a, "rotation")

		for _, p := range targets {
			base, _ := p.Position()
			dest := loc.Resolve(base)
			p.SetPosition(dest)
			if hasRot {
				p.SetRotation(rot.Resolve(p.Rotation()))
			}
		}
		if len(targets) == 1 {
			pos, _ := targets[0].Position()
			reply(s, "Teleported %s to %.1f, %.1f, %.1f", targets[0].Name(), pos.X, pos.Y, pos.Z)
		} else {
			reply(s, "Teleported %d players", len(targets))
		}
		return nil
	}

	self := func(s command.Sender) (*server.Player, error) {
		p, ok := s.(*server.Player)
		if !ok {
			return nil, fmt.Errorf("an entity is required to run this command here")
		}
		return p, nil
	}

	coordLeaf := command.HandlerFunc(func(ctx context.Context, s command.Sender, a command.ConsumedArgs) error {
		sel, _ := args.GetSelector(a, "targets")
		targets, err := srv.ResolvePlayers(sel, s)
		if err != nil {
			return err
		}
		return moveTo(s, targets, a)
	})

	tree := command.NewTree("teleport", "Teleport players", "tp").
		Then(
			command.Arg("destination", args.Entity(srv.Roster().Names)).
				Executes(command.HandlerFunc(func(ctx context.Context, s command.Sender, a command.ConsumedArgs) error {
					p, err := self(s)
					if err != nil {
						return err
					}
					dest, err := destination(s, a)
					if err != nil {
						return err
					}
					p.SetPosition(dest.Pos())
					reply(s, "Teleported %s to %s", p.Name(), dest.Name())
					return nil
				})),
			command.Arg("location", args.Vec3()).
				Executes(command.HandlerFunc(func(ctx context.Context, s command.Sender, a command.ConsumedArgs) error {
					p, err := self(s)
					if err != nil {
						return err
					}
					return moveTo(s, []*server.Player{p}, a)
				})),
			command.Arg("targets", args.Players(srv.Roster().Names)).Then(
				command.Arg("destination", args.Entity(srv.Roster().Names)).
					Executes(command.HandlerFunc(func(ctx context.Context, s command.Sender, a command.ConsumedArgs) error {
						sel, _ := args.GetSelector(a, "targets")
						targets, err := srv.ResolvePlayers(sel, s)
						if err != nil {
							return err
						}
						dest, err := destination(s, a)
						if err != nil {
							return err
						}
						for _, p := range targets {
							p.SetPosition(dest.Pos())
						}
						if len(targets) == 1 {
							reply(s, "Teleported %s to %s", targets[0].Name(), dest.Name())
						} else {
							reply(s, "Teleported %d players to %s", len(targets), dest.Name())
						}
						return nil
					})),
				command.Arg("location", args.Vec3()).
					Executes(coordLeaf).
					Then(command.Arg("rotation", args.Rotation()).
						Executes(coordLeaf)))).
		MustBuild()

	return builtin{tree: tree, node: "forgecraft.teleport", level: perm.Two}
}

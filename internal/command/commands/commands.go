// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// commands.go - Registration of the built-in command set.

package commands

import (
	"github.com/google/uuid"

	"github.com/jeranaias/forgecraft/internal/chat"
	"github.com/jeranaias/forgecraft/internal/command"
	"github.com/jeranaias/forgecraft/internal/command/args"
	"github.com/jeranaias/forgecraft/internal/perm"
	"github.com/jeranaias/forgecraft/internal/server"
)

// builtin is one command ready to register.
type builtin struct {
	tree  *command.Tree
	node  string
	level perm.Level
}

// RegisterDefaults registers every built-in command against srv.
// Call before Freeze.
func RegisterDefaults(d *command.Dispatcher, srv *server.Server) error {
	builtins := []builtin{
		// Level Zero
		forgecraftCommand(srv),
		helpCommand(srv, d),
		listCommand(srv),
		meCommand(srv),
		msgCommand(srv),

		// Level Two
		killCommand(srv),
		worldborderCommand(srv),
		teleportCommand(srv),
		timeCommand(srv),
		giveCommand(srv),
		clearCommand(srv),
		setblockCommand(srv),
		seedCommand(srv),
		fillCommand(srv),
		playsoundCommand(srv),
		titleCommand(srv),
		summonCommand(srv),
		experienceCommand(srv),
		weatherCommand(srv),
		particleCommand(srv),
		damageCommand(srv),
		bossbarCommand(srv),
		sayCommand(srv),
		gamemodeCommand(srv),
		transferCommand(srv),

		// Level Three
		opCommand(srv),
		deopCommand(srv),
		kickCommand(srv),
		banCommand(srv),
		banIPCommand(srv),
		banlistCommand(srv),
		pardonCommand(srv),
		pardonIPCommand(srv),
		whitelistCommand(srv),

		// Level Four
		stopCommand(srv),
	}

	for _, b := range builtins {
		if err := d.Register(b.tree, b.node, b.level); err != nil {
			return err
		}
	}
	return nil
}

// reply sends plain feedback to the sender.
func reply(s command.Sender, format string, a ...any) {
	s.SendMessage(chat.Textf(format, a...))
}

// profile identifies a player for the persistent stores, online or
// not.
type profile struct {
	id   uuid.UUID
	name string
}

// profileTargets resolves a selector for the admin commands. A plain
// name that is not online still resolves, with a derived offline
// uuid; every other selector form resolves against the roster.
func profileTargets(srv *server.Server, sel args.Selector, sender command.Sender) ([]profile, error) {
	if sel.Kind == args.SelectName {
		if p, ok := srv.Roster().ByName(sel.Name); ok {
			return []profile{{p.UUID(), p.Name()}}, nil
		}
		return []profile{{server.OfflineUUID(sel.Name), sel.Name}}, nil
	}

	players, err := srv.ResolvePlayers(sel, sender)
	if err != nil {
		return nil, err
	}
	out := make([]profile, len(players))
	for i, p := range players {
		out[i] = profile{p.UUID(), p.Name()}
	}
	return out, nil
}

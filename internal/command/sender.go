// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// sender.go - The capability surface of whoever issued a command.

package command

import (
	"github.com/jeranaias/forgecraft/internal/chat"
	"github.com/jeranaias/forgecraft/internal/perm"
	"github.com/jeranaias/forgecraft/internal/world"
)

// Sender is who a dispatch acts on behalf of. The server provides
// three implementations: the local console, rcon sessions, and
// players. Console and rcon always hold the highest permission level
// and report no position or world; only players carry a permission
// node set. The dispatcher reads this surface and never inspects the
// concrete type behind it.
type Sender interface {
	// Name identifies the sender in messages and logs.
	Name() string

	// Level is the sender's permission level.
	Level() perm.Level

	// HasPermission reports whether the sender holds the permission
	// node. Console and rcon hold every node.
	HasPermission(node string) bool

	// SendMessage delivers msg to the sender.
	SendMessage(msg *chat.Message)

	// IsPlayer reports whether the sender is an in-world player.
	IsPlayer() bool

	// IsConsole reports whether the sender is the local console.
	IsConsole() bool

	// Position returns the sender's location; ok is false for senders
	// without one.
	Position() (world.Pos, bool)

	// World returns the world the sender stands in; ok is false for
	// senders without one.
	World() (*world.World, bool)
}

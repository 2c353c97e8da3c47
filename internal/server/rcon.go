// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// rcon.go - The sender identity behind remote console sessions.

package server

import (
	"strings"
	"sync"

	"github.com/jeranaias/forgecraft/internal/chat"
	"github.com/jeranaias/forgecraft/internal/command"
	"github.com/jeranaias/forgecraft/internal/perm"
	"github.com/jeranaias/forgecraft/internal/world"
)

// Rcon is the sender for one remote console session. Like the local
// console it holds the top level and passes every permission check,
// but output accumulates in a buffer the transport drains into
// response frames instead of going to the console sink.
type Rcon struct {
	mu  sync.Mutex
	buf strings.Builder
}

// NewRcon returns a fresh session sender with an empty output buffer.
func NewRcon() *Rcon { return &Rcon{} }

// Name returns the session's display name.
func (r *Rcon) Name() string { return "Rcon" }

// Level returns the top operator level.
func (r *Rcon) Level() perm.Level { return perm.Four }

// HasPermission always grants.
func (r *Rcon) HasPermission(node string) bool { return true }

// SendMessage appends the plain rendering of m to the output buffer.
func (r *Rcon) SendMessage(m *chat.Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.buf.Len() > 0 {
		r.buf.WriteByte('\n')
	}
	r.buf.WriteString(m.Plain())
}

// TakeOutput returns everything sent since the last call and resets
// the buffer.
func (r *Rcon) TakeOutput() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.buf.String()
	r.buf.Reset()
	return out
}

// IsPlayer reports false.
func (r *Rcon) IsPlayer() bool { return false }

// IsConsole reports false. Remote sessions answer over their own
// connection, not the console sink.
func (r *Rcon) IsConsole() bool { return false }

// Position reports that the session has no position.
func (r *Rcon) Position() (world.Pos, bool) { return world.Pos{}, false }

// World reports that the session is in no world.
func (r *Rcon) World() (*world.World, bool) { return nil, false }

var _ command.Sender = (*Rcon)(nil)

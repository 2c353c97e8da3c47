// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// dispatcher.go - The command registry and dispatch entry point.

package command

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/jeranaias/forgecraft/internal/chat"
	"github.com/jeranaias/forgecraft/internal/perm"
)

// Registration binds one grammar to its access requirements.
type Registration struct {
	// Tree is the command's grammar.
	Tree *Tree

	// Node is the permission node guarding the command,
	// e.g. "forgecraft.gamemode".
	Node string

	// Level is the minimum permission level.
	Level perm.Level
}

// Dispatcher maps command names and aliases to their registrations and
// owns the traversal shared by dispatch and suggestion. Populate it
// during boot, call Freeze, then dispatch freely from any number of
// goroutines.
type Dispatcher struct {
	mu      sync.RWMutex
	entries map[string]*Registration
	frozen  bool
}

// NewDispatcher returns an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{entries: make(map[string]*Registration)}
}

// =============================================================================
// REGISTRATION
// =============================================================================

// Register inserts tree under its canonical name and every alias, all
// keys resolving to the same entry. Registering an existing name
// replaces that entry so later registrations can override built-ins.
// Register fails once the dispatcher is frozen, and when the grammar's
// redirects would form a cycle through the registry.
func (d *Dispatcher) Register(tree *Tree, node string, level perm.Level) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.frozen {
		return fmt.Errorf("register %s: dispatcher is frozen", tree.Name())
	}
	if err := d.checkRedirects(tree); err != nil {
		return err
	}
	reg := &Registration{Tree: tree, Node: node, Level: level}
	for _, name := range tree.names {
		d.entries[name] = reg
	}
	return nil
}

// Freeze marks the registry complete. Registration attempts after
// Freeze fail; the sequence of trees visible to dispatch never changes
// again.
func (d *Dispatcher) Freeze() {
	d.mu.Lock()
	d.frozen = true
	d.mu.Unlock()
}

// checkRedirects walks the redirect graph formed by the current
// registry plus the incoming tree and rejects any reachable loop.
// Targets that are not registered yet are allowed; they resolve, or
// fail to, at dispatch time.
func (d *Dispatcher) checkRedirects(tree *Tree) error {
	resolve := func(name string) *Tree {
		for _, n := range tree.names {
			if n == name {
				return tree
			}
		}
		if e, ok := d.entries[name]; ok {
			return e.Tree
		}
		return nil
	}
	var walk func(t *Tree, stack map[*Tree]bool) error
	walk = func(t *Tree, stack map[*Tree]bool) error {
		if stack[t] {
			return fmt.Errorf("register %s: redirect cycle through %s", tree.Name(), t.Name())
		}
		stack[t] = true
		defer delete(stack, t)
		for _, target := range redirectTargets(t.root) {
			if next := resolve(target); next != nil {
				if err := walk(next, stack); err != nil {
					return err
				}
			}
		}
		return nil
	}
	return walk(tree, map[*Tree]bool{})
}

func redirectTargets(n *Node) []string {
	var out []string
	if n.kind == redirectNode {
		out = append(out, n.target)
	}
	for _, c := range n.children {
		out = append(out, redirectTargets(c)...)
	}
	return out
}

// =============================================================================
// LOOKUP
// =============================================================================

// Lookup resolves a name or alias to its registration.
func (d *Dispatcher) Lookup(name string) (*Registration, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.lookupLocked(name)
}

// lookupLocked reads the registry without locking; callers hold d.mu.
func (d *Dispatcher) lookupLocked(name string) (*Registration, bool) {
	e, ok := d.entries[name]
	return e, ok
}

// Names returns every registered name and alias the sender may use,
// sorted. A nil sender lists everything.
func (d *Dispatcher) Names(sender Sender) []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.namesLocked(sender)
}

func (d *Dispatcher) namesLocked(sender Sender) []string {
	names := make([]string, 0, len(d.entries))
	for name, e := range d.entries {
		if sender != nil && !allowedEntry(sender, e) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Commands returns one registration per canonical command the sender
// may use, sorted by name. Help-style commands render from it.
func (d *Dispatcher) Commands(sender Sender) []*Registration {
	d.mu.RLock()
	defer d.mu.RUnlock()
	seen := make(map[*Registration]struct{}, len(d.entries))
	out := make([]*Registration, 0, len(d.entries))
	for _, e := range d.entries {
		if _, dup := seen[e]; dup {
			continue
		}
		seen[e] = struct{}{}
		if sender != nil && !allowedEntry(sender, e) {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Tree.Name() < out[j].Tree.Name() })
	return out
}

// allowedEntry applies the registration-level gate: the sender's level
// must reach the entry's minimum, and a sender carrying a permission
// node set must hold the entry's node. Console and rcon senders have
// no set and skip the node check.
func allowedEntry(s Sender, e *Registration) bool {
	if !s.Level().AtLeast(e.Level) {
		return false
	}
	if s.IsPlayer() && !s.HasPermission(e.Node) {
		return false
	}
	return true
}

// =============================================================================
// DISPATCH
// =============================================================================

// Dispatch tokenizes line, resolves the leading literal, applies the
// permission gate, walks the grammar, and runs the matched handler.
// On any failure exactly one rendered message goes to the sender and
// the structured error is returned for logging. A blank line is a
// no-op. A leading slash is accepted and ignored.
func (d *Dispatcher) Dispatch(ctx context.Context, line string, sender Sender) error {
	line = strings.TrimPrefix(line, "/")

	toks, err := Tokenize(line)
	if err != nil {
		d.fail(sender, line, err)
		return err
	}
	if len(toks) == 0 {
		return nil
	}
	head := toks[0]

	d.mu.RLock()
	entry, ok := d.lookupLocked(head.Text)
	if !ok {
		d.mu.RUnlock()
		err := &SyntaxError{Err: ErrUnknownCommand, Offset: head.Start, Detail: head.Text}
		d.fail(sender, line, err)
		return err
	}
	if !allowedEntry(sender, entry) || !entry.Tree.root.allowed(sender) {
		d.mu.RUnlock()
		d.fail(sender, line, ErrPermissionDenied)
		return ErrPermissionDenied
	}

	t := &traversal{d: d, line: line, tokens: toks, sender: sender}
	inv := t.execute(entry.Tree.root, 1, make(ConsumedArgs))
	d.mu.RUnlock()

	if inv == nil {
		d.fail(sender, line, t.deepest)
		return t.deepest
	}
	if err := inv.handler.Execute(ctx, sender, inv.args); err != nil {
		d.fail(sender, line, err)
		return err
	}
	return nil
}

// fail renders err once to the sender. Unknown commands get a nearby
// name hint when one exists.
func (d *Dispatcher) fail(sender Sender, line string, err error) {
	msg := RenderError(line, err)
	if errors.Is(err, ErrUnknownCommand) {
		var se *SyntaxError
		if errors.As(err, &se) && se.Detail != "" {
			if hint := d.nearest(se.Detail); hint != "" {
				msg.Append(chat.Textf("\nDid you mean /%s?", hint).Color(chat.Gray).Italic())
			}
		}
	}
	sender.SendMessage(msg)
}

// =============================================================================
// TYPO HINTS
// =============================================================================

// nearest returns the closest registered name within an edit-distance
// budget scaled to the input length, or "" when nothing is close.
func (d *Dispatcher) nearest(input string) string {
	input = strings.ToLower(input)
	// Very short inputs are more likely intentional than mistyped.
	if len(input) < 2 {
		return ""
	}

	maxDistance := 1
	if len(input) >= 4 {
		maxDistance = 2
	}
	if len(input) > 8 {
		maxDistance = 3
	}

	d.mu.RLock()
	names := d.namesLocked(nil)
	d.mu.RUnlock()

	best := ""
	bestDistance := -1
	for _, name := range names {
		distance := levenshteinDistance(input, name)
		if distance == 0 {
			return ""
		}
		if distance <= maxDistance && (bestDistance == -1 || distance < bestDistance) {
			bestDistance = distance
			best = name
		}
	}
	return best
}

// levenshteinDistance is the minimum number of single-character edits
// (insertions, deletions, or substitutions) turning s1 into s2.
func levenshteinDistance(s1, s2 string) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	cols := len(s2) + 1
	prev := make([]int, cols)
	curr := make([]int, cols)
	for j := 0; j < cols; j++ {
		prev[j] = j
	}

	for i := 1; i <= len(s1); i++ {
		curr[0] = i
		for j := 1; j < cols; j++ {
			cost := 0
			if s1[i-1] != s2[j-1] {
				cost = 1
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[cols-1]
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// tree.go - Immutable per-command grammars and build-time validation.

package command

import (
	"errors"
	"fmt"
)

// Tree is one command's finished grammar plus its names and help text.
// A Tree never changes after Build; dispatches share it freely.
type Tree struct {
	root        *Node
	names       []string // canonical name first, then aliases
	description string
}

// Name returns the canonical command name.
func (t *Tree) Name() string { return t.names[0] }

// Names returns the canonical name followed by the aliases.
func (t *Tree) Names() []string {
	return append([]string(nil), t.names...)
}

// Aliases returns the alternative names only.
func (t *Tree) Aliases() []string {
	return append([]string(nil), t.names[1:]...)
}

// Description returns the one-line help text.
func (t *Tree) Description() string { return t.description }

// Usage lists one shorthand per executable path, e.g.
// "/time set <time>". Redirects render as "-> /target".
func (t *Tree) Usage() []string {
	var out []string
	var walk func(n *Node, prefix string)
	walk = func(n *Node, prefix string) {
		if n.executor != nil {
			out = append(out, prefix)
		}
		for _, c := range n.children {
			switch c.kind {
			case literalNode:
				walk(c, prefix+" "+c.name)
			case argumentNode:
				walk(c, prefix+" <"+c.name+">")
			case redirectNode:
				out = append(out, prefix+" -> /"+c.target)
			}
		}
	}
	walk(t.root, "/"+t.Name())
	return out
}

// =============================================================================
// TREE BUILDER
// =============================================================================

// TreeBuilder assembles a command grammar root.
type TreeBuilder struct {
	tree *Tree
}

// NewTree starts a grammar for the command called name. Aliases become
// additional registry keys resolving to the same grammar.
func NewTree(name, description string, aliases ...string) *TreeBuilder {
	names := append([]string{name}, aliases...)
	return &TreeBuilder{tree: &Tree{
		root:        &Node{kind: literalNode, name: name},
		names:       names,
		description: description,
	}}
}

// Then appends first-level branches in matching order.
func (b *TreeBuilder) Then(children ...*NodeBuilder) *TreeBuilder {
	for _, c := range children {
		b.tree.root.children = append(b.tree.root.children, c.node)
	}
	return b
}

// Executes makes the bare command name a complete invocation.
func (b *TreeBuilder) Executes(h Handler) *TreeBuilder {
	b.tree.root.executor = h
	return b
}

// Requires gates the whole command on pred, ahead of any token
// matching.
func (b *TreeBuilder) Requires(pred func(Sender) bool) *TreeBuilder {
	b.tree.root.requires = pred
	return b
}

// Build validates the grammar and freezes it. It fails on a duplicate
// literal among siblings, an argument without a parser, a greedy
// argument that is not a leaf, and a redirect with children or an
// executor.
func (b *TreeBuilder) Build() (*Tree, error) {
	if b.tree.Name() == "" {
		return nil, errors.New("command name is empty")
	}
	if err := validate(b.tree.root); err != nil {
		return nil, fmt.Errorf("command %s: %w", b.tree.Name(), err)
	}
	return b.tree, nil
}

// MustBuild is Build for statically declared grammars.
func (b *TreeBuilder) MustBuild() *Tree {
	t, err := b.Build()
	if err != nil {
		panic(err)
	}
	return t
}

func validate(n *Node) error {
	seen := make(map[string]struct{}, len(n.children))
	for _, c := range n.children {
		if c.kind != literalNode {
			continue
		}
		if _, dup := seen[c.name]; dup {
			return fmt.Errorf("duplicate literal %q among siblings", c.name)
		}
		seen[c.name] = struct{}{}
	}

	for _, c := range n.children {
		switch c.kind {
		case literalNode:
			if c.name == "" {
				return errors.New("literal with empty name")
			}
		case argumentNode:
			if c.parser == nil {
				return fmt.Errorf("argument %q has no parser", c.name)
			}
			if isGreedy(c.parser) && len(c.children) > 0 {
				return fmt.Errorf("greedy argument %q must be the last node on its path", c.name)
			}
		case redirectNode:
			if len(c.children) > 0 {
				return fmt.Errorf("redirect to %q cannot have children", c.target)
			}
			if c.executor != nil {
				return fmt.Errorf("redirect to %q cannot carry an executor", c.target)
			}
			if c.target == "" {
				return errors.New("redirect with empty target")
			}
		}
		if err := validate(c); err != nil {
			return err
		}
	}
	return nil
}

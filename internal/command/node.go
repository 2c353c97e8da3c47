// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// node.go - Grammar tree nodes and their fluent builders.

package command

import (
	"context"

	"github.com/jeranaias/forgecraft/internal/perm"
)

// Handler executes one completed command invocation. Side effects,
// messages to the sender included, are the handler's responsibility;
// a returned error is rendered once by the dispatcher.
type Handler interface {
	Execute(ctx context.Context, sender Sender, args ConsumedArgs) error
}

// HandlerFunc adapts a plain function to Handler.
type HandlerFunc func(ctx context.Context, sender Sender, args ConsumedArgs) error

// Execute implements Handler.
func (f HandlerFunc) Execute(ctx context.Context, sender Sender, args ConsumedArgs) error {
	return f(ctx, sender, args)
}

type nodeKind int

const (
	literalNode nodeKind = iota
	argumentNode
	redirectNode
)

// Node is one vertex of a command grammar. Child order is matching
// precedence: literals are tried before arguments, earlier-declared
// children before later ones. Nodes are immutable once built.
type Node struct {
	kind     nodeKind
	name     string // literal text, or the binding name of an argument
	parser   Parser // argument nodes only
	target   string // redirect nodes: the registered command continued at
	children []*Node
	executor Handler
	requires func(Sender) bool
}

// allowed reports whether sender may enter the node.
func (n *Node) allowed(s Sender) bool {
	return n.requires == nil || n.requires(s)
}

// =============================================================================
// NODE BUILDERS
// =============================================================================

// NodeBuilder assembles one branch of a grammar. Validation happens
// once for the whole tree in Build.
type NodeBuilder struct {
	node *Node
}

// Literal matches exactly its name, case-sensitively.
func Literal(name string) *NodeBuilder {
	return &NodeBuilder{node: &Node{kind: literalNode, name: name}}
}

// Arg matches whatever p accepts and binds the parsed value under
// name for the handler.
func Arg(name string, p Parser) *NodeBuilder {
	return &NodeBuilder{node: &Node{kind: argumentNode, name: name, parser: p}}
}

// RedirectTo transparently continues traversal at the named command's
// root without consuming a token. The target is resolved through the
// dispatcher at dispatch time.
func RedirectTo(command string) *NodeBuilder {
	return &NodeBuilder{node: &Node{kind: redirectNode, target: command}}
}

// Then appends child branches in matching order.
func (b *NodeBuilder) Then(children ...*NodeBuilder) *NodeBuilder {
	for _, c := range children {
		b.node.children = append(b.node.children, c.node)
	}
	return b
}

// Executes marks the node as a complete invocation handled by h.
func (b *NodeBuilder) Executes(h Handler) *NodeBuilder {
	b.node.executor = h
	return b
}

// Requires gates entry to the node on pred. A gated node is invisible
// to senders that fail the predicate, both when matching and when
// suggesting.
func (b *NodeBuilder) Requires(pred func(Sender) bool) *NodeBuilder {
	b.node.requires = pred
	return b
}

// RequirePlayer passes only in-world senders. Branches that touch the
// sender's own position or world gate on it.
func RequirePlayer(s Sender) bool { return s.IsPlayer() }

// RequireLevel returns a predicate passing senders at or above min.
func RequireLevel(min perm.Level) func(Sender) bool {
	return func(s Sender) bool { return s.Level().AtLeast(min) }
}

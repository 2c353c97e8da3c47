// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// traverse.go - The tree walk shared by dispatch and suggestion.
//
// Both modes consume tokens the same way: literal children first in
// declaration order, then argument and redirect children. Execution
// reports the failure that progressed furthest into the line, with
// earlier-declared branches winning ties. Suggestion collects
// candidates from every node reachable at the cursor instead of
// failing.

package command

import "strings"

// traversal is the per-dispatch walk state. It lives for one call and
// is never shared.
type traversal struct {
	d      *Dispatcher
	line   string
	tokens []Token
	sender Sender

	deepest    error
	deepestOff int
}

// invocation is a matched executable node with its bound arguments.
type invocation struct {
	handler Handler
	args    ConsumedArgs
}

// record keeps the failure that reached furthest into the line. Ties
// keep the earlier failure so first-declared branches win.
func (t *traversal) record(err error) {
	off, _ := Offset(err)
	if t.deepest == nil || off > t.deepestOff {
		t.deepest = err
		t.deepestOff = off
	}
}

// execute matches tokens[pos:] against n's subtree and returns the
// invocation to run, or nil with the failure recorded on t.
func (t *traversal) execute(n *Node, pos int, args ConsumedArgs) *invocation {
	if pos >= len(t.tokens) {
		switch {
		case n.executor == nil:
			t.record(&SyntaxError{Err: ErrIncompleteCommand, Offset: len(t.line)})
			return nil
		case !n.allowed(t.sender):
			t.record(&SyntaxError{Err: ErrPermissionDenied, Offset: len(t.line)})
			return nil
		default:
			return &invocation{handler: n.executor, args: args}
		}
	}

	tok := t.tokens[pos]

	// Literals first. Sibling names are unique, so at most one
	// matches; if its subtree fails the argument branches still get
	// their turn and the deepest failure wins.
	for _, c := range n.children {
		if c.kind != literalNode || !c.allowed(t.sender) || c.name != tok.Text {
			continue
		}
		if inv := t.execute(c, pos+1, args); inv != nil {
			return inv
		}
		break
	}

	for _, c := range n.children {
		if c.kind == literalNode || !c.allowed(t.sender) {
			continue
		}
		if c.kind == redirectNode {
			target, ok := t.d.lookupLocked(c.target)
			if !ok || !target.Tree.root.allowed(t.sender) {
				continue
			}
			if inv := t.execute(target.Tree.root, pos, args); inv != nil {
				return inv
			}
			continue
		}
		in := NewInput(t.line, t.tokens, pos)
		val, err := c.parser.Parse(in)
		if err != nil {
			t.record(err)
			continue
		}
		branch := args.clone()
		branch[c.name] = val
		if inv := t.execute(c, in.pos, branch); inv != nil {
			return inv
		}
	}

	t.record(&SyntaxError{Err: ErrNoMatchingBranch, Offset: tok.Start, Detail: tok.Text})
	return nil
}

// suggest walks the complete tokens and collects candidates for the
// partial token from every node reachable at the cursor. A parser that
// fails while consuming through the end of input still contributes its
// own candidates.
func (t *traversal) suggest(n *Node, pos int, partial string, out *suggestions) {
	if pos >= len(t.tokens) {
		for _, c := range n.children {
			if !c.allowed(t.sender) {
				continue
			}
			switch c.kind {
			case literalNode:
				out.add(c.name)
			case argumentNode:
				out.addAll(c.parser.Suggest(partial, t.sender))
			case redirectNode:
				if target, ok := t.d.lookupLocked(c.target); ok && target.Tree.root.allowed(t.sender) {
					t.suggest(target.Tree.root, pos, partial, out)
				}
			}
		}
		return
	}

	tok := t.tokens[pos]
	for _, c := range n.children {
		if !c.allowed(t.sender) {
			continue
		}
		switch c.kind {
		case literalNode:
			if c.name == tok.Text {
				t.suggest(c, pos+1, partial, out)
			}
		case argumentNode:
			in := NewInput(t.line, t.tokens, pos)
			if _, err := c.parser.Parse(in); err == nil {
				t.suggest(c, in.pos, partial, out)
			} else if in.max >= len(t.tokens) {
				out.addAll(c.parser.Suggest(partial, t.sender))
			}
		case redirectNode:
			if target, ok := t.d.lookupLocked(c.target); ok && target.Tree.root.allowed(t.sender) {
				t.suggest(target.Tree.root, pos, partial, out)
			}
		}
	}
}

// suggestions accumulates candidates in first-seen order without
// duplicates, filtered case-insensitively by the partial token.
type suggestions struct {
	prefix string
	seen   map[string]struct{}
	out    []string
}

func newSuggestions(prefix string) *suggestions {
	return &suggestions{prefix: strings.ToLower(prefix), seen: make(map[string]struct{})}
}

func (s *suggestions) add(cand string) {
	if cand == "" {
		return
	}
	if !strings.HasPrefix(strings.ToLower(cand), s.prefix) {
		return
	}
	if _, dup := s.seen[cand]; dup {
		return
	}
	s.seen[cand] = struct{}{}
	s.out = append(s.out, cand)
}

func (s *suggestions) addAll(cands []string) {
	for _, c := range cands {
		s.add(c)
	}
}

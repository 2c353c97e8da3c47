// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// suggest.go - Tab completion entry point.

package command

import "strings"

// Suggest returns completion candidates for the line up to cursor.
// When the leading token is still being typed the candidates are the
// registered names and aliases the sender may use; past that, the
// grammar walk collects candidates from every reachable node. Suggest
// never executes a handler, tolerates parser failures, and returns
// identical output for identical input.
func (d *Dispatcher) Suggest(line string, cursor int, sender Sender) []string {
	if cursor < 0 || cursor > len(line) {
		cursor = len(line)
	}
	work := strings.TrimPrefix(line[:cursor], "/")

	toks, err := Tokenize(work)
	if err != nil {
		// Completing inside an unterminated quote has no sensible
		// candidates.
		return nil
	}

	// The cursor sits either at the end of a partial token or after
	// trailing whitespace, starting a fresh one.
	partial := ""
	complete := toks
	if len(toks) > 0 && toks[len(toks)-1].End == len(work) {
		partial = toks[len(toks)-1].Text
		complete = toks[:len(toks)-1]
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	if len(complete) == 0 {
		s := newSuggestions(partial)
		s.addAll(d.namesLocked(sender))
		return s.out
	}

	entry, ok := d.lookupLocked(complete[0].Text)
	if !ok || !allowedEntry(sender, entry) || !entry.Tree.root.allowed(sender) {
		return nil
	}

	t := &traversal{d: d, line: work, tokens: complete, sender: sender}
	s := newSuggestions(partial)
	t.suggest(entry.Tree.root, 1, partial, s)
	return s.out
}

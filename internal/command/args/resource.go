// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// resource.go - Namespaced identifier kind.

package args

import (
	"strings"

	"github.com/jeranaias/forgecraft/internal/command"
)

// DefaultNamespace is assumed when an id omits its namespace.
const DefaultNamespace = "minecraft"

// NormalizeID lowercases id and prefixes the default namespace when
// none is present. It does not validate.
func NormalizeID(id string) string {
	id = strings.ToLower(id)
	if !strings.Contains(id, ":") {
		return DefaultNamespace + ":" + id
	}
	return id
}

// ResourceParser accepts a namespaced id like minecraft:stone.
type ResourceParser struct {
	kind       string
	candidates func() []string
}

// Resource matches a namespaced id and binds the normalized form.
// The kind names the id space in errors and usage ("item", "sound");
// candidates supplies completion ids and may be nil. Ids are checked
// for shape only, not for existence.
func Resource(kind string, candidates func() []string) ResourceParser {
	return ResourceParser{kind: kind, candidates: candidates}
}

func (p ResourceParser) Kind() string { return p.kind }

func (p ResourceParser) Parse(in *command.Input) (any, error) {
	tok, ok := in.Next()
	if !ok {
		return nil, in.Errorf("expected a %s id", p.kind)
	}
	id := NormalizeID(tok.Text)
	if !validID(id) {
		return nil, in.ErrorfAt(tok, "invalid %s id %q", p.kind, tok.Text)
	}
	return id, nil
}

func (p ResourceParser) Suggest(string, command.Sender) []string {
	if p.candidates == nil {
		return nil
	}
	return p.candidates()
}

// validID checks the namespace:path shape. Namespaces allow lowercase
// letters, digits, underscore, hyphen, and dot; paths additionally
// allow slashes.
func validID(id string) bool {
	ns, path, ok := strings.Cut(id, ":")
	if !ok || ns == "" || path == "" {
		return false
	}
	for _, r := range ns {
		if !idRune(r, false) {
			return false
		}
	}
	for _, r := range path {
		if !idRune(r, true) {
			return false
		}
	}
	return true
}

func idRune(r rune, path bool) bool {
	switch {
	case r >= 'a' && r <= 'z':
	case r >= '0' && r <= '9':
	case r == '_' || r == '-' || r == '.':
	case path && r == '/':
	default:
		return false
	}
	return true
}

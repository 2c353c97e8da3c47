// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package command

import (
	"strings"
	"testing"
)

func TestTreeNamesAndAliases(t *testing.T) {
	tree := NewTree("teleport", "Teleport players", "tp").
		Then(Arg("n", takeInt{}).Executes(nop)).
		MustBuild()

	if tree.Name() != "teleport" {
		t.Errorf("Name() = %q", tree.Name())
	}
	if got := tree.Aliases(); len(got) != 1 || got[0] != "tp" {
		t.Errorf("Aliases() = %v", got)
	}
	if got := tree.Names(); len(got) != 2 || got[0] != "teleport" || got[1] != "tp" {
		t.Errorf("Names() = %v", got)
	}
	if tree.Description() != "Teleport players" {
		t.Errorf("Description() = %q", tree.Description())
	}
}

func TestTreeUsage(t *testing.T) {
	tree := NewTree("time", "Query or set the time").Then(
		Literal("set").Then(Arg("time", takeInt{}).Executes(nop)),
		Literal("query").Executes(nop),
	).MustBuild()

	want := []string{"/time set <time>", "/time query"}
	got := tree.Usage()
	if len(got) != len(want) {
		t.Fatalf("Usage() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Usage()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestTreeUsageRedirect(t *testing.T) {
	tree := NewTree("w", "Alias of msg").Then(RedirectTo("msg")).MustBuild()
	got := tree.Usage()
	if len(got) != 1 || got[0] != "/w -> /msg" {
		t.Errorf("Usage() = %v", got)
	}
}

func TestBuildRejectsDuplicateLiterals(t *testing.T) {
	_, err := NewTree("x", "").Then(
		Literal("a").Executes(nop),
		Literal("a").Executes(nop),
	).Build()
	if err == nil || !strings.Contains(err.Error(), "duplicate literal") {
		t.Errorf("Build() error = %v, want duplicate literal", err)
	}
}

func TestBuildRejectsGreedyNonLeaf(t *testing.T) {
	_, err := NewTree("x", "").Then(
		Arg("m", takeRest{}).Then(Literal("tail").Executes(nop)),
	).Build()
	if err == nil || !strings.Contains(err.Error(), "must be the last") {
		t.Errorf("Build() error = %v, want greedy leaf violation", err)
	}
}

func TestBuildRejectsMissingParser(t *testing.T) {
	_, err := NewTree("x", "").Then(Arg("v", nil).Executes(nop)).Build()
	if err == nil || !strings.Contains(err.Error(), "no parser") {
		t.Errorf("Build() error = %v, want missing parser", err)
	}
}

func TestBuildRejectsBadRedirects(t *testing.T) {
	tests := []struct {
		name string
		node *NodeBuilder
		want string
	}{
		{"children", RedirectTo("y").Then(Literal("z").Executes(nop)), "cannot have children"},
		{"executor", RedirectTo("y").Executes(nop), "cannot carry an executor"},
		{"empty target", RedirectTo(""), "empty target"},
	}
	for _, tt := range tests {
		_, err := NewTree("x", "").Then(tt.node).Build()
		if err == nil || !strings.Contains(err.Error(), tt.want) {
			t.Errorf("%s: Build() error = %v, want %q", tt.name, err, tt.want)
		}
	}
}

func TestMustBuildPanicsOnInvalidGrammar(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustBuild did not panic")
		}
	}()
	NewTree("x", "").Then(
		Literal("a").Executes(nop),
		Literal("a").Executes(nop),
	).MustBuild()
}

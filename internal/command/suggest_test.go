// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package command

import (
	"context"
	"testing"

	"github.com/jeranaias/forgecraft/internal/perm"
)

func wantSuggestions(t *testing.T, got []string, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("suggestions = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("suggestion %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func suggestFixture(t *testing.T) *Dispatcher {
	t.Helper()
	d := NewDispatcher()

	gamemode := NewTree("gamemode", "Change a game mode", "gm").Then(
		Arg("mode", takeWord{cands: []string{"survival", "creative", "adventure", "spectator"}}).Executes(nop),
	).MustBuild()
	mustRegister(t, d, gamemode, "forgecraft.gamemode", perm.Two)

	give := NewTree("give", "Give items").Then(
		Arg("target", takeWord{cands: []string{"@a", "@s"}}).Then(
			Arg("item", takeWord{cands: []string{"minecraft:stone", "minecraft:dirt"}}).Executes(nop),
		),
	).MustBuild()
	mustRegister(t, d, give, "forgecraft.give", perm.Two)

	list := NewTree("list", "List players").Executes(nop).MustBuild()
	mustRegister(t, d, list, "forgecraft.list", perm.Zero)

	return d
}

func TestSuggestCompletesCommandNames(t *testing.T) {
	d := suggestFixture(t)
	wantSuggestions(t, d.Suggest("gam", 3, console()), "gamemode")
	wantSuggestions(t, d.Suggest("/gi", 3, console()), "give")
}

func TestSuggestEmptyLineListsAllowedCommands(t *testing.T) {
	d := suggestFixture(t)
	wantSuggestions(t, d.Suggest("", 0, console()), "gamemode", "give", "gm", "list")

	// Below the level gate only list survives.
	wantSuggestions(t, d.Suggest("", 0, player(perm.Zero, "forgecraft.*")), "list")
}

func TestSuggestExcludesDeniedCommands(t *testing.T) {
	d := suggestFixture(t)
	// Right level but the permission set misses the gamemode node.
	s := player(perm.Two, "forgecraft.list")
	if got := d.Suggest("gam", 3, s); len(got) != 0 {
		t.Errorf("suggestions = %v, want none", got)
	}
}

func TestSuggestArgumentCandidates(t *testing.T) {
	d := suggestFixture(t)
	wantSuggestions(t, d.Suggest("gamemode ", 9, console()),
		"survival", "creative", "adventure", "spectator")
	wantSuggestions(t, d.Suggest("gamemode cr", 11, console()), "creative")
	wantSuggestions(t, d.Suggest("give @a ", 8, console()),
		"minecraft:stone", "minecraft:dirt")
}

func TestSuggestLiteralsInDeclarationOrder(t *testing.T) {
	d := NewDispatcher()
	tree := NewTree("time", "").Then(
		Literal("set").Then(Arg("time", takeInt{}).Executes(nop)),
		Literal("query").Executes(nop),
		Literal("add").Then(Arg("amount", takeInt{}).Executes(nop)),
	).MustBuild()
	mustRegister(t, d, tree, "forgecraft.time", perm.Two)

	wantSuggestions(t, d.Suggest("time ", 5, console()), "set", "query", "add")
	wantSuggestions(t, d.Suggest("time q", 6, console()), "query")
}

func TestSuggestFailingParserAtCursor(t *testing.T) {
	d := NewDispatcher()
	tree := NewTree("setslot", "").Then(
		Arg("slot", takeInt{cands: []string{"0", "1", "2"}}).Then(
			Arg("depth", takeInt{}).Executes(nop),
		),
	).MustBuild()
	mustRegister(t, d, tree, "forgecraft.setslot", perm.Zero)

	// The slot parser rejects "x", but its consumption reached the
	// cursor, so its candidates still show.
	wantSuggestions(t, d.Suggest("setslot x ", 10, console()), "0", "1", "2")

	// Once the failure sits before the cursor nothing can complete.
	if got := d.Suggest("setslot x 5 ", 12, console()); len(got) != 0 {
		t.Errorf("suggestions = %v, want none", got)
	}
}

func TestSuggestThroughRedirect(t *testing.T) {
	d := NewDispatcher()
	msg := NewTree("msg", "").Then(
		Arg("target", takeWord{cands: []string{"Steve", "Alex"}}).Then(
			Arg("text", takeRest{}).Executes(nop),
		),
	).MustBuild()
	mustRegister(t, d, msg, "forgecraft.msg", perm.Zero)
	w := NewTree("w", "").Then(RedirectTo("msg")).MustBuild()
	mustRegister(t, d, w, "forgecraft.msg", perm.Zero)

	wantSuggestions(t, d.Suggest("w ", 2, console()), "Steve", "Alex")
	wantSuggestions(t, d.Suggest("w al", 4, console()), "Alex")
}

func TestSuggestDedupesAcrossBranches(t *testing.T) {
	d := NewDispatcher()
	tree := NewTree("pick", "").Then(
		Literal("stone").Executes(nop),
		Arg("what", takeWord{cands: []string{"stone", "dirt"}}).Executes(nop),
	).MustBuild()
	mustRegister(t, d, tree, "forgecraft.pick", perm.Zero)

	wantSuggestions(t, d.Suggest("pick ", 5, console()), "stone", "dirt")
}

func TestSuggestPermissionFiltersLiterals(t *testing.T) {
	d := NewDispatcher()
	tree := NewTree("admin", "").Then(
		Literal("reload").Requires(RequireLevel(perm.Four)).Executes(nop),
		Literal("status").Executes(nop),
	).MustBuild()
	mustRegister(t, d, tree, "forgecraft.admin", perm.Zero)

	wantSuggestions(t, d.Suggest("admin ", 6, console()), "reload", "status")
	wantSuggestions(t, d.Suggest("admin ", 6, player(perm.Zero, "forgecraft.*")), "status")
}

func TestSuggestCursorBounds(t *testing.T) {
	d := suggestFixture(t)
	// Text past the cursor is invisible.
	wantSuggestions(t, d.Suggest("gamemode creative", 3, console()), "gamemode")
	// Out-of-range cursors clamp to the end of the line.
	wantSuggestions(t, d.Suggest("gam", 99, console()), "gamemode")
	wantSuggestions(t, d.Suggest("gam", -1, console()), "gamemode")
}

func TestSuggestUnterminatedQuote(t *testing.T) {
	d := suggestFixture(t)
	if got := d.Suggest(`give "unfin`, 11, console()); len(got) != 0 {
		t.Errorf("suggestions = %v, want none inside an open quote", got)
	}
}

func TestSuggestIsIdempotent(t *testing.T) {
	d := suggestFixture(t)
	s := console()
	first := d.Suggest("gamemode ", 9, s)
	// A dispatch in between must not disturb completion state.
	_ = d.Dispatch(context.Background(), "gamemode creative", s)
	second := d.Suggest("gamemode ", 9, s)
	wantSuggestions(t, second, first...)
}

func TestSuggestNeverExecutesHandlers(t *testing.T) {
	h := &countHandler{}
	d := NewDispatcher()
	tree := NewTree("list", "").Executes(h).MustBuild()
	mustRegister(t, d, tree, "forgecraft.list", perm.Zero)

	d.Suggest("list", 4, console())
	d.Suggest("list ", 5, console())
	if h.calls != 0 {
		t.Errorf("handler ran %d times during suggestion, want 0", h.calls)
	}
}

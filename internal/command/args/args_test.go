// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package args

import (
	"errors"
	"testing"

	"github.com/jeranaias/forgecraft/internal/command"
)

// input tokenizes line and positions a parser at its first token.
func input(t *testing.T, line string) *command.Input {
	t.Helper()
	toks, err := command.Tokenize(line)
	if err != nil {
		t.Fatalf("Tokenize(%q): %v", line, err)
	}
	return command.NewInput(line, toks, 0)
}

// =============================================================================
// PRIMITIVES
// =============================================================================

func TestWordTakesSingleToken(t *testing.T) {
	in := input(t, "Steve extra")
	v, err := Word().Parse(in)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if v != "Steve" {
		t.Errorf("value = %v, want Steve", v)
	}
	if in.Remaining() != 1 {
		t.Errorf("Remaining() = %d, want 1", in.Remaining())
	}
}

func TestEnumCaseInsensitive(t *testing.T) {
	p := Enum("on", "off")

	v, err := p.Parse(input(t, "ON"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if v != "on" {
		t.Errorf("value = %v, want canonical on", v)
	}

	_, err = p.Parse(input(t, "maybe"))
	var pe *command.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error = %v, want *ParseError", err)
	}
	if pe.Offset != 0 {
		t.Errorf("error offset = %d, want 0", pe.Offset)
	}
}

func TestMessageTakesRawRest(t *testing.T) {
	in := input(t, `hello   "quoted part" end`)
	v, err := Message().Parse(in)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if v != `hello   "quoted part" end` {
		t.Errorf("value = %q", v)
	}
	if in.Remaining() != 0 {
		t.Errorf("Remaining() = %d, want 0", in.Remaining())
	}
}

func TestMessageRejectsEmpty(t *testing.T) {
	if _, err := Message().Parse(input(t, "")); err == nil {
		t.Error("Parse on empty input succeeded, want error")
	}
}

// =============================================================================
// NUMBERS
// =============================================================================

func TestIntegerBounds(t *testing.T) {
	p := Integer().Min(1).Max(64)

	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"32", 32, false},
		{"1", 1, false},
		{"64", 64, false},
		{"0", 0, true},
		{"65", 0, true},
		{"abc", 0, true},
		{"3.5", 0, true},
	}
	for _, tt := range tests {
		v, err := p.Parse(input(t, tt.in))
		if tt.wantErr {
			if err == nil {
				t.Errorf("Parse(%q) succeeded, want error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("Parse(%q): %v", tt.in, err)
			continue
		}
		if v != tt.want {
			t.Errorf("Parse(%q) = %v, want %d", tt.in, v, tt.want)
		}
	}
}

func TestFloatParsesDecimals(t *testing.T) {
	v, err := Float().Min(0).Parse(input(t, "2.5"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if v != 2.5 {
		t.Errorf("value = %v, want 2.5", v)
	}
	if _, err := Float().Min(0).Parse(input(t, "-1")); err == nil {
		t.Error("Parse(-1) below minimum succeeded, want error")
	}
}

// =============================================================================
// SELECTORS
// =============================================================================

func TestPlayersSelector(t *testing.T) {
	tests := []struct {
		in      string
		want    Selector
		wantErr bool
	}{
		{"Steve", Selector{Kind: SelectName, Name: "Steve"}, false},
		{"@a", Selector{Kind: SelectAll}, false},
		{"@s", Selector{Kind: SelectSelf}, false},
		{"@p", Selector{Kind: SelectNearest}, false},
		{"@r", Selector{Kind: SelectRandom}, false},
		{"@e", Selector{}, true},
		{"@x", Selector{}, true},
		{"name!with!bangs", Selector{}, true},
		{"this_name_is_way_too_long_x", Selector{}, true},
	}
	p := Players(nil)
	for _, tt := range tests {
		v, err := p.Parse(input(t, tt.in))
		if tt.wantErr {
			if err == nil {
				t.Errorf("Parse(%q) succeeded, want error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("Parse(%q): %v", tt.in, err)
			continue
		}
		if v != tt.want {
			t.Errorf("Parse(%q) = %+v, want %+v", tt.in, v, tt.want)
		}
	}
}

func TestEntityAllowsAtEAndIsSingle(t *testing.T) {
	v, err := Entity(nil).Parse(input(t, "@e"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	sel := v.(Selector)
	if sel.Kind != SelectEntities || !sel.Single {
		t.Errorf("selector = %+v, want single @e", sel)
	}
}

func TestEntitiesAllowsAtEWithoutSingle(t *testing.T) {
	v, err := Entities(nil).Parse(input(t, "@e"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	sel := v.(Selector)
	if sel.Kind != SelectEntities || sel.Single {
		t.Errorf("selector = %+v, want multi @e", sel)
	}
}

func TestPlayersSuggestIncludesSourceNames(t *testing.T) {
	p := Players(func() []string { return []string{"Steve", "Alex"} })
	got := p.Suggest("", nil)
	want := []string{"@a", "@s", "@p", "@r", "Steve", "Alex"}
	if len(got) != len(want) {
		t.Fatalf("Suggest = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Suggest[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

// =============================================================================
// COORDINATES
// =============================================================================

func TestVec3RelativeAndAbsolute(t *testing.T) {
	v, err := Vec3().Parse(input(t, "~ ~1.5 -3"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	p := v.(Position)
	if !p.X.Rel || p.X.Val != 0 {
		t.Errorf("X = %+v, want relative 0", p.X)
	}
	if !p.Y.Rel || p.Y.Val != 1.5 {
		t.Errorf("Y = %+v, want relative 1.5", p.Y)
	}
	if p.Z.Rel || p.Z.Val != -3 {
		t.Errorf("Z = %+v, want absolute -3", p.Z)
	}
}

func TestVec3NeedsThreeCoordinates(t *testing.T) {
	_, err := Vec3().Parse(input(t, "1 2"))
	var pe *command.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error = %v, want *ParseError", err)
	}
	// The failure points past the consumed input.
	if pe.Offset != len("1 2") {
		t.Errorf("offset = %d, want %d", pe.Offset, len("1 2"))
	}
}

func TestBlockPosRejectsFractions(t *testing.T) {
	if _, err := BlockPos().Parse(input(t, "1 2.5 3")); err == nil {
		t.Error("Parse with fractional coordinate succeeded, want error")
	}
	v, err := BlockPos().Parse(input(t, "~-2 64 ~"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	p := v.(BlockPosition)
	if !p.X.Rel || p.X.Val != -2 || p.Y.Rel || p.Y.Val != 64 || !p.Z.Rel {
		t.Errorf("parsed = %+v", p)
	}
}

// =============================================================================
// GAME MODES, RESOURCES, DURATIONS
// =============================================================================

func TestGamemodeSpellings(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"survival", "survival"},
		{"SURVIVAL", "survival"},
		{"s", "survival"},
		{"0", "survival"},
		{"c", "creative"},
		{"2", "adventure"},
		{"sp", "spectator"},
	}
	for _, tt := range tests {
		v, err := Gamemode().Parse(input(t, tt.in))
		if err != nil {
			t.Errorf("Parse(%q): %v", tt.in, err)
			continue
		}
		if v != tt.want {
			t.Errorf("Parse(%q) = %v, want %s", tt.in, v, tt.want)
		}
	}
	if _, err := Gamemode().Parse(input(t, "hardcore")); err == nil {
		t.Error("Parse(hardcore) succeeded, want error")
	}
}

func TestResourceNormalization(t *testing.T) {
	p := Resource("item", nil)

	v, err := p.Parse(input(t, "stone"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if v != "minecraft:stone" {
		t.Errorf("value = %v, want minecraft:stone", v)
	}

	v, err = p.Parse(input(t, "Forgecraft:Iron_Block"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if v != "forgecraft:iron_block" {
		t.Errorf("value = %v, want forgecraft:iron_block", v)
	}

	if _, err := p.Parse(input(t, "bad!id")); err == nil {
		t.Error("Parse with invalid characters succeeded, want error")
	}
	if _, err := p.Parse(input(t, ":stone")); err == nil {
		t.Error("Parse with empty namespace succeeded, want error")
	}
}

func TestDurationUnits(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"100", 100},
		{"100t", 100},
		{"5s", 100},
		{"1d", 24000},
		{"0.5d", 12000},
	}
	for _, tt := range tests {
		v, err := Duration().Parse(input(t, tt.in))
		if err != nil {
			t.Errorf("Parse(%q): %v", tt.in, err)
			continue
		}
		if v != tt.want {
			t.Errorf("Parse(%q) = %v, want %d", tt.in, v, tt.want)
		}
	}
	if _, err := Duration().Parse(input(t, "-5s")); err == nil {
		t.Error("Parse(-5s) succeeded, want error")
	}
	if _, err := Duration().Parse(input(t, "xs")); err == nil {
		t.Error("Parse(xs) succeeded, want error")
	}
}

func TestDurationSuggestCompletesUnits(t *testing.T) {
	got := Duration().Suggest("10", nil)
	want := []string{"10t", "10s", "10d"}
	if len(got) != len(want) {
		t.Fatalf("Suggest = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Suggest[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if got := Duration().Suggest("abc", nil); got != nil {
		t.Errorf("Suggest(abc) = %v, want nil", got)
	}
}

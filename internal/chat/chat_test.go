// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/muesli/termenv"
)

// =============================================================================
// PLAIN RENDERING
// =============================================================================

func TestPlainStripsFormatting(t *testing.T) {
	msg := Text("Teleported ").
		Append(Text("Steve").Color(Aqua).Bold()).
		AppendText(" to spawn")

	want := "Teleported Steve to spawn"
	if got := msg.Plain(); got != want {
		t.Errorf("Plain() = %q, want %q", got, want)
	}
}

func TestPlainNilSafe(t *testing.T) {
	var msg *Message
	if got := msg.Plain(); got != "" {
		t.Errorf("Plain() on nil = %q, want empty", got)
	}
}

// =============================================================================
// LEGACY CODES
// =============================================================================

func TestLegacyRendering(t *testing.T) {
	tests := []struct {
		name string
		msg  *Message
		want string
	}{
		{
			name: "plain text emits no codes",
			msg:  Text("hello"),
			want: "hello",
		},
		{
			name: "color code precedes text",
			msg:  Text("Server closed").Color(Red),
			want: "§cServer closed",
		},
		{
			name: "color before format flags",
			msg:  Text("Bold red").Color(Red).Bold(),
			want: "§c§lBold red",
		},
		{
			name: "child inherits parent color without re-emitting",
			msg:  Text("a").Color(Red).AppendText("b"),
			want: "§cab",
		},
		{
			name: "reset between differently styled runs",
			msg:  Empty().Append(Text("x").Bold(), Text("y")),
			want: "§lx§ry",
		},
		{
			name: "sibling override changes color in place",
			msg:  Empty().Append(Text("x").Color(Gold), Text("y").Color(Aqua)),
			want: "§6x§r§by",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.msg.Legacy(); got != tt.want {
				t.Errorf("Legacy() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseLegacy(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		plain string
		// legacy is the canonical re-rendering; empty means same as in.
		legacy string
	}{
		{name: "no codes", in: "hello world", plain: "hello world"},
		{name: "single color", in: "§cServer closed", plain: "Server closed"},
		{name: "color then bold", in: "§c§lBold red", plain: "Bold red"},
		{name: "reset splits runs", in: "§lx§ry", plain: "xy"},
		{name: "color clears formatting", in: "§l§cx", plain: "x", legacy: "§cx"},
		{name: "uppercase code accepted", in: "§Cx", plain: "x", legacy: "§cx"},
		{name: "unknown code dropped", in: "a§zb", plain: "ab", legacy: "ab"},
		{name: "trailing section sign kept", in: "a§", plain: "a§", legacy: "a§"},
		{name: "empty string", in: "", plain: "", legacy: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := ParseLegacy(tt.in)
			if got := msg.Plain(); got != tt.plain {
				t.Errorf("Plain() = %q, want %q", got, tt.plain)
			}
			want := tt.legacy
			if want == "" {
				want = tt.in
			}
			if got := msg.Legacy(); got != want {
				t.Errorf("Legacy() = %q, want %q", got, want)
			}
		})
	}
}

func TestStripLegacy(t *testing.T) {
	if got := StripLegacy("§6Gold §r§lbold§r plain"); got != "Gold bold plain" {
		t.Errorf("StripLegacy() = %q", got)
	}
}

// =============================================================================
// COLORS
// =============================================================================

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
		ok   bool
	}{
		{"red", Red, true},
		{"DARK_PURPLE", DarkPurple, true},
		{"  gold  ", Gold, true},
		{"crimson", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseColor(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseColor(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestNamesCodeOrder(t *testing.T) {
	names := Names()
	if len(names) != 16 {
		t.Fatalf("Names() returned %d entries, want 16", len(names))
	}
	if names[0] != "black" || names[15] != "white" {
		t.Errorf("Names() order wrong: first=%q last=%q", names[0], names[15])
	}
}

// =============================================================================
// WIRE FORMAT
// =============================================================================

func TestMarshalJSONOmitsFalseFlags(t *testing.T) {
	data, err := json.Marshal(Text("hi").Color(Red).Bold())
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"text":"hi","color":"red","bold":true}`
	if string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	orig := Text("Teleported ").
		Append(Text("Steve").Color(Aqua).Italic()).
		AppendText(" to spawn")

	data, err := json.Marshal(orig)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var back Message
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if back.Plain() != orig.Plain() {
		t.Errorf("Plain() after round trip = %q, want %q", back.Plain(), orig.Plain())
	}
	if back.Legacy() != orig.Legacy() {
		t.Errorf("Legacy() after round trip = %q, want %q", back.Legacy(), orig.Legacy())
	}
}

// =============================================================================
// TERMINAL RENDERING
// =============================================================================

func TestANSIProfiles(t *testing.T) {
	msg := Text("Server closed").Color(Red).Bold()

	SetColorProfile(termenv.Ascii)
	if got := msg.ANSI(); got != msg.Plain() {
		t.Errorf("ANSI() with Ascii profile = %q, want plain %q", got, msg.Plain())
	}

	SetColorProfile(termenv.TrueColor)
	got := msg.ANSI()
	if !strings.Contains(got, "\x1b[") {
		t.Errorf("ANSI() with TrueColor profile lacks escape codes: %q", got)
	}
	if !strings.Contains(got, "Server closed") {
		t.Errorf("ANSI() lost text: %q", got)
	}

	SetColorProfile(termenv.Ascii)
}

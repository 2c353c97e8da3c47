// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// render.go - Terminal rendering for chat components.
//
// Color handling:
// - Colors are automatically disabled for non-TTY output (piped, redirected)
// - Respects NO_COLOR environment variable (https://no-color.org/)
// - Supports FORCE_COLOR environment variable to override detection

package chat

import (
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// colorHex maps each named color to the hex value game clients render.
var colorHex = map[Color]string{
	Black:       "#000000",
	DarkBlue:    "#0000AA",
	DarkGreen:   "#00AA00",
	DarkAqua:    "#00AAAA",
	DarkRed:     "#AA0000",
	DarkPurple:  "#AA00AA",
	Gold:        "#FFAA00",
	Gray:        "#AAAAAA",
	DarkGray:    "#555555",
	Blue:        "#5555FF",
	Green:       "#55FF55",
	Aqua:        "#55FFFF",
	Red:         "#FF5555",
	LightPurple: "#FF55FF",
	Yellow:      "#FFFF55",
	White:       "#FFFFFF",
}

var profileOnce sync.Once

// DetectColors configures the terminal color profile once from the
// environment. Call it before the first ANSI render.
func DetectColors() {
	profileOnce.Do(func() {
		lipgloss.SetColorProfile(detectProfile())
	})
}

func detectProfile() termenv.Profile {
	// NO_COLOR takes precedence (any non-empty value disables colors)
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	// FORCE_COLOR overrides TTY detection
	if os.Getenv("FORCE_COLOR") != "" {
		return termenv.ANSI256
	}
	return termenv.ColorProfile()
}

// SetColorProfile overrides profile detection. Tests use it to pin a
// deterministic profile.
func SetColorProfile(p termenv.Profile) {
	profileOnce.Do(func() {})
	lipgloss.SetColorProfile(p)
}

// ANSI renders the tree for a terminal using the active color profile.
// Obfuscated text renders normally; a terminal cannot animate it.
func (m *Message) ANSI() string {
	var b strings.Builder
	m.ansi(&b, style{})
	return b.String()
}

func (m *Message) ansi(b *strings.Builder, inherited style) {
	eff := inherited.merged(m)
	if m.text != "" {
		b.WriteString(eff.terminal().Render(m.text))
	}
	for _, child := range m.extra {
		child.ansi(b, eff)
	}
}

// terminal builds the lipgloss style equivalent to s.
func (s style) terminal() lipgloss.Style {
	st := lipgloss.NewStyle()
	if hex, ok := colorHex[s.color]; ok {
		st = st.Foreground(lipgloss.Color(hex))
	}
	if s.bold {
		st = st.Bold(true)
	}
	if s.italic {
		st = st.Italic(true)
	}
	if s.underlined {
		st = st.Underline(true)
	}
	if s.strikethrough {
		st = st.Strikethrough(true)
	}
	return st
}

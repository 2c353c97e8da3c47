// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// message.go - Rich text component tree for server messages.
//
// Components nest: a parent's formatting applies to its children unless
// a child sets its own. The same tree renders three ways: Plain for
// logs, Legacy for section-sign consumers, and ANSI (render.go) for the
// interactive console.

package chat

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"
)

// =============================================================================
// COLORS
// =============================================================================

// Color is a named chat color. The zero value inherits the parent
// component's color.
type Color string

const (
	Black       Color = "black"
	DarkBlue    Color = "dark_blue"
	DarkGreen   Color = "dark_green"
	DarkAqua    Color = "dark_aqua"
	DarkRed     Color = "dark_red"
	DarkPurple  Color = "dark_purple"
	Gold        Color = "gold"
	Gray        Color = "gray"
	DarkGray    Color = "dark_gray"
	Blue        Color = "blue"
	Green       Color = "green"
	Aqua        Color = "aqua"
	Red         Color = "red"
	LightPurple Color = "light_purple"
	Yellow      Color = "yellow"
	White       Color = "white"
)

// colorCodes maps each named color to its legacy section-sign code.
var colorCodes = map[Color]rune{
	Black:       '0',
	DarkBlue:    '1',
	DarkGreen:   '2',
	DarkAqua:    '3',
	DarkRed:     '4',
	DarkPurple:  '5',
	Gold:        '6',
	Gray:        '7',
	DarkGray:    '8',
	Blue:        '9',
	Green:       'a',
	Aqua:        'b',
	Red:         'c',
	LightPurple: 'd',
	Yellow:      'e',
	White:       'f',
}

var codeColors = func() map[rune]Color {
	m := make(map[rune]Color, len(colorCodes))
	for c, code := range colorCodes {
		m[code] = c
	}
	return m
}()

// colorOrder lists the named colors in legacy code order (0-9, a-f).
var colorOrder = []Color{
	Black, DarkBlue, DarkGreen, DarkAqua,
	DarkRed, DarkPurple, Gold, Gray,
	DarkGray, Blue, Green, Aqua,
	Red, LightPurple, Yellow, White,
}

// Valid reports whether c is one of the sixteen named colors.
func (c Color) Valid() bool {
	_, ok := colorCodes[c]
	return ok
}

// ParseColor resolves a color by name, case-insensitively.
func ParseColor(name string) (Color, bool) {
	c := Color(strings.ToLower(strings.TrimSpace(name)))
	if c.Valid() {
		return c, true
	}
	return "", false
}

// Names returns the sixteen color names in legacy code order.
func Names() []string {
	names := make([]string, len(colorOrder))
	for i, c := range colorOrder {
		names[i] = string(c)
	}
	return names
}

// =============================================================================
// MESSAGE
// =============================================================================

// style is the resolved formatting of a component after inheritance.
type style struct {
	color         Color
	bold          bool
	italic        bool
	underlined    bool
	strikethrough bool
	obfuscated    bool
}

// merged returns s with the explicit formatting of m layered on top.
func (s style) merged(m *Message) style {
	if m.color != "" {
		s.color = m.color
	}
	s.bold = s.bold || m.bold
	s.italic = s.italic || m.italic
	s.underlined = s.underlined || m.underlined
	s.strikethrough = s.strikethrough || m.strikethrough
	s.obfuscated = s.obfuscated || m.obfuscated
	return s
}

// Message is one node of a rich text component tree.
type Message struct {
	text          string
	color         Color
	bold          bool
	italic        bool
	underlined    bool
	strikethrough bool
	obfuscated    bool
	extra         []*Message
}

// Text returns a new message holding the given literal text.
func Text(s string) *Message {
	return &Message{text: s}
}

// Textf returns a new message with fmt.Sprintf applied.
func Textf(format string, args ...any) *Message {
	return &Message{text: fmt.Sprintf(format, args...)}
}

// Empty returns a message with no text of its own. Useful as a root for
// children with differing formats.
func Empty() *Message {
	return &Message{}
}

// Color sets the component color and returns the message for chaining.
func (m *Message) Color(c Color) *Message {
	m.color = c
	return m
}

// Bold marks the component bold.
func (m *Message) Bold() *Message {
	m.bold = true
	return m
}

// Italic marks the component italic.
func (m *Message) Italic() *Message {
	m.italic = true
	return m
}

// Underlined marks the component underlined.
func (m *Message) Underlined() *Message {
	m.underlined = true
	return m
}

// Strikethrough marks the component struck through.
func (m *Message) Strikethrough() *Message {
	m.strikethrough = true
	return m
}

// Obfuscated marks the component obfuscated. Terminals render the text
// normally; only game clients animate it.
func (m *Message) Obfuscated() *Message {
	m.obfuscated = true
	return m
}

// Append adds children rendered after this component's own text.
func (m *Message) Append(children ...*Message) *Message {
	m.extra = append(m.extra, children...)
	return m
}

// AppendText appends an unformatted child holding the given text.
func (m *Message) AppendText(s string) *Message {
	return m.Append(Text(s))
}

// =============================================================================
// RENDERING
// =============================================================================

// Plain returns the concatenated text of the component and its children
// with all formatting stripped.
func (m *Message) Plain() string {
	var b strings.Builder
	m.plain(&b)
	return b.String()
}

func (m *Message) plain(b *strings.Builder) {
	if m == nil {
		return
	}
	b.WriteString(m.text)
	for _, child := range m.extra {
		child.plain(b)
	}
}

// SectionSign introduces a legacy format code.
const SectionSign = '§'

// codes returns the section-sign sequence that reproduces s from a
// reset state. The color code leads because colors clear formatting in
// the legacy encoding.
func (s style) codes() string {
	var b strings.Builder
	if code, ok := colorCodes[s.color]; ok {
		b.WriteRune(SectionSign)
		b.WriteRune(code)
	}
	if s.obfuscated {
		b.WriteRune(SectionSign)
		b.WriteRune('k')
	}
	if s.bold {
		b.WriteRune(SectionSign)
		b.WriteRune('l')
	}
	if s.strikethrough {
		b.WriteRune(SectionSign)
		b.WriteRune('m')
	}
	if s.underlined {
		b.WriteRune(SectionSign)
		b.WriteRune('n')
	}
	if s.italic {
		b.WriteRune(SectionSign)
		b.WriteRune('o')
	}
	return b.String()
}

// Legacy renders the tree using section-sign codes, emitting a reset
// whenever the effective style changes between text runs.
func (m *Message) Legacy() string {
	var b strings.Builder
	last := style{}
	m.legacy(&b, style{}, &last)
	return b.String()
}

func (m *Message) legacy(b *strings.Builder, inherited style, last *style) {
	eff := inherited.merged(m)
	if m.text != "" {
		if eff != *last {
			if *last != (style{}) {
				b.WriteRune(SectionSign)
				b.WriteRune('r')
			}
			b.WriteString(eff.codes())
			*last = eff
		}
		b.WriteString(m.text)
	}
	for _, child := range m.extra {
		child.legacy(b, eff, last)
	}
}

// ParseLegacy converts a section-sign coded string into a component
// tree. A color code clears formatting set before it and an unknown
// code is dropped, matching how legacy clients read the encoding.
func ParseLegacy(s string) *Message {
	root := Empty()
	var cur style
	var text strings.Builder

	flush := func() {
		if text.Len() == 0 {
			return
		}
		root.extra = append(root.extra, &Message{
			text:          text.String(),
			color:         cur.color,
			bold:          cur.bold,
			italic:        cur.italic,
			underlined:    cur.underlined,
			strikethrough: cur.strikethrough,
			obfuscated:    cur.obfuscated,
		})
		text.Reset()
	}

	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		if runes[i] != SectionSign || i+1 >= len(runes) {
			text.WriteRune(runes[i])
			continue
		}
		i++
		code := unicode.ToLower(runes[i])
		if c, ok := codeColors[code]; ok {
			flush()
			cur = style{color: c}
			continue
		}
		switch code {
		case 'k':
			flush()
			cur.obfuscated = true
		case 'l':
			flush()
			cur.bold = true
		case 'm':
			flush()
			cur.strikethrough = true
		case 'n':
			flush()
			cur.underlined = true
		case 'o':
			flush()
			cur.italic = true
		case 'r':
			flush()
			cur = style{}
		}
	}
	flush()

	if len(root.extra) == 1 {
		return root.extra[0]
	}
	return root
}

// StripLegacy removes every section-sign code from s.
func StripLegacy(s string) string {
	return ParseLegacy(s).Plain()
}

// =============================================================================
// WIRE FORMAT
// =============================================================================

// messageJSON is the client wire shape of one component. False flags
// are omitted since absent means inherit.
type messageJSON struct {
	Text          string     `json:"text"`
	Color         Color      `json:"color,omitempty"`
	Bold          bool       `json:"bold,omitempty"`
	Italic        bool       `json:"italic,omitempty"`
	Underlined    bool       `json:"underlined,omitempty"`
	Strikethrough bool       `json:"strikethrough,omitempty"`
	Obfuscated    bool       `json:"obfuscated,omitempty"`
	Extra         []*Message `json:"extra,omitempty"`
}

// MarshalJSON encodes the component in the client wire shape.
func (m *Message) MarshalJSON() ([]byte, error) {
	return json.Marshal(messageJSON{
		Text:          m.text,
		Color:         m.color,
		Bold:          m.bold,
		Italic:        m.italic,
		Underlined:    m.underlined,
		Strikethrough: m.strikethrough,
		Obfuscated:    m.obfuscated,
		Extra:         m.extra,
	})
}

// UnmarshalJSON decodes a component produced by MarshalJSON.
func (m *Message) UnmarshalJSON(data []byte) error {
	var raw messageJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*m = Message{
		text:          raw.Text,
		color:         raw.Color,
		bold:          raw.Bold,
		italic:        raw.Italic,
		underlined:    raw.Underlined,
		strikethrough: raw.Strikethrough,
		obfuscated:    raw.Obfuscated,
		extra:         raw.Extra,
	}
	return nil
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// bossbar.go - Custom boss bars managed by the bossbar command.

package server

import (
	"strings"
	"sync"
)

// BossBarColor is a bar's display color.
type BossBarColor string

const (
	BarBlue   BossBarColor = "blue"
	BarGreen  BossBarColor = "green"
	BarPink   BossBarColor = "pink"
	BarPurple BossBarColor = "purple"
	BarRed    BossBarColor = "red"
	BarWhite  BossBarColor = "white"
	BarYellow BossBarColor = "yellow"
)

// BossBarColors lists the accepted color names.
var BossBarColors = []string{"blue", "green", "pink", "purple", "red", "white", "yellow"}

// ParseBossBarColor resolves a color name, case-insensitively.
func ParseBossBarColor(name string) (BossBarColor, bool) {
	c := BossBarColor(strings.ToLower(name))
	for _, known := range BossBarColors {
		if string(c) == known {
			return c, true
		}
	}
	return "", false
}

// BossBarStyle is a bar's notch layout.
type BossBarStyle string

const (
	BarProgress  BossBarStyle = "progress"
	BarNotched6  BossBarStyle = "notched_6"
	BarNotched10 BossBarStyle = "notched_10"
	BarNotched12 BossBarStyle = "notched_12"
	BarNotched20 BossBarStyle = "notched_20"
)

// BossBarStyles lists the accepted style names.
var BossBarStyles = []string{"progress", "notched_6", "notched_10", "notched_12", "notched_20"}

// ParseBossBarStyle resolves a style name, case-insensitively.
func ParseBossBarStyle(name string) (BossBarStyle, bool) {
	s := BossBarStyle(strings.ToLower(name))
	for _, known := range BossBarStyles {
		if string(s) == known {
			return s, true
		}
	}
	return "", false
}

// BossBar is one custom bar. A fresh bar is white, full-width
// progress, value 0 of 100, visible. All methods are safe for
// concurrent use.
type BossBar struct {
	id string

	mu      sync.RWMutex
	name    string
	color   BossBarColor
	style   BossBarStyle
	value   int
	max     int
	visible bool
}

func newBossBar(id, name string) *BossBar {
	return &BossBar{
		id:      id,
		name:    name,
		color:   BarWhite,
		style:   BarProgress,
		max:     100,
		visible: true,
	}
}

// ID returns the bar's resource id.
func (b *BossBar) ID() string { return b.id }

// Name returns the bar's display name.
func (b *BossBar) Name() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.name
}

// SetName changes the display name.
func (b *BossBar) SetName(name string) {
	b.mu.Lock()
	b.name = name
	b.mu.Unlock()
}

// Color returns the bar color.
func (b *BossBar) Color() BossBarColor {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.color
}

// SetColor changes the bar color.
func (b *BossBar) SetColor(c BossBarColor) {
	b.mu.Lock()
	b.color = c
	b.mu.Unlock()
}

// Style returns the notch layout.
func (b *BossBar) Style() BossBarStyle {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.style
}

// SetStyle changes the notch layout.
func (b *BossBar) SetStyle(s BossBarStyle) {
	b.mu.Lock()
	b.style = s
	b.mu.Unlock()
}

// Value returns the filled amount.
func (b *BossBar) Value() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.value
}

// SetValue clamps v into [0, max].
func (b *BossBar) SetValue(v int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if v < 0 {
		v = 0
	}
	if v > b.max {
		v = b.max
	}
	b.value = v
}

// Max returns the bar's full value.
func (b *BossBar) Max() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.max
}

// SetMax sets the full value, flooring at 1, and re-clamps the current
// value.
func (b *BossBar) SetMax(m int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if m < 1 {
		m = 1
	}
	b.max = m
	if b.value > m {
		b.value = m
	}
}

// Visible reports whether the bar is shown.
func (b *BossBar) Visible() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.visible
}

// SetVisible shows or hides the bar.
func (b *BossBar) SetVisible(v bool) {
	b.mu.Lock()
	b.visible = v
	b.mu.Unlock()
}

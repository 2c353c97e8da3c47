// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// world.go - Mutable per-world state.

package world

import (
	"fmt"
	"strings"
	"sync"
)

// TicksPerDay is the length of one in-game day.
const TicksPerDay = 24000

// Named times of day for the time command.
const (
	TimeDay      = 1000
	TimeNoon     = 6000
	TimeNight    = 13000
	TimeMidnight = 18000
)

// MaxFillVolume caps how many blocks one fill may touch.
const MaxFillVolume = 32768

// Weather is the current precipitation state.
type Weather int

const (
	Clear Weather = iota
	Rain
	Thunder
)

func (w Weather) String() string {
	switch w {
	case Rain:
		return "rain"
	case Thunder:
		return "thunder"
	default:
		return "clear"
	}
}

// ParseWeather resolves a weather name, case-insensitively.
func ParseWeather(s string) (Weather, bool) {
	switch strings.ToLower(s) {
	case "clear":
		return Clear, true
	case "rain":
		return Rain, true
	case "thunder":
		return Thunder, true
	}
	return Clear, false
}

// Border is the world border state. Size is the full diameter.
type Border struct {
	CenterX, CenterZ float64
	Size             float64
	DamagePerBlock   float64
	DamageBuffer     float64
	WarningBlocks    int
	WarningTime      int
}

// DefaultBorder matches a freshly created world.
func DefaultBorder() Border {
	return Border{
		Size:           59999968,
		DamagePerBlock: 0.2,
		DamageBuffer:   5,
		WarningBlocks:  5,
		WarningTime:    15,
	}
}

// World is one world's mutable state. All methods are safe for
// concurrent use.
type World struct {
	name string
	seed int64

	mu          sync.RWMutex
	time        int64
	weather     Weather
	weatherLeft int64 // ticks until the weather reverts to clear
	border      Border
	blocks      map[BlockPos]string
}

// New returns a world with default time, clear weather, and a default
// border.
func New(name string, seed int64) *World {
	return &World{
		name:   name,
		seed:   seed,
		border: DefaultBorder(),
		blocks: make(map[BlockPos]string),
	}
}

// Name returns the world's name.
func (w *World) Name() string { return w.name }

// Seed returns the world's generation seed.
func (w *World) Seed() int64 { return w.seed }

// =============================================================================
// TIME
// =============================================================================

// Time returns the total ticks elapsed since the world was created.
func (w *World) Time() int64 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.time
}

// DayTime returns the time of day in ticks.
func (w *World) DayTime() int64 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.time % TicksPerDay
}

// Day returns how many full days have elapsed.
func (w *World) Day() int64 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.time / TicksPerDay
}

// SetDayTime moves the clock forward so the time of day becomes t.
// The day counter never runs backwards.
func (w *World) SetDayTime(t int64) {
	t %= TicksPerDay
	if t < 0 {
		t += TicksPerDay
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	cur := w.time % TicksPerDay
	delta := t - cur
	if delta < 0 {
		delta += TicksPerDay
	}
	w.time += delta
}

// AddTime advances the clock by ticks.
func (w *World) AddTime(ticks int64) {
	if ticks < 0 {
		ticks = 0
	}
	w.mu.Lock()
	w.time += ticks
	w.mu.Unlock()
}

// =============================================================================
// WEATHER
// =============================================================================

// Weather returns the current weather and how many ticks of it remain.
// Zero remaining means indefinite.
func (w *World) Weather() (Weather, int64) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.weather, w.weatherLeft
}

// SetWeather switches the weather for duration ticks; zero holds it
// until changed again.
func (w *World) SetWeather(weather Weather, duration int64) {
	if duration < 0 {
		duration = 0
	}
	w.mu.Lock()
	w.weather = weather
	w.weatherLeft = duration
	w.mu.Unlock()
}

// =============================================================================
// BORDER
// =============================================================================

// Border returns a copy of the border state.
func (w *World) Border() Border {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.border
}

// SetBorderSize sets the border diameter.
func (w *World) SetBorderSize(size float64) error {
	if size < 1 {
		return fmt.Errorf("border size %.1f is too small", size)
	}
	w.mu.Lock()
	w.border.Size = size
	w.mu.Unlock()
	return nil
}

// GrowBorder changes the border diameter by delta, which may be
// negative.
func (w *World) GrowBorder(delta float64) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	size := w.border.Size + delta
	if size < 1 {
		return fmt.Errorf("border size %.1f is too small", size)
	}
	w.border.Size = size
	return nil
}

// SetBorderCenter moves the border center.
func (w *World) SetBorderCenter(x, z float64) {
	w.mu.Lock()
	w.border.CenterX, w.border.CenterZ = x, z
	w.mu.Unlock()
}

// SetBorderDamage sets the damage per block past the buffer and the
// buffer distance.
func (w *World) SetBorderDamage(perBlock, buffer float64) {
	w.mu.Lock()
	w.border.DamagePerBlock = perBlock
	w.border.DamageBuffer = buffer
	w.mu.Unlock()
}

// SetBorderWarning sets the warning distance in blocks and the warning
// time in seconds.
func (w *World) SetBorderWarning(blocks, seconds int) {
	w.mu.Lock()
	w.border.WarningBlocks = blocks
	w.border.WarningTime = seconds
	w.mu.Unlock()
}

// =============================================================================
// BLOCKS
// =============================================================================

// SetBlock records the block at p.
func (w *World) SetBlock(p BlockPos, block string) {
	w.mu.Lock()
	w.blocks[p] = block
	w.mu.Unlock()
}

// BlockAt returns the recorded block at p.
func (w *World) BlockAt(p BlockPos) (string, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	b, ok := w.blocks[p]
	return b, ok
}

// Fill sets every block in the box spanned by a and b, inclusive, and
// returns how many blocks changed. Boxes larger than MaxFillVolume are
// rejected untouched.
func (w *World) Fill(a, b BlockPos, block string) (int, error) {
	lo := BlockPos{X: min(a.X, b.X), Y: min(a.Y, b.Y), Z: min(a.Z, b.Z)}
	hi := BlockPos{X: max(a.X, b.X), Y: max(a.Y, b.Y), Z: max(a.Z, b.Z)}
	volume := (hi.X - lo.X + 1) * (hi.Y - lo.Y + 1) * (hi.Z - lo.Z + 1)
	if volume > MaxFillVolume {
		return 0, fmt.Errorf("too many blocks in the specified area (%d > %d)", volume, MaxFillVolume)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	for x := lo.X; x <= hi.X; x++ {
		for y := lo.Y; y <= hi.Y; y++ {
			for z := lo.Z; z <= hi.Z; z++ {
				w.blocks[BlockPos{X: x, Y: y, Z: z}] = block
			}
		}
	}
	return volume, nil
}

// =============================================================================
// TICKING
// =============================================================================

// Tick advances the clock one tick and counts down timed weather.
func (w *World) Tick() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.time++
	if w.weatherLeft > 0 {
		w.weatherLeft--
		if w.weatherLeft == 0 {
			w.weather = Clear
		}
	}
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// time.go - Game time durations with t/s/d unit suffixes.

package args

import (
	"math"
	"strconv"

	"github.com/jeranaias/forgecraft/internal/command"
)

// Ticks per unit suffix. A bare number is ticks.
const (
	unitTick   = 1
	unitSecond = 20
	unitDay    = 24000
)

// DurationParser accepts a nonnegative game time span.
type DurationParser struct{}

// Duration matches a number with an optional t, s, or d suffix and
// binds the span in ticks as an int64.
func Duration() DurationParser { return DurationParser{} }

func (DurationParser) Kind() string { return "duration" }

func (DurationParser) Parse(in *command.Input) (any, error) {
	tok, ok := in.Next()
	if !ok {
		return nil, in.Errorf("expected a duration")
	}
	text := tok.Text
	unit := int64(unitTick)
	if len(text) > 0 {
		switch text[len(text)-1] {
		case 't':
			text = text[:len(text)-1]
		case 's':
			unit = unitSecond
			text = text[:len(text)-1]
		case 'd':
			unit = unitDay
			text = text[:len(text)-1]
		}
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, in.ErrorfAt(tok, "expected a duration, got %q", tok.Text)
	}
	if v < 0 {
		return nil, in.ErrorfAt(tok, "duration must not be negative")
	}
	ticks := int64(math.Round(v * float64(unit)))
	return ticks, nil
}

// Suggest completes a numeric prefix with the unit suffixes.
func (DurationParser) Suggest(prefix string, _ command.Sender) []string {
	if prefix == "" {
		return nil
	}
	if _, err := strconv.ParseFloat(prefix, 64); err != nil {
		return nil
	}
	return []string{prefix + "t", prefix + "s", prefix + "d"}
}

// GetTicks returns the named argument as a tick count.
func GetTicks(a command.ConsumedArgs, name string) (int64, bool) {
	v, ok := a[name].(int64)
	return v, ok
}

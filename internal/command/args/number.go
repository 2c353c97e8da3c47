// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// number.go - Bounded numeric kinds.

package args

import (
	"strconv"

	"github.com/jeranaias/forgecraft/internal/command"
)

// IntegerParser accepts a whole number, optionally bounded.
type IntegerParser struct {
	min, max       int
	hasMin, hasMax bool
}

// Integer matches a whole number and binds it as an int.
func Integer() IntegerParser { return IntegerParser{} }

// Min sets the lowest accepted value.
func (p IntegerParser) Min(v int) IntegerParser {
	p.min, p.hasMin = v, true
	return p
}

// Max sets the highest accepted value.
func (p IntegerParser) Max(v int) IntegerParser {
	p.max, p.hasMax = v, true
	return p
}

func (IntegerParser) Kind() string { return "integer" }

func (p IntegerParser) Parse(in *command.Input) (any, error) {
	tok, ok := in.Next()
	if !ok {
		return nil, in.Errorf("expected an integer")
	}
	v, err := strconv.Atoi(tok.Text)
	if err != nil {
		return nil, in.ErrorfAt(tok, "expected an integer, got %q", tok.Text)
	}
	if p.hasMin && v < p.min {
		return nil, in.ErrorfAt(tok, "%d is below the minimum of %d", v, p.min)
	}
	if p.hasMax && v > p.max {
		return nil, in.ErrorfAt(tok, "%d is above the maximum of %d", v, p.max)
	}
	return v, nil
}

func (IntegerParser) Suggest(string, command.Sender) []string { return nil }

// FloatParser accepts a decimal number, optionally bounded.
type FloatParser struct {
	min, max       float64
	hasMin, hasMax bool
}

// Float matches a decimal number and binds it as a float64.
func Float() FloatParser { return FloatParser{} }

// Min sets the lowest accepted value.
func (p FloatParser) Min(v float64) FloatParser {
	p.min, p.hasMin = v, true
	return p
}

// Max sets the highest accepted value.
func (p FloatParser) Max(v float64) FloatParser {
	p.max, p.hasMax = v, true
	return p
}

func (FloatParser) Kind() string { return "float" }

func (p FloatParser) Parse(in *command.Input) (any, error) {
	tok, ok := in.Next()
	if !ok {
		return nil, in.Errorf("expected a number")
	}
	v, err := strconv.ParseFloat(tok.Text, 64)
	if err != nil {
		return nil, in.ErrorfAt(tok, "expected a number, got %q", tok.Text)
	}
	if p.hasMin && v < p.min {
		return nil, in.ErrorfAt(tok, "%g is below the minimum of %g", v, p.min)
	}
	if p.hasMax && v > p.max {
		return nil, in.ErrorfAt(tok, "%g is above the maximum of %g", v, p.max)
	}
	return v, nil
}

func (FloatParser) Suggest(string, command.Sender) []string { return nil }

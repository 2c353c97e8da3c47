// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// position.go - Coordinate kinds with relative (~) notation.

package args

import (
	"math"
	"strconv"

	"github.com/jeranaias/forgecraft/internal/command"
	"github.com/jeranaias/forgecraft/internal/world"
)

// Coord is one coordinate, absolute or relative to the sender.
type Coord struct {
	Rel bool
	Val float64
}

// Resolve applies the coordinate to base.
func (c Coord) Resolve(base float64) float64 {
	if c.Rel {
		return base + c.Val
	}
	return c.Val
}

func parseCoord(in *command.Input, wantInt bool) (Coord, error) {
	tok, ok := in.Next()
	if !ok {
		return Coord{}, in.Errorf("expected a coordinate")
	}
	text := tok.Text
	c := Coord{}
	if len(text) > 0 && text[0] == '~' {
		c.Rel = true
		text = text[1:]
		if text == "" {
			return c, nil
		}
	}
	if wantInt {
		v, err := strconv.Atoi(text)
		if err != nil {
			return Coord{}, in.ErrorfAt(tok, "expected an integer coordinate, got %q", tok.Text)
		}
		c.Val = float64(v)
		return c, nil
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return Coord{}, in.ErrorfAt(tok, "expected a coordinate, got %q", tok.Text)
	}
	c.Val = v
	return c, nil
}

// Position is a parsed x y z triple.
type Position struct {
	X, Y, Z Coord
}

// Resolve applies the triple to the sender's position.
func (p Position) Resolve(base world.Pos) world.Pos {
	return world.Pos{
		X: p.X.Resolve(base.X),
		Y: p.Y.Resolve(base.Y),
		Z: p.Z.Resolve(base.Z),
	}
}

// Relative reports whether any coordinate is sender-relative.
func (p Position) Relative() bool {
	return p.X.Rel || p.Y.Rel || p.Z.Rel
}

// GetPosition returns the named argument as a Position.
func GetPosition(a command.ConsumedArgs, name string) (Position, bool) {
	v, ok := a[name].(Position)
	return v, ok
}

// PositionParser accepts three coordinates, ~ notation included.
type PositionParser struct{}

// Vec3 matches x y z as three tokens and binds a Position.
func Vec3() PositionParser { return PositionParser{} }

func (PositionParser) Kind() string { return "position" }

func (PositionParser) Parse(in *command.Input) (any, error) {
	var p Position
	var err error
	if p.X, err = parseCoord(in, false); err != nil {
		return nil, err
	}
	if p.Y, err = parseCoord(in, false); err != nil {
		return nil, err
	}
	if p.Z, err = parseCoord(in, false); err != nil {
		return nil, err
	}
	return p, nil
}

func (PositionParser) Suggest(string, command.Sender) []string {
	return []string{"~", "~ ~ ~"}
}

// BlockPosition is a parsed block coordinate triple.
type BlockPosition struct {
	X, Y, Z Coord
}

// Resolve applies the triple to the block the sender stands in.
func (p BlockPosition) Resolve(base world.BlockPos) world.BlockPos {
	return world.BlockPos{
		X: int(math.Floor(p.X.Resolve(float64(base.X)))),
		Y: int(math.Floor(p.Y.Resolve(float64(base.Y)))),
		Z: int(math.Floor(p.Z.Resolve(float64(base.Z)))),
	}
}

// Relative reports whether any coordinate is sender-relative.
func (p BlockPosition) Relative() bool {
	return p.X.Rel || p.Y.Rel || p.Z.Rel
}

// GetBlockPos returns the named argument as a BlockPosition.
func GetBlockPos(a command.ConsumedArgs, name string) (BlockPosition, bool) {
	v, ok := a[name].(BlockPosition)
	return v, ok
}

// BlockPosParser accepts three whole-number coordinates.
type BlockPosParser struct{}

// BlockPos matches x y z as three integer tokens and binds a
// BlockPosition.
func BlockPos() BlockPosParser { return BlockPosParser{} }

func (BlockPosParser) Kind() string { return "block position" }

func (BlockPosParser) Parse(in *command.Input) (any, error) {
	var p BlockPosition
	var err error
	if p.X, err = parseCoord(in, true); err != nil {
		return nil, err
	}
	if p.Y, err = parseCoord(in, true); err != nil {
		return nil, err
	}
	if p.Z, err = parseCoord(in, true); err != nil {
		return nil, err
	}
	return p, nil
}

func (BlockPosParser) Suggest(string, command.Sender) []string {
	return []string{"~", "~ ~ ~"}
}

// RotationSpec is a parsed yaw pitch pair.
type RotationSpec struct {
	Yaw, Pitch Coord
}

// Resolve applies the pair to the sender's rotation.
func (r RotationSpec) Resolve(base world.Rotation) world.Rotation {
	return world.Rotation{
		Yaw:   float32(r.Yaw.Resolve(float64(base.Yaw))),
		Pitch: float32(r.Pitch.Resolve(float64(base.Pitch))),
	}
}

// GetRotation returns the named argument as a RotationSpec.
func GetRotation(a command.ConsumedArgs, name string) (RotationSpec, bool) {
	v, ok := a[name].(RotationSpec)
	return v, ok
}

// RotationParser accepts yaw and pitch, ~ notation included.
type RotationParser struct{}

// Rotation matches yaw pitch as two tokens and binds a RotationSpec.
func Rotation() RotationParser { return RotationParser{} }

func (RotationParser) Kind() string { return "rotation" }

func (RotationParser) Parse(in *command.Input) (any, error) {
	var r RotationSpec
	var err error
	if r.Yaw, err = parseCoord(in, false); err != nil {
		return nil, err
	}
	if r.Pitch, err = parseCoord(in, false); err != nil {
		return nil, err
	}
	return r, nil
}

func (RotationParser) Suggest(string, command.Sender) []string {
	return []string{"~", "~ ~"}
}

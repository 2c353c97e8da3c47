// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// pos.go - Coordinate value types.

package world

import (
	"fmt"
	"math"
)

// Pos is an absolute position in a world.
type Pos struct {
	X, Y, Z float64
}

func (p Pos) String() string {
	return fmt.Sprintf("%.2f, %.2f, %.2f", p.X, p.Y, p.Z)
}

// Block returns the block coordinate containing p.
func (p Pos) Block() BlockPos {
	return BlockPos{
		X: int(math.Floor(p.X)),
		Y: int(math.Floor(p.Y)),
		Z: int(math.Floor(p.Z)),
	}
}

// Dist returns the euclidean distance to q.
func (p Pos) Dist(q Pos) float64 {
	dx, dy, dz := p.X-q.X, p.Y-q.Y, p.Z-q.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// BlockPos is an integer block coordinate.
type BlockPos struct {
	X, Y, Z int
}

func (p BlockPos) String() string {
	return fmt.Sprintf("%d, %d, %d", p.X, p.Y, p.Z)
}

// Center returns the position at the middle of the block.
func (p BlockPos) Center() Pos {
	return Pos{X: float64(p.X) + 0.5, Y: float64(p.Y), Z: float64(p.Z) + 0.5}
}

// Rotation is a view direction in degrees. Yaw 0 faces south; pitch
// -90 looks straight up.
type Rotation struct {
	Yaw, Pitch float32
}

func (r Rotation) String() string {
	return fmt.Sprintf("%.1f, %.1f", r.Yaw, r.Pitch)
}

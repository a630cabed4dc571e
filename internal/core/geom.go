// Package core provides fundamental types and utilities for the game platform.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import "math"

// GridPosition is a coordinate in grid-cell units.
// Positions are fractional: the paddle moves in sub-cell steps.
type GridPosition struct {
	X, Y float64
}

// Pos creates a grid position.
func Pos(x, y float64) GridPosition {
	return GridPosition{X: x, Y: y}
}

// Delta returns the per-axis absolute distance to another position.
func (p GridPosition) Delta(other GridPosition) (dx, dy float64) {
	return math.Abs(p.X - other.X), math.Abs(p.Y - other.Y)
}

// Cell returns the position truncated to integer cell coordinates.
func (p GridPosition) Cell() (int, int) {
	return int(math.Floor(p.X)), int(math.Floor(p.Y))
}

// Vec2 is a two-component vector used for velocities and sub-cell offsets.
type Vec2 struct {
	X, Y float64
}

// Rect represents an axis-aligned rectangle on the screen.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

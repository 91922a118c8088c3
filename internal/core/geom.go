// Package core provides fundamental types and utilities for the game platform.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import (
	"math"
	"math/rand"
)

// Rect represents an integer rectangle in screen cells.
// Used for layout of overlays and boxes on a Screen.
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

// Box is an axis-aligned bounding box in world units.
// Y grows downward, matching screen space.
type Box struct {
	X, Y float64 // Top-left corner
	W, H float64 // Width and height
}

// NewBox creates a box from position and size.
func NewBox(x, y, w, h float64) Box {
	return Box{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (b Box) Right() float64 {
	return b.X + b.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (b Box) Bottom() float64 {
	return b.Y + b.H
}

// Center returns the center point of the box.
func (b Box) Center() (float64, float64) {
	return b.X + b.W/2, b.Y + b.H/2
}

// Valid reports whether the box has a positive, finite area.
func (b Box) Valid() bool {
	if b.W <= 0 || b.H <= 0 {
		return false
	}
	return !math.IsNaN(b.X) && !math.IsNaN(b.Y) && !math.IsInf(b.W, 0) && !math.IsInf(b.H, 0)
}

// Overlaps returns true if the two boxes share interior area.
// Touching edges do not count as overlap.
func (b Box) Overlaps(other Box) bool {
	if b.X >= other.Right() || other.X >= b.Right() {
		return false
	}
	if b.Y >= other.Bottom() || other.Y >= b.Bottom() {
		return false
	}
	return true
}

// OverlapsX reports horizontal overlap only, with each side of other shrunk by inset.
func (b Box) OverlapsX(other Box, inset float64) bool {
	return b.Right() > other.X+inset && b.X < other.Right()-inset
}

// Span is a half-open horizontal interval [Start, End).
type Span struct {
	Start, End float64
}

// Width returns the length of the span.
func (s Span) Width() float64 {
	return s.End - s.Start
}

// Overlaps reports whether two spans share any length.
func (s Span) Overlaps(other Span) bool {
	return s.Start < other.End && other.Start < s.End
}

// Contains reports whether x lies inside the span.
func (s Span) Contains(x float64) bool {
	return x >= s.Start && x < s.End
}

// Dist returns the Euclidean distance between two points.
func Dist(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x1-x2, y1-y2)
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
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

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// RandInt returns a uniformly distributed integer in [a, b].
// Bounds may be given in either order.
func RandInt(rng *rand.Rand, a, b int) int {
	if b < a {
		a, b = b, a
	}
	return a + rng.Intn(b-a+1)
}

// RandRange returns a uniformly distributed float64 in [a, b).
func RandRange(rng *rand.Rand, a, b float64) float64 {
	return a + rng.Float64()*(b-a)
}

// Shuffle permutes items in place (Fisher-Yates).
func Shuffle[T any](rng *rand.Rand, items []T) {
	for i := len(items) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}

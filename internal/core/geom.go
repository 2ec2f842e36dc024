// Package core provides fundamental types and utilities shared by the engine
// and the platform layer. It has no external dependencies (especially no
// Bubble Tea) so that game logic stays pure and testable.
package core

// Span is a closed one-dimensional interval [Lo, Hi] in field pixels.
// The engine works on spans instead of rectangles because the bird band and
// the pipe gap are tested axis by axis.
type Span struct {
	Lo, Hi float64
}

// NewSpan creates a span starting at lo with the given length.
func NewSpan(lo, length float64) Span {
	return Span{Lo: lo, Hi: lo + length}
}

// Length returns Hi - Lo.
func (s Span) Length() float64 {
	return s.Hi - s.Lo
}

// Overlaps reports whether the interiors of two spans intersect.
// Spans that only touch at an endpoint do not overlap.
func (s Span) Overlaps(other Span) bool {
	return s.Lo < other.Hi && other.Lo < s.Hi
}

// Within reports whether s lies entirely inside outer, endpoints included.
func (s Span) Within(outer Span) bool {
	return s.Lo >= outer.Lo && s.Hi <= outer.Hi
}

// Rect represents an axis-aligned box in screen cells.
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

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Clamp restricts a value to be within [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// ClampF restricts a float64 value to be within [lo, hi].
func ClampF(val, lo, hi float64) float64 {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

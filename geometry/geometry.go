// Package geometry provides the rectangle and point arithmetic shared by the
// window manager core: monitor lookup by point, and the small helpers the
// layout engines build on.
package geometry

// Point is a single coordinate pair, e.g. a pointer position.
type Point struct {
	X int
	Y int
}

// Geometry is an axis-aligned rectangle in root-window coordinates.
type Geometry struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Contains reports whether p lies within g (inclusive of the top/left edge,
// exclusive of the bottom/right edge).
func (g Geometry) Contains(p Point) bool {
	return p.X >= g.X && p.X < g.X+g.Width && p.Y >= g.Y && p.Y < g.Y+g.Height
}

// MonitorAt returns the index of the first rectangle in heads that contains
// p, or fallback if none does. Used to resolve which monitor a pointer
// position or a dragged window's target point belongs to.
func MonitorAt(heads []Geometry, p Point, fallback int) int {
	for i, h := range heads {
		if h.Contains(p) {
			return i
		}
	}
	return fallback
}

func MinInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func MaxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

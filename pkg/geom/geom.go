package geom

import "math"

// Point is a 2D coordinate in the Y-down SVG coordinate system.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	X, Y, Width, Height float64
}

// Right returns the rectangle's right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the rectangle's bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Center returns the rectangle's midpoint.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// IsZero reports whether the rectangle has no area and sits at the origin.
func (r Rect) IsZero() bool {
	return r.X == 0 && r.Y == 0 && r.Width == 0 && r.Height == 0
}

// Intersects reports whether two rectangles overlap with positive area.
// Touching edges do not count as overlap.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Contains reports whether p lies within r, inclusive of all edges.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.Right() && p.Y >= r.Y && p.Y <= r.Bottom()
}

// ContainsRect reports whether o lies entirely within r, inclusive of edges.
func (r Rect) ContainsRect(o Rect) bool {
	return o.X >= r.X && o.Right() <= r.Right() && o.Y >= r.Y && o.Bottom() <= r.Bottom()
}

// Union returns the smallest rectangle enclosing both r and o. A zero
// rectangle operand is treated as absent and the other operand is returned.
func (r Rect) Union(o Rect) Rect {
	if r.IsZero() {
		return o
	}
	if o.IsZero() {
		return r
	}
	minX := math.Min(r.X, o.X)
	minY := math.Min(r.Y, o.Y)
	maxX := math.Max(r.Right(), o.Right())
	maxY := math.Max(r.Bottom(), o.Bottom())
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// ExpandToInclude returns the smallest rectangle enclosing r and p. As in
// Union, a zero r is treated as absent: the result is then the empty
// rectangle at p.
func (r Rect) ExpandToInclude(p Point) Rect {
	if r.IsZero() {
		return Rect{X: p.X, Y: p.Y, Width: 0, Height: 0}
	}
	minX := math.Min(r.X, p.X)
	minY := math.Min(r.Y, p.Y)
	maxX := math.Max(r.Right(), p.X)
	maxY := math.Max(r.Bottom(), p.Y)
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// UnionAll folds Union over a slice of rectangles, starting from a zero rect.
func UnionAll(rects []Rect) Rect {
	var acc Rect
	for _, r := range rects {
		acc = acc.Union(r)
	}
	return acc
}

package layout

import (
	"math"

	"github.com/illustrate/illustrate/pkg/geom"
)

// RotationTransform is a 2D rotation around a center point, applied during
// the rotation phase of two-phase constraint solving (spec §3 phase C).
// Bounds are transformed with a loose AABB: rotate the four corners of the
// original box and take the AABB of the rotated corners, matching SVG/CSS
// transform behaviour rather than computing a tight bound.
type RotationTransform struct {
	AngleDegrees float64
	Center       geom.Point
}

// NewRotationTransform builds a transform for angleDegrees around center.
func NewRotationTransform(angleDegrees float64, center geom.Point) RotationTransform {
	return RotationTransform{AngleDegrees: angleDegrees, Center: center}
}

// IsIdentity reports whether this transform is a 0° no-op.
func (t RotationTransform) IsIdentity() bool {
	return math.Abs(t.AngleDegrees) < 1e-12
}

// TransformPoint rotates p clockwise around Center by AngleDegrees, using
// the SVG (Y-down) convention.
func (t RotationTransform) TransformPoint(p geom.Point) geom.Point {
	if t.IsIdentity() {
		return p
	}
	rad := t.AngleDegrees * math.Pi / 180
	cosA, sinA := math.Cos(rad), math.Sin(rad)
	dx, dy := p.X-t.Center.X, p.Y-t.Center.Y
	return geom.Point{
		X: t.Center.X + dx*cosA - dy*sinA,
		Y: t.Center.Y + dx*sinA + dy*cosA,
	}
}

// TransformBounds computes the loose post-rotation AABB of bounds.
func (t RotationTransform) TransformBounds(bounds geom.Rect) geom.Rect {
	if t.IsIdentity() {
		return bounds
	}
	corners := [4]geom.Point{
		{X: bounds.X, Y: bounds.Y},
		{X: bounds.X + bounds.Width, Y: bounds.Y},
		{X: bounds.X, Y: bounds.Y + bounds.Height},
		{X: bounds.X + bounds.Width, Y: bounds.Y + bounds.Height},
	}
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, c := range corners {
		r := t.TransformPoint(c)
		minX, maxX = math.Min(minX, r.X), math.Max(maxX, r.X)
		minY, maxY = math.Min(minY, r.Y), math.Max(maxY, r.Y)
	}
	return geom.Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// TransformDirection rotates dir by AngleDegrees.
func (t RotationTransform) TransformDirection(dir AnchorDirection) AnchorDirection {
	return FromDegrees(dir.ToDegrees() + t.AngleDegrees)
}

// TransformAnchor rotates both the position and outward direction of a.
func (t RotationTransform) TransformAnchor(a Anchor) Anchor {
	if t.IsIdentity() {
		return a
	}
	return Anchor{
		Name:      a.Name,
		Position:  t.TransformPoint(a.Position),
		Direction: t.TransformDirection(a.Direction),
	}
}

package routing

import (
	"math"

	"github.com/illustrate/illustrate/pkg/geom"
)

// Edge names one side of an element's bounding box.
type Edge int

const (
	Top Edge = iota
	Bottom
	Left
	Right
)

// AttachmentPoint returns the midpoint of the named edge, grounded on
// original_source/src/layout/routing.rs's attachment_point.
func AttachmentPoint(bounds geom.Rect, edge Edge) geom.Point {
	switch edge {
	case Top:
		return geom.Point{X: bounds.X + bounds.Width/2, Y: bounds.Y}
	case Bottom:
		return geom.Point{X: bounds.X + bounds.Width/2, Y: bounds.Bottom()}
	case Left:
		return geom.Point{X: bounds.X, Y: bounds.Y + bounds.Height/2}
	default: // Right
		return geom.Point{X: bounds.Right(), Y: bounds.Y + bounds.Height/2}
	}
}

// BoundaryPointToward finds where a ray from bounds' center toward target
// crosses the element's boundary, treating near-square small boxes as
// circles (the heuristic a generated circle shape's bounding box satisfies)
// and everything else as a rectangle.
func BoundaryPointToward(bounds geom.Rect, target geom.Point) geom.Point {
	center := bounds.Center()
	dx := target.X - center.X
	dy := target.Y - center.Y

	if math.Abs(dx) < 0.001 && math.Abs(dy) < 0.001 {
		return center
	}

	isCircle := math.Abs(bounds.Width-bounds.Height) < 1.0 && bounds.Width < 20.0
	if isCircle {
		radius := bounds.Width / 2
		dist := math.Sqrt(dx*dx + dy*dy)
		return geom.Point{X: center.X + dx/dist*radius, Y: center.Y + dy/dist*radius}
	}

	halfW, halfH := bounds.Width/2, bounds.Height/2
	tLeft, tRight, tTop, tBottom := math.MaxFloat64, math.MaxFloat64, math.MaxFloat64, math.MaxFloat64
	if dx < -0.001 {
		tLeft = -halfW / dx
	}
	if dx > 0.001 {
		tRight = halfW / dx
	}
	if dy < -0.001 {
		tTop = -halfH / dy
	}
	if dy > 0.001 {
		tBottom = halfH / dy
	}
	t := math.Min(math.Min(tLeft, tRight), math.Min(tTop, tBottom))
	if t == math.MaxFloat64 {
		return center
	}
	return geom.Point{X: center.X + dx*t, Y: center.Y + dy*t}
}

// NearestEdge reports which edge of bounds a boundary point sits closest
// to, used to classify an auto-picked attachment point for orthogonal
// routing (which needs to know the approach direction, not just the point).
func NearestEdge(bounds geom.Rect, p geom.Point) Edge {
	d := map[Edge]float64{
		Top:    math.Abs(p.Y - bounds.Y),
		Bottom: math.Abs(p.Y - bounds.Bottom()),
		Left:   math.Abs(p.X - bounds.X),
		Right:  math.Abs(p.X - bounds.Right()),
	}
	best := Top
	for _, e := range []Edge{Bottom, Left, Right} {
		if d[e] < d[best] {
			best = e
		}
	}
	return best
}

// EdgeByName maps an anchor/edge name used in source documents ("top",
// "bottom", "left", "right") to an Edge, grounded on
// cardinal_direction_for_anchor's direction-to-axis collapse.
func EdgeByName(name string) (Edge, bool) {
	switch name {
	case "top":
		return Top, true
	case "bottom":
		return Bottom, true
	case "left":
		return Left, true
	case "right":
		return Right, true
	default:
		return 0, false
	}
}

func isHorizontal(e Edge) bool { return e == Left || e == Right }

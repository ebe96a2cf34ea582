package routing

import (
	"math"

	"github.com/illustrate/illustrate/pkg/geom"
)

// Mode selects how a connection's path bends between its two endpoints.
type Mode int

const (
	Orthogonal Mode = iota
	Direct
	Curved
)

// bendClearance is how far sCurve moves the middle segment of an
// auto-picked orthogonal route off the line through two collinear
// attachment points, so the route still produces a real bend instead of
// collapsing to a straight line. Explicit-edge and curved routes do not
// use it.
const bendClearance = 12.0

// Route computes the full point sequence for a connection from fromBounds
// to toBounds. fromEdge/toEdge name an explicit anchor side, or -1 to pick
// automatically via BoundaryPointToward. vias are user-specified waypoints
// the path must pass through, in order.
func Route(mode Mode, fromBounds, toBounds geom.Rect, fromEdge, toEdge int, vias []geom.Point) []geom.Point {
	start := endpoint(fromBounds, fromEdge, firstTarget(toBounds, vias))
	end := endpoint(toBounds, toEdge, lastTarget(fromBounds, vias))
	startNormal := outwardNormal(fromBounds.Center(), start)
	endNormal := outwardNormal(toBounds.Center(), end)
	return routeBetween(mode, start, end, startNormal, endNormal, fromEdge, toEdge, vias)
}

// RouteWithEndpoints routes between two already-known points and known
// outward normals, used when a connection names an explicit declared
// anchor rather than a cardinal edge: the anchor's materialized position
// and direction vector stand in for a bounds box and an edge pick.
func RouteWithEndpoints(mode Mode, start, end, startNormal, endNormal geom.Point, vias []geom.Point) []geom.Point {
	return routeBetween(mode, start, end, startNormal, endNormal, -1, -1, vias)
}

func routeBetween(mode Mode, start, end, startNormal, endNormal geom.Point, fromEdge, toEdge int, vias []geom.Point) []geom.Point {
	switch mode {
	case Direct:
		return withVias(start, end, vias)
	case Curved:
		return curvedPath(start, end, startNormal, endNormal, vias)
	default:
		return orthogonalPath(start, end, fromEdge, toEdge, vias)
	}
}

func firstTarget(toBounds geom.Rect, vias []geom.Point) geom.Point {
	if len(vias) > 0 {
		return vias[0]
	}
	return toBounds.Center()
}

func lastTarget(fromBounds geom.Rect, vias []geom.Point) geom.Point {
	if len(vias) > 0 {
		return vias[len(vias)-1]
	}
	return fromBounds.Center()
}

func endpoint(bounds geom.Rect, edge int, target geom.Point) geom.Point {
	if e, ok := edgeFromInt(edge); ok {
		return AttachmentPoint(bounds, e)
	}
	return BoundaryPointToward(bounds, target)
}

// outwardNormal returns the unit vector pointing from center to point,
// defaulting to rightward when the two coincide.
func outwardNormal(center, point geom.Point) geom.Point {
	dx, dy := point.X-center.X, point.Y-center.Y
	dist := math.Hypot(dx, dy)
	if dist < 1e-9 {
		return geom.Point{X: 1, Y: 0}
	}
	return geom.Point{X: dx / dist, Y: dy / dist}
}

func edgeFromInt(edge int) (Edge, bool) {
	if edge < 0 {
		return 0, false
	}
	return Edge(edge), true
}

func withVias(start, end geom.Point, vias []geom.Point) []geom.Point {
	path := make([]geom.Point, 0, len(vias)+2)
	path = append(path, start)
	path = append(path, vias...)
	path = append(path, end)
	return path
}

// orthogonalPath builds an axis-aligned path between start and end. With
// user-specified vias it threads them in sequence with one elbow per leg;
// without vias it has at most two bends. When both endpoints leave on
// edges of the same orientation the path bends at their shared midline (a
// "Z" route, which reduces to a straight line when the endpoints are
// already aligned on the other axis); when edges are auto-picked
// (fromEdge/toEdge both -1, the common case), it falls back to a 3-segment
// S-curve whose middle segment runs along whichever axis has the greater
// endpoint delta, ties breaking toward horizontal.
func orthogonalPath(start, end geom.Point, fromEdge, toEdge int, vias []geom.Point) []geom.Point {
	if len(vias) > 0 {
		path := []geom.Point{start}
		prev := start
		for _, v := range vias {
			path = append(path, elbow(prev, v, fromEdge)...)
			prev = v
		}
		path = append(path, elbow(prev, end, toEdge)...)
		path = append(path, end)
		return dedupe(path)
	}

	fe, fok := edgeFromInt(fromEdge)
	te, tok := edgeFromInt(toEdge)

	switch {
	case fok && tok && isHorizontal(fe) && isHorizontal(te):
		midX := (start.X + end.X) / 2
		return dedupe([]geom.Point{start, {X: midX, Y: start.Y}, {X: midX, Y: end.Y}, end})
	case fok && tok && !isHorizontal(fe) && !isHorizontal(te):
		midY := (start.Y + end.Y) / 2
		return dedupe([]geom.Point{start, {X: start.X, Y: midY}, {X: end.X, Y: midY}, end})
	case fok && isHorizontal(fe):
		return dedupe([]geom.Point{start, {X: end.X, Y: start.Y}, end})
	case fok:
		return dedupe([]geom.Point{start, {X: start.X, Y: end.Y}, end})
	default:
		return dedupe(sCurve(start, end))
	}
}

// sCurve builds the 3-segment auto-pick path spec §4.7 describes: the
// middle segment's axis is whichever endpoint delta is greater, ties
// breaking toward horizontal. When endpoints are already collinear on
// the non-dominant axis, the midline is nudged by bendClearance so the
// path still bends twice instead of degenerating to a straight line.
func sCurve(start, end geom.Point) []geom.Point {
	dx, dy := math.Abs(end.X-start.X), math.Abs(end.Y-start.Y)
	if dx >= dy {
		midY := (start.Y + end.Y) / 2
		if dy < 1e-6 {
			midY = start.Y - bendClearance
		}
		return []geom.Point{start, {X: start.X, Y: midY}, {X: end.X, Y: midY}, end}
	}
	midX := (start.X + end.X) / 2
	if dx < 1e-6 {
		midX = start.X - bendClearance
	}
	return []geom.Point{start, {X: midX, Y: start.Y}, {X: midX, Y: end.Y}, end}
}

func elbow(from, to geom.Point, fromEdge int) []geom.Point {
	if e, ok := edgeFromInt(fromEdge); ok && isHorizontal(e) {
		return []geom.Point{{X: to.X, Y: from.Y}}
	}
	return []geom.Point{{X: from.X, Y: to.Y}}
}

func dedupe(pts []geom.Point) []geom.Point {
	out := pts[:0]
	for i, p := range pts {
		if i > 0 && p == out[len(out)-1] {
			continue
		}
		out = append(out, p)
	}
	return out
}

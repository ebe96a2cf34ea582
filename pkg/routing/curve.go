package routing

import (
	"math"

	"github.com/illustrate/illustrate/pkg/geom"
)

// curveSamples is how many points approximate each Bezier segment in the
// returned polyline; ConnectionLayout.Path has no notion of a control
// point, so curves are densely sampled rather than represented exactly.
const curveSamples = 16

// controlDistanceRatio is the fraction of the endpoint separation used to
// place a single-segment curve's control points along each attachment's
// outward normal, per spec §4.7.
const controlDistanceRatio = 0.25

// curvedPath implements spec §4.7's curved connection mode: a single cubic
// Bezier when no via is given, a single quadratic (the via as its control
// point) with exactly one via, and a Catmull-Rom-derived chain of cubics
// with smooth tangent continuation for two or more vias.
func curvedPath(start, end, startNormal, endNormal geom.Point, vias []geom.Point) []geom.Point {
	switch len(vias) {
	case 0:
		dist := math.Hypot(end.X-start.X, end.Y-start.Y) * controlDistanceRatio
		c1 := geom.Point{X: start.X + startNormal.X*dist, Y: start.Y + startNormal.Y*dist}
		c2 := geom.Point{X: end.X + endNormal.X*dist, Y: end.Y + endNormal.Y*dist}
		return sampleCubic(start, c1, c2, end, curveSamples)
	case 1:
		return sampleQuadratic(start, vias[0], end, curveSamples)
	default:
		return smoothChain(start, vias, end)
	}
}

func sampleQuadratic(p0, p1, p2 geom.Point, n int) []geom.Point {
	pts := make([]geom.Point, 0, n+1)
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		u := 1 - t
		pts = append(pts, geom.Point{
			X: u*u*p0.X + 2*u*t*p1.X + t*t*p2.X,
			Y: u*u*p0.Y + 2*u*t*p1.Y + t*t*p2.Y,
		})
	}
	return pts
}

func sampleCubic(p0, p1, p2, p3 geom.Point, n int) []geom.Point {
	pts := make([]geom.Point, 0, n+1)
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		u := 1 - t
		a, b, c, d := u*u*u, 3*u*u*t, 3*u*t*t, t*t*t
		pts = append(pts, geom.Point{
			X: a*p0.X + b*p1.X + c*p2.X + d*p3.X,
			Y: a*p0.Y + b*p1.Y + c*p2.Y + d*p3.Y,
		})
	}
	return pts
}

// smoothChain threads a cubic Bezier through start, every via, and end,
// deriving each interior point's tangent from its neighbours (a
// Catmull-Rom construction) so consecutive segments meet with continuous
// direction rather than a visible kink at each via.
func smoothChain(start geom.Point, vias []geom.Point, end geom.Point) []geom.Point {
	pts := append([]geom.Point{start}, vias...)
	pts = append(pts, end)

	tangent := func(i int) geom.Point {
		switch {
		case i == 0:
			return geom.Point{X: pts[1].X - pts[0].X, Y: pts[1].Y - pts[0].Y}
		case i == len(pts)-1:
			return geom.Point{X: pts[i].X - pts[i-1].X, Y: pts[i].Y - pts[i-1].Y}
		default:
			return geom.Point{X: (pts[i+1].X - pts[i-1].X) / 2, Y: (pts[i+1].Y - pts[i-1].Y) / 2}
		}
	}

	var path []geom.Point
	for i := 0; i < len(pts)-1; i++ {
		p0, p3 := pts[i], pts[i+1]
		t0, t1 := tangent(i), tangent(i+1)
		c1 := geom.Point{X: p0.X + t0.X/3, Y: p0.Y + t0.Y/3}
		c2 := geom.Point{X: p3.X - t1.X/3, Y: p3.Y - t1.Y/3}
		segment := sampleCubic(p0, c1, c2, p3, curveSamples)
		if i > 0 {
			segment = segment[1:] // drop the duplicate shared endpoint
		}
		path = append(path, segment...)
	}
	return path
}

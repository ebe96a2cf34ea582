package routing

import (
	"math"
	"testing"

	"github.com/illustrate/illustrate/pkg/geom"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func TestAttachmentPointEdges(t *testing.T) {
	b := geom.Rect{X: 0, Y: 0, Width: 100, Height: 50}
	cases := []struct {
		edge Edge
		want geom.Point
	}{
		{Top, geom.Point{X: 50, Y: 0}},
		{Bottom, geom.Point{X: 50, Y: 50}},
		{Left, geom.Point{X: 0, Y: 25}},
		{Right, geom.Point{X: 100, Y: 25}},
	}
	for _, c := range cases {
		got := AttachmentPoint(b, c.edge)
		if !approx(got.X, c.want.X) || !approx(got.Y, c.want.Y) {
			t.Errorf("edge %v: got %+v, want %+v", c.edge, got, c.want)
		}
	}
}

func TestBoundaryPointTowardRectangle(t *testing.T) {
	b := geom.Rect{X: 0, Y: 0, Width: 100, Height: 50}
	got := BoundaryPointToward(b, geom.Point{X: 200, Y: 25})
	want := geom.Point{X: 100, Y: 25}
	if !approx(got.X, want.X) || !approx(got.Y, want.Y) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestBoundaryPointTowardCircle(t *testing.T) {
	b := geom.Rect{X: 0, Y: 0, Width: 10, Height: 10}
	got := BoundaryPointToward(b, geom.Point{X: 100, Y: 5})
	want := geom.Point{X: 10, Y: 5}
	if !approx(got.X, want.X) || !approx(got.Y, want.Y) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestRouteOrthogonalSameOrientationBends(t *testing.T) {
	from := geom.Rect{X: 0, Y: 0, Width: 40, Height: 40}
	to := geom.Rect{X: 200, Y: 100, Width: 40, Height: 40}
	path := Route(Orthogonal, from, to, int(Right), int(Left), nil)
	if len(path) != 4 {
		t.Fatalf("expected a 4-point Z route, got %v", path)
	}
	if path[0].X != 40 || path[3].X != 200 {
		t.Errorf("unexpected endpoints: %+v", path)
	}
}

func TestRouteDirectIsTwoPoints(t *testing.T) {
	from := geom.Rect{X: 0, Y: 0, Width: 40, Height: 40}
	to := geom.Rect{X: 200, Y: 200, Width: 40, Height: 40}
	path := Route(Direct, from, to, -1, -1, nil)
	if len(path) != 2 {
		t.Fatalf("expected 2 points, got %d", len(path))
	}
}

func TestRouteOrthogonalAutoPickHorizontalSeparation(t *testing.T) {
	from := geom.Rect{X: 0, Y: 0, Width: 40, Height: 40}
	to := geom.Rect{X: 240, Y: 0, Width: 40, Height: 40}
	path := Route(Orthogonal, from, to, -1, -1, nil)
	if len(path) != 4 {
		t.Fatalf("expected a 3-segment S-curve (4 points), got %v", path)
	}
	if path[1].Y != path[2].Y {
		t.Errorf("expected the middle segment to be horizontal, got %+v", path)
	}
	if path[1].Y == path[0].Y {
		t.Errorf("expected the collinear endpoints to still produce a real bend, got %+v", path)
	}
}

func TestRouteOrthogonalAutoPickVerticalSeparation(t *testing.T) {
	from := geom.Rect{X: 0, Y: 0, Width: 40, Height: 40}
	to := geom.Rect{X: 0, Y: 240, Width: 40, Height: 40}
	path := Route(Orthogonal, from, to, -1, -1, nil)
	if len(path) != 4 {
		t.Fatalf("expected a 3-segment S-curve (4 points), got %v", path)
	}
	if path[1].X != path[2].X {
		t.Errorf("expected the middle segment to be vertical, got %+v", path)
	}
}

func TestRouteCurvedSingleSegmentIsNotAStraightLine(t *testing.T) {
	from := geom.Rect{X: 0, Y: 0, Width: 40, Height: 40}
	to := geom.Rect{X: 200, Y: 0, Width: 40, Height: 40}
	// Both attachments face up, so the control points sit above the chord.
	path := Route(Curved, from, to, int(Top), int(Top), nil)
	if len(path) < 3 {
		t.Fatalf("expected a densely sampled curve, got %d points", len(path))
	}
	mid := path[len(path)/2]
	if approx(mid.Y, path[0].Y) {
		t.Errorf("expected the curve to bow away from the straight line, got %+v", path)
	}
}

func TestRouteCurvedWithSingleViaIsQuadratic(t *testing.T) {
	from := geom.Rect{X: 0, Y: 0, Width: 40, Height: 40}
	to := geom.Rect{X: 200, Y: 200, Width: 40, Height: 40}
	via := geom.Point{X: 220, Y: 0}
	path := Route(Curved, from, to, -1, -1, []geom.Point{via})
	if len(path) < 3 {
		t.Fatalf("expected a sampled quadratic curve, got %d points", len(path))
	}
	if !approx(path[0].X, from.Right()) {
		t.Errorf("unexpected start point: %+v", path[0])
	}
}

func TestRouteWithVia(t *testing.T) {
	from := geom.Rect{X: 0, Y: 0, Width: 40, Height: 40}
	to := geom.Rect{X: 200, Y: 200, Width: 40, Height: 40}
	via := geom.Point{X: 100, Y: 0}
	path := Route(Direct, from, to, -1, -1, []geom.Point{via})
	if len(path) != 3 || path[1] != via {
		t.Fatalf("expected via point threaded through path, got %v", path)
	}
}

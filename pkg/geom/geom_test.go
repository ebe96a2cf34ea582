package geom_test

import (
	"testing"

	"github.com/illustrate/illustrate/pkg/geom"
	"pgregory.net/rapid"
)

func TestIntersectsIsStrict(t *testing.T) {
	a := geom.Rect{X: 0, Y: 0, Width: 10, Height: 10}
	touching := geom.Rect{X: 10, Y: 0, Width: 10, Height: 10}
	if a.Intersects(touching) {
		t.Fatalf("touching rectangles should not intersect")
	}
	overlapping := geom.Rect{X: 9, Y: 0, Width: 10, Height: 10}
	if !a.Intersects(overlapping) {
		t.Fatalf("overlapping rectangles should intersect")
	}
}

func TestContainsIsInclusive(t *testing.T) {
	r := geom.Rect{X: 0, Y: 0, Width: 10, Height: 10}
	if !r.Contains(geom.Point{X: 10, Y: 10}) {
		t.Fatalf("boundary point should be contained")
	}
	if r.Contains(geom.Point{X: 10.01, Y: 0}) {
		t.Fatalf("point past boundary should not be contained")
	}
}

func TestUnionOfDisjointRects(t *testing.T) {
	a := geom.Rect{X: 0, Y: 0, Width: 50, Height: 50}
	b := geom.Rect{X: 100, Y: 100, Width: 50, Height: 50}
	got := a.Union(b)
	want := geom.Rect{X: 0, Y: 0, Width: 150, Height: 150}
	if got != want {
		t.Fatalf("got %+v want %+v", got, want)
	}
}

func TestUnionWithZeroRectReturnsOther(t *testing.T) {
	a := geom.Rect{X: 5, Y: 5, Width: 10, Height: 10}
	var zero geom.Rect
	if got := zero.Union(a); got != a {
		t.Fatalf("got %+v want %+v", got, a)
	}
	if got := a.Union(zero); got != a {
		t.Fatalf("got %+v want %+v", got, a)
	}
}

func TestUnionAlwaysContainsOperands(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		a := genRect(rt)
		b := genRect(rt)
		u := a.Union(b)
		if !u.ContainsRect(a) || !u.ContainsRect(b) {
			rt.Fatalf("union %+v does not contain %+v and %+v", u, a, b)
		}
	})
}

func genRect(rt *rapid.T) geom.Rect {
	return geom.Rect{
		X:      rapid.Float64Range(-1000, 1000).Draw(rt, "x"),
		Y:      rapid.Float64Range(-1000, 1000).Draw(rt, "y"),
		Width:  rapid.Float64Range(0, 1000).Draw(rt, "w"),
		Height: rapid.Float64Range(0, 1000).Draw(rt, "h"),
	}
}

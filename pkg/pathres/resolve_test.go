package pathres_test

import (
	"math"
	"testing"

	"github.com/illustrate/illustrate/pkg/ast"
	"github.com/illustrate/illustrate/pkg/geom"
	"github.com/illustrate/illustrate/pkg/pathres"
)

func pt(x, y float64) *ast.Point { return &ast.Point{X: x, Y: y} }

func TestBulgeArcNormalisation(t *testing.T) {
	decl := ast.PathDecl{Commands: []ast.PathCommand{
		{Kind: ast.CmdVertex, Name: "a", Pos: pt(0, 0)},
		{Kind: ast.CmdArcTo, Name: "b", Pos: pt(50, 0), Arc: &ast.ArcParams{Kind: ast.ArcBulge, Bulge: 0.5}},
	}}
	result := pathres.Resolve(decl, geom.Point{})
	if len(result.Segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(result.Segments))
	}
	move := result.Segments[0]
	if move.Kind != pathres.SegMoveTo || !almostEqual(move.End, geom.Point{X: 0, Y: 12.5}) {
		t.Fatalf("expected MoveTo(0,12.5), got %+v", move.End)
	}
	arc := result.Segments[1]
	if arc.Kind != pathres.SegArcTo || !almostEqual(arc.End, geom.Point{X: 50, Y: 12.5}) {
		t.Fatalf("expected ArcTo end (50,12.5), got %+v", arc.End)
	}
}

func TestSmallBulgeDegeneratesToLine(t *testing.T) {
	decl := ast.PathDecl{Commands: []ast.PathCommand{
		{Kind: ast.CmdVertex, Name: "a", Pos: pt(0, 0)},
		{Kind: ast.CmdArcTo, Name: "b", Pos: pt(10, 0), Arc: &ast.ArcParams{Kind: ast.ArcBulge, Bulge: 0.0001}},
	}}
	result := pathres.Resolve(decl, geom.Point{})
	if result.Segments[1].Kind != pathres.SegLineTo {
		t.Fatalf("expected degenerate arc to become a line, got %v", result.Segments[1].Kind)
	}
}

func TestRadiusArcClampsToSemicircle(t *testing.T) {
	decl := ast.PathDecl{Commands: []ast.PathCommand{
		{Kind: ast.CmdVertex, Name: "a", Pos: pt(0, 0)},
		{Kind: ast.CmdArcTo, Name: "b", Pos: pt(100, 0), Arc: &ast.ArcParams{Kind: ast.ArcRadius, Radius: 10, Sweep: ast.SweepClockwise}},
	}}
	result := pathres.Resolve(decl, geom.Point{})
	arc := result.Segments[1]
	if math.Abs(arc.Radius-50) > 1e-9 {
		t.Fatalf("expected clamped radius 50, got %v", arc.Radius)
	}
}

func TestNegativeVertexCoordinatesPreserveAuthorIntent(t *testing.T) {
	decl := ast.PathDecl{Commands: []ast.PathCommand{
		{Kind: ast.CmdVertex, Name: "a", Pos: pt(-10, -5)},
		{Kind: ast.CmdLineTo, Name: "b", Pos: pt(10, 5)},
	}}
	result := pathres.Resolve(decl, geom.Point{})
	if !almostEqual(result.Segments[0].End, geom.Point{X: -10, Y: -5}) {
		t.Fatalf("expected negative coordinates preserved, got %+v", result.Segments[0].End)
	}
}

func TestNormalisationRoundTrip(t *testing.T) {
	decl := ast.PathDecl{Commands: []ast.PathCommand{
		{Kind: ast.CmdVertex, Name: "a", Pos: pt(3, 7)},
		{Kind: ast.CmdLineTo, Name: "b", Pos: pt(20, 2)},
	}}
	origin := geom.Point{X: 100, Y: 200}
	normalized := pathres.Resolve(decl, origin)
	raw := pathres.ResolveWithOptions(decl, geom.Point{}, false)

	dx := normalized.Segments[0].End.X - raw.Segments[0].End.X
	dy := normalized.Segments[0].End.Y - raw.Segments[0].End.Y
	for i, s := range normalized.Segments {
		shifted := geom.Point{X: s.End.X - dx, Y: s.End.Y - dy}
		if !almostEqual(shifted, raw.Segments[i].End) {
			t.Fatalf("segment %d did not round-trip: %+v vs %+v", i, shifted, raw.Segments[i].End)
		}
	}
}

func almostEqual(a, b geom.Point) bool {
	return math.Abs(a.X-b.X) < 1e-6 && math.Abs(a.Y-b.Y) < 1e-6
}

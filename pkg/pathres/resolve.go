package pathres

import (
	"fmt"
	"math"
	"strings"

	"github.com/illustrate/illustrate/pkg/ast"
	"github.com/illustrate/illustrate/pkg/geom"
)

// SegmentKind discriminates the closed set of resolved draw segments.
type SegmentKind int

const (
	SegMoveTo SegmentKind = iota
	SegLineTo
	SegArcTo
	SegQuadraticTo
	SegClose
)

// Segment is one emitted, already-translated drawing instruction.
type Segment struct {
	Kind     SegmentKind
	End      geom.Point
	Radius   float64
	LargeArc bool
	Clockwise bool
	Control  geom.Point
}

// ResolvedPath is the ordered sequence of draw segments produced by
// resolving a path declaration.
type ResolvedPath struct {
	Segments []Segment
}

// ToSVGPath renders the resolved path as an SVG path `d` attribute value.
func (p ResolvedPath) ToSVGPath() string {
	var b strings.Builder
	for _, s := range p.Segments {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		switch s.Kind {
		case SegMoveTo:
			fmt.Fprintf(&b, "M%.2f %.2f", s.End.X, s.End.Y)
		case SegLineTo:
			fmt.Fprintf(&b, "L%.2f %.2f", s.End.X, s.End.Y)
		case SegArcTo:
			sweep := 0
			if s.Clockwise {
				sweep = 1
			}
			large := 0
			if s.LargeArc {
				large = 1
			}
			fmt.Fprintf(&b, "A%.2f %.2f 0 %d %d %.2f %.2f", s.Radius, s.Radius, large, sweep, s.End.X, s.End.Y)
		case SegQuadraticTo:
			fmt.Fprintf(&b, "Q%.2f %.2f %.2f %.2f", s.Control.X, s.Control.Y, s.End.X, s.End.Y)
		case SegClose:
			b.WriteString("Z")
		}
	}
	return b.String()
}

// Bounds folds geom.Rect.ExpandToInclude over every segment's End point
// (a Close segment's End is the zero point), starting from the zero
// rectangle. Arc apexes, curve control points and curve midpoints are not
// included, unlike the normalisation pass's geometry minimum.
func (p ResolvedPath) Bounds() geom.Rect {
	var r geom.Rect
	for _, s := range p.Segments {
		r = r.ExpandToInclude(s.End)
	}
	return r
}

type resolvedCmd struct {
	kind    ast.PathCommandKind
	from    geom.Point
	to      geom.Point
	arc     *ast.ArcParams
	control geom.Point
}

func toGeomPoint(p ast.Point) geom.Point { return geom.Point{X: p.X, Y: p.Y} }

func getOrCreate(c ast.PathCommand, vertices map[string]geom.Point, fallback geom.Point) geom.Point {
	if c.Pos != nil {
		return toGeomPoint(*c.Pos)
	}
	if c.Name != "" {
		if p, ok := vertices[c.Name]; ok {
			return p
		}
	}
	return fallback
}

func buildResolvedCommands(decl ast.PathDecl) []resolvedCmd {
	vertices := map[string]geom.Point{}
	var current, start geom.Point
	first := true
	cmds := make([]resolvedCmd, 0, len(decl.Commands))
	for _, c := range decl.Commands {
		switch c.Kind {
		case ast.CmdVertex:
			pos := getOrCreate(c, vertices, current)
			if c.Name != "" {
				vertices[c.Name] = pos
			}
			current = pos
			if first {
				start = pos
				first = false
			}
			cmds = append(cmds, resolvedCmd{kind: ast.CmdVertex, to: pos})
		case ast.CmdLineTo:
			pos := getOrCreate(c, vertices, current)
			if c.Name != "" {
				vertices[c.Name] = pos
			}
			cmds = append(cmds, resolvedCmd{kind: ast.CmdLineTo, from: current, to: pos})
			current = pos
		case ast.CmdArcTo:
			pos := getOrCreate(c, vertices, current)
			if c.Name != "" {
				vertices[c.Name] = pos
			}
			cmds = append(cmds, resolvedCmd{kind: ast.CmdArcTo, from: current, to: pos, arc: c.Arc})
			current = pos
		case ast.CmdCurveTo:
			pos := getOrCreate(c, vertices, current)
			if c.Name != "" {
				vertices[c.Name] = pos
			}
			var control geom.Point
			if c.Via != nil {
				control = toGeomPoint(*c.Via)
			} else {
				control = defaultControlPoint(current, pos)
			}
			cmds = append(cmds, resolvedCmd{kind: ast.CmdCurveTo, from: current, to: pos, control: control})
			current = pos
		case ast.CmdClose:
			cmds = append(cmds, resolvedCmd{kind: ast.CmdClose, from: current, to: start})
			current = start
		case ast.CmdCloseArc:
			cmds = append(cmds, resolvedCmd{kind: ast.CmdCloseArc, from: current, to: start, arc: c.Arc})
			current = start
		}
	}
	return cmds
}

// defaultControlPoint places the quadratic control point on the
// counter-clockwise perpendicular bisector of the chord, at 25% of the
// chord length.
func defaultControlPoint(from, to geom.Point) geom.Point {
	dx, dy := to.X-from.X, to.Y-from.Y
	length := math.Hypot(dx, dy)
	if length < 1e-9 {
		return from
	}
	mid := geom.Point{X: (from.X + to.X) / 2, Y: (from.Y + to.Y) / 2}
	perpX, perpY := -dy/length, dx/length
	offset := length * 0.25
	return geom.Point{X: mid.X + perpX*offset, Y: mid.Y + perpY*offset}
}

// arcGeometry holds the resolved radius/sweep/large-arc flags plus the arc
// apex, used both for emission and for bounds normalisation.
type arcGeometry struct {
	isLine   bool
	radius   float64
	large    bool
	clockwise bool
	apex     geom.Point
}

func resolveArc(from, to geom.Point, p *ast.ArcParams) arcGeometry {
	dx, dy := to.X-from.X, to.Y-from.Y
	chord := math.Hypot(dx, dy)
	mid := geom.Point{X: (from.X + to.X) / 2, Y: (from.Y + to.Y) / 2}
	if chord < 1e-9 {
		return arcGeometry{isLine: true}
	}
	switch p.Kind {
	case ast.ArcBulge:
		if math.Abs(p.Bulge) < 0.001 {
			return arcGeometry{isLine: true}
		}
		sagitta := math.Abs(p.Bulge) * chord / 2
		radius := (chord*chord + 4*sagitta*sagitta) / (8 * sagitta)
		sign := 1.0
		if p.Bulge < 0 {
			sign = -1.0
		}
		perpX, perpY := dy/chord, -dx/chord
		apex := geom.Point{X: mid.X + perpX*sagitta*sign, Y: mid.Y + perpY*sagitta*sign}
		return arcGeometry{radius: radius, large: false, clockwise: p.Bulge > 0, apex: apex}
	default: // ast.ArcRadius
		radius := p.Radius
		if radius < 0.001 {
			return arcGeometry{isLine: true}
		}
		large := p.LargeArc
		if chord > 2*radius {
			radius = chord / 2
			large = false
		}
		half := chord / 2
		inner := radius*radius - half*half
		if inner < 0 {
			inner = 0
		}
		sagitta := radius - math.Sqrt(inner)
		if large {
			sagitta = radius + math.Sqrt(inner)
		}
		sign := 1.0
		if p.Sweep == ast.SweepCounterClockwise {
			sign = -1.0
		}
		perpX, perpY := dy/chord, -dx/chord
		apex := geom.Point{X: mid.X + perpX*sagitta*sign, Y: mid.Y + perpY*sagitta*sign}
		return arcGeometry{radius: radius, large: large, clockwise: p.Sweep == ast.SweepClockwise, apex: apex}
	}
}

func quadraticMidpoint(from, control, to geom.Point) geom.Point {
	return geom.Point{
		X: 0.25*from.X + 0.5*control.X + 0.25*to.X,
		Y: 0.25*from.Y + 0.5*control.Y + 0.25*to.Y,
	}
}

// computeMinCoords returns the vertex-only minimum and the geometry
// minimum (which also accounts for arc apexes and curve midpoints) per
// axis, following the normalisation rule in spec §4.2.
func computeMinCoords(cmds []resolvedCmd) (vertexMin, geometryMin geom.Point) {
	vertexMin = geom.Point{X: math.Inf(1), Y: math.Inf(1)}
	geometryMin = geom.Point{X: math.Inf(1), Y: math.Inf(1)}
	include := func(min *geom.Point, p geom.Point) {
		if p.X < min.X {
			min.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
	}
	for _, c := range cmds {
		include(&vertexMin, c.to)
		include(&geometryMin, c.to)
		switch c.kind {
		case ast.CmdArcTo, ast.CmdCloseArc:
			geo := resolveArc(c.from, c.to, c.arc)
			if !geo.isLine {
				include(&geometryMin, geo.apex)
			}
		case ast.CmdCurveTo:
			include(&geometryMin, quadraticMidpoint(c.from, c.control, c.to))
		}
	}
	if math.IsInf(vertexMin.X, 1) {
		vertexMin = geom.Point{}
		geometryMin = geom.Point{}
	}
	return vertexMin, geometryMin
}

func normOffset(vertexMin, geometryMin float64) float64 {
	if vertexMin < 0 {
		return 0
	}
	if geometryMin < vertexMin {
		return geometryMin
	}
	return vertexMin
}

// Resolve turns a path declaration into draw segments, normalising
// coordinates so that the result starts at a sensible origin (see
// ResolveWithOptions).
func Resolve(decl ast.PathDecl, origin geom.Point) ResolvedPath {
	return ResolveWithOptions(decl, origin, true)
}

// ResolveWithOptions resolves a path declaration, optionally skipping the
// normalisation pass (normalize=false emits raw authored coordinates
// translated only by origin).
func ResolveWithOptions(decl ast.PathDecl, origin geom.Point, normalize bool) ResolvedPath {
	cmds := buildResolvedCommands(decl)

	translate := origin
	if normalize {
		vertexMin, geometryMin := computeMinCoords(cmds)
		offsetX := normOffset(vertexMin.X, geometryMin.X)
		offsetY := normOffset(vertexMin.Y, geometryMin.Y)
		translate = geom.Point{X: origin.X - offsetX, Y: origin.Y - offsetY}
	}

	apply := func(p geom.Point) geom.Point {
		return geom.Point{X: p.X + translate.X, Y: p.Y + translate.Y}
	}

	var segs []Segment
	for _, c := range cmds {
		switch c.kind {
		case ast.CmdVertex:
			segs = append(segs, Segment{Kind: SegMoveTo, End: apply(c.to)})
		case ast.CmdLineTo:
			segs = append(segs, Segment{Kind: SegLineTo, End: apply(c.to)})
		case ast.CmdArcTo, ast.CmdCloseArc:
			geo := resolveArc(c.from, c.to, c.arc)
			if geo.isLine {
				segs = append(segs, Segment{Kind: SegLineTo, End: apply(c.to)})
			} else {
				segs = append(segs, Segment{
					Kind: SegArcTo, End: apply(c.to), Radius: geo.radius,
					LargeArc: geo.large, Clockwise: geo.clockwise,
				})
			}
			if c.kind == ast.CmdCloseArc {
				segs = append(segs, Segment{Kind: SegClose})
			}
		case ast.CmdCurveTo:
			segs = append(segs, Segment{Kind: SegQuadraticTo, End: apply(c.to), Control: apply(c.control)})
		case ast.CmdClose:
			segs = append(segs, Segment{Kind: SegClose})
		}
	}
	return ResolvedPath{Segments: segs}
}

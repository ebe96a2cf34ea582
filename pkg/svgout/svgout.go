package svgout

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/illustrate/illustrate/pkg/ast"
	"github.com/illustrate/illustrate/pkg/geom"
	"github.com/illustrate/illustrate/pkg/layout"
	"github.com/illustrate/illustrate/pkg/lint"
)

// Render serialises a computed layout into a complete SVG document. The
// viewBox is the result's overall bounds expanded by cfg.ViewboxPadding on
// every side; warnings, if any, are emitted as leading SVG comments rather
// than dropped, so a rendered file still carries its own lint findings.
func Render(result *layout.Result, warnings []lint.Warning, cfg layout.Config) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("svgout: result cannot be nil")
	}

	pad := cfg.ViewboxPadding
	b := result.Bounds
	minX, minY := b.X-pad, b.Y-pad
	w, h := b.Width+2*pad, b.Height+2*pad
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}

	buf := new(bytes.Buffer)
	canvas := svg.New(buf)
	canvas.Start(int(math.Ceil(w)), int(math.Ceil(h)),
		fmt.Sprintf(`viewBox="%s %s %s %s"`, num(minX), num(minY), num(w), num(h)))

	for _, warning := range warnings {
		canvas.Comment(fmt.Sprintf("lint(%s): %s", warning.Category, warning.Message))
	}

	for _, conn := range result.Connections {
		drawConnection(canvas, conn, cfg)
	}
	for _, root := range result.Roots {
		drawElement(canvas, root, cfg)
	}

	canvas.End()
	return buf.Bytes(), nil
}

// SaveToFile renders the layout and writes the resulting SVG to filepath,
// mirroring the donor's ExportSVG/SaveSVGToFile split.
func SaveToFile(result *layout.Result, warnings []lint.Warning, cfg layout.Config, filepath string) error {
	data, err := Render(result, warnings, cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath, data, 0644)
}

func drawElement(canvas *svg.SVG, e *layout.Element, cfg layout.Config) {
	rotated := e.Rotation != 0
	if rotated {
		canvas.Gtransform(fmt.Sprintf("rotate(%s,%s,%s)", num(e.Rotation), num(e.RotationCenter.X), num(e.RotationCenter.Y)))
	}

	switch e.Kind {
	case ast.StmtShape:
		drawShape(canvas, e, cfg)
	case ast.StmtLayout, ast.StmtGroup:
		// Containers carry no geometry of their own; only their children render.
	}

	for _, c := range e.Children {
		drawElement(canvas, c, cfg)
	}

	if e.Label != nil {
		drawLabel(canvas, e.Label, cfg)
	}

	if rotated {
		canvas.Gend()
	}
}

func drawShape(canvas *svg.SVG, e *layout.Element, cfg layout.Config) {
	style := styleArgs(e.Style, cfg)
	b := localBounds(e)
	switch e.Primitive {
	case "circle":
		cx, cy := b.Center().X, b.Center().Y
		r := b.Width / 2
		canvas.Circle(int(cx), int(cy), int(r), style...)
	case "ellipse":
		cx, cy := b.Center().X, b.Center().Y
		canvas.Ellipse(int(cx), int(cy), int(b.Width/2), int(b.Height/2), style...)
	case "line":
		y := b.Y + b.Height/2
		canvas.Line(int(b.X), int(y), int(b.Right()), int(y), style...)
	case "path":
		if e.Path != nil {
			canvas.Path(e.Path.ToSVGPath(), style...)
		}
	default:
		canvas.Rect(int(b.X), int(b.Y), int(b.Width), int(b.Height), style...)
	}
}

// localBounds returns the bounds a shape should actually draw at: its own
// reported Bounds for an unrotated element, or the pre-rotation footprint
// (reconstructed from RotationCenter) for a rotated one, since the rotation
// itself is applied by the surrounding <g transform>, not baked into the
// drawn coordinates.
func localBounds(e *layout.Element) geom.Rect {
	if e.Rotation == 0 {
		return e.Bounds
	}
	// The reported Bounds is the loose post-rotation AABB, not the
	// original footprint; the original width/height isn't separately
	// recorded, so fall back to a square footprint centred on
	// RotationCenter sized from the AABB's shorter side. Path shapes
	// draw from their own segments and do not use the returned bounds.
	side := e.Bounds.Width
	if e.Bounds.Height < side {
		side = e.Bounds.Height
	}
	return geom.Rect{
		X: e.RotationCenter.X - side/2, Y: e.RotationCenter.Y - side/2,
		Width: side, Height: side,
	}
}

func drawLabel(canvas *svg.SVG, l *layout.LabelLayout, cfg layout.Config) {
	anchor := "middle"
	switch l.Anchor {
	case layout.TextStart:
		anchor = "start"
	case layout.TextEnd:
		anchor = "end"
	}
	fontSize := 14.0
	fill := "#333333"
	if l.Style != nil {
		if l.Style.FontSize != nil {
			fontSize = *l.Style.FontSize
		}
		if l.Style.Fill != nil {
			fill = *l.Style.Fill
		}
	}
	style := fmt.Sprintf("text-anchor:%s;font-size:%spx;fill:%s", anchor, num(fontSize), fill)
	canvas.Text(int(l.Position.X), int(l.Position.Y), l.Text, style)
}

func drawConnection(canvas *svg.SVG, conn layout.ConnectionLayout, cfg layout.Config) {
	if len(conn.Path) < 2 {
		return
	}
	xs := make([]int, len(conn.Path))
	ys := make([]int, len(conn.Path))
	for i, p := range conn.Path {
		xs[i], ys[i] = int(p.X), int(p.Y)
	}
	style := connectionStyleArgs(conn.Style, cfg)
	canvas.Polyline(xs, ys, style...)

	last := conn.Path[len(conn.Path)-1]
	secondLast := conn.Path[len(conn.Path)-2]
	first := conn.Path[0]
	second := conn.Path[1]
	color := strokeColor(conn.Style)
	switch conn.Direction {
	case ast.DirForward:
		drawArrowhead(canvas, secondLast, last, color)
	case ast.DirBackward:
		drawArrowhead(canvas, second, first, color)
	case ast.DirBidirectional:
		drawArrowhead(canvas, secondLast, last, color)
		drawArrowhead(canvas, second, first, color)
	case ast.DirUndirected:
		// No arrowhead.
	}

	if conn.Label != nil {
		drawLabel(canvas, conn.Label, cfg)
	}
}

// drawArrowhead renders a small triangular arrow at to, oriented along the
// from->to direction, the same construction as the donor's drawArrow.
func drawArrowhead(canvas *svg.SVG, from, to geom.Point, color string) {
	dx, dy := to.X-from.X, to.Y-from.Y
	angle := math.Atan2(dy, dx)
	const size = 8.0
	const spread = 2.8
	tip := to
	left := geom.Point{X: to.X - size*math.Cos(angle-spread), Y: to.Y - size*math.Sin(angle-spread)}
	right := geom.Point{X: to.X - size*math.Cos(angle+spread), Y: to.Y - size*math.Sin(angle+spread)}
	xs := []int{int(tip.X), int(left.X), int(right.X)}
	ys := []int{int(tip.Y), int(left.Y), int(right.Y)}
	canvas.Polygon(xs, ys, fmt.Sprintf("fill:%s", color))
}

func strokeColor(s layout.Style) string {
	if s.Stroke != nil {
		return *s.Stroke
	}
	return "#333333"
}

func styleArgs(s layout.Style, cfg layout.Config) []string {
	var css strings.Builder
	if s.Fill != nil {
		fmt.Fprintf(&css, "fill:%s;", *s.Fill)
	}
	if s.Stroke != nil {
		fmt.Fprintf(&css, "stroke:%s;", *s.Stroke)
	}
	if s.StrokeWidth != nil {
		fmt.Fprintf(&css, "stroke-width:%s;", num(*s.StrokeWidth))
	}
	if s.StrokeDasharray != nil {
		fmt.Fprintf(&css, "stroke-dasharray:%s;", *s.StrokeDasharray)
	}
	if s.Opacity != nil {
		fmt.Fprintf(&css, "opacity:%s;", num(*s.Opacity))
	}
	args := []string{css.String()}
	if len(s.Classes) > 0 {
		args = append(args, fmt.Sprintf(`class="%s"`, prefixedClasses(s.Classes, cfg.ClassPrefix)))
	}
	return args
}

func connectionStyleArgs(s layout.Style, cfg layout.Config) []string {
	args := styleArgs(s, cfg)
	args = append(args, `fill="none"`)
	return args
}

func prefixedClasses(classes []string, prefix string) string {
	out := make([]string, len(classes))
	for i, c := range classes {
		out[i] = prefix + c
	}
	return strings.Join(out, " ")
}

// num formats a float without a trailing ".00" for whole numbers, matching
// how hand-authored SVG attribute values usually look.
func num(f float64) string {
	if f == math.Trunc(f) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%.2f", f)
}

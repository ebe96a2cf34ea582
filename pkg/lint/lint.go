package lint

import (
	"fmt"
	"strings"

	"github.com/illustrate/illustrate/pkg/ast"
	"github.com/illustrate/illustrate/pkg/geom"
	"github.com/illustrate/illustrate/pkg/layout"
)

// Category discriminates the kind of issue a Warning reports.
type Category int

const (
	CategoryOverlap Category = iota
	CategoryContainment
	CategoryLabel
	CategoryConnection
	CategoryAlignment
)

func (c Category) String() string {
	switch c {
	case CategoryOverlap:
		return "overlap"
	case CategoryContainment:
		return "containment"
	case CategoryLabel:
		return "label"
	case CategoryConnection:
		return "connection"
	case CategoryAlignment:
		return "alignment"
	default:
		return "unknown"
	}
}

// Warning is one advisory finding.
type Warning struct {
	Category Category
	Message  string
}

// Check runs every lint pass over a computed result, given the resolved
// document it was computed from (containment checks walk the document's
// constrain statements directly).
func Check(result *layout.Result, doc ast.Document) []Warning {
	var warnings []Warning
	for _, root := range result.Roots {
		checkOverlaps(root, "", &warnings)
	}
	checkContains(doc.Statements, result, &warnings)
	checkLabels(result, &warnings)
	checkConnections(result, &warnings)
	checkAlignment(result, &warnings)
	return warnings
}

func isOpaque(e *layout.Element) bool {
	return e.Style.Opacity == nil || *e.Style.Opacity >= 1.0
}

func isTextShape(e *layout.Element) bool {
	return e.Primitive == "text"
}

// isTemplateInstanceGroup reports whether every named child of parent
// shares the `{parent.ID}_` prefix convention the template resolver
// stamps onto an instance's expanded children, which marks parent as the
// synthetic wrapper group of a single template instantiation.
func isTemplateInstanceGroup(parent *layout.Element) bool {
	if parent.ID == "" || len(parent.Children) == 0 {
		return false
	}
	prefix := parent.ID + "_"
	for _, c := range parent.Children {
		if c.ID == "" || !strings.HasPrefix(c.ID, prefix) {
			return false
		}
	}
	return true
}

func displayName(e *layout.Element, index int) string {
	if e.ID != "" {
		return e.ID
	}
	return fmt.Sprintf("<child #%d>", index)
}

// checkOverlaps recurses the element tree, warning about any pair of
// opaque siblings of the same kind (both text or both non-text) whose
// bounds intersect — except inside a template instance's own wrapper
// group (internal template layout is expected to overlap). Stack layouts
// are not exempt: their overlapping children are reported too.
func checkOverlaps(parent *layout.Element, _ string, warnings *[]Warning) {
	skip := isTemplateInstanceGroup(parent)
	if !skip {
		for i := 0; i < len(parent.Children); i++ {
			for j := i + 1; j < len(parent.Children); j++ {
				a, b := parent.Children[i], parent.Children[j]
				if !isOpaque(a) || !isOpaque(b) {
					continue
				}
				if isTextShape(a) != isTextShape(b) {
					continue
				}
				if !a.Bounds.Intersects(b.Bounds) {
					continue
				}
				overlapW := minF(a.Bounds.Right(), b.Bounds.Right()) - maxF(a.Bounds.X, b.Bounds.X)
				overlapH := minF(a.Bounds.Bottom(), b.Bounds.Bottom()) - maxF(a.Bounds.Y, b.Bounds.Y)
				*warnings = append(*warnings, Warning{
					Category: CategoryOverlap,
					Message: fmt.Sprintf("elements %q and %q overlap by %.0fx%.0fpx",
						displayName(a, i), displayName(b, j), overlapW, overlapH),
				})
			}
		}
	}
	for _, c := range parent.Children {
		if len(c.Children) > 0 {
			checkOverlaps(c, "", warnings)
		}
	}
}

func checkContains(stmts []ast.Statement, result *layout.Result, warnings *[]Warning) {
	for _, s := range stmts {
		switch s.Kind {
		case ast.StmtConstrain:
			if s.Constrain.RHS.Kind != ast.RHSContains {
				continue
			}
			container, ok := result.GetByName(s.Constrain.Subject.Path.Leaf())
			if !ok {
				continue
			}
			pad := s.Constrain.RHS.Padding
			cb := container.Bounds
			for _, ref := range s.Constrain.RHS.Elements {
				elem, ok := result.GetByName(ref.Leaf())
				if !ok {
					continue
				}
				eb := elem.Bounds
				edge := func(overflow float64, side string) {
					if overflow > 0 {
						*warnings = append(*warnings, Warning{
							Category: CategoryContainment,
							Message: fmt.Sprintf("element %q extends %.0fpx past %s edge of container %q",
								ref.Leaf(), overflow, side, container.ID),
						})
					}
				}
				edge(cb.X-(eb.X-pad), "left")
				edge((eb.Right()+pad)-cb.Right(), "right")
				edge(cb.Y-(eb.Y-pad), "top")
				edge((eb.Bottom()+pad)-cb.Bottom(), "bottom")
			}
		case ast.StmtLayout:
			checkContains(s.Layout.Children, result, warnings)
		case ast.StmtGroup:
			checkContains(s.Group.Children, result, warnings)
		}
	}
}

type labelInfo struct {
	owner   string
	bbox    geom.Rect
	opacity *float64
}

func estimateLabelBBox(l *layout.LabelLayout) geom.Rect {
	fontSize := 14.0
	if l.Style != nil && l.Style.FontSize != nil {
		fontSize = *l.Style.FontSize
	}
	width := float64(len(l.Text)) * (fontSize * 0.5)
	height := fontSize
	var x float64
	switch l.Anchor {
	case layout.TextStart:
		x = l.Position.X
	case layout.TextEnd:
		x = l.Position.X - width
	default:
		x = l.Position.X - width/2
	}
	return geom.Rect{X: x, Y: l.Position.Y - height/2, Width: width, Height: height}
}

func collectLabels(e *layout.Element, out *[]labelInfo) {
	if e.Label != nil {
		*out = append(*out, labelInfo{owner: e.ID, bbox: estimateLabelBBox(e.Label), opacity: e.Style.Opacity})
	}
	for _, c := range e.Children {
		collectLabels(c, out)
	}
}

func checkLabels(result *layout.Result, warnings *[]Warning) {
	var labels []labelInfo
	for _, root := range result.Roots {
		collectLabels(root, &labels)
	}
	for _, conn := range result.Connections {
		if conn.Label != nil {
			owner := conn.FromID + "->" + conn.ToID
			labels = append(labels, labelInfo{owner: owner, bbox: estimateLabelBBox(conn.Label)})
		}
	}
	for i := 0; i < len(labels); i++ {
		for j := i + 1; j < len(labels); j++ {
			a, b := labels[i], labels[j]
			if a.owner == b.owner {
				continue
			}
			if (a.opacity != nil && *a.opacity < 1.0) || (b.opacity != nil && *b.opacity < 1.0) {
				continue
			}
			if a.bbox.Intersects(b.bbox) {
				*warnings = append(*warnings, Warning{
					Category: CategoryLabel,
					Message:  fmt.Sprintf("labels on %q and %q overlap", a.owner, b.owner),
				})
			}
		}
	}
}

type opaqueElement struct {
	id     string
	bounds geom.Rect
}

func collectOpaque(e *layout.Element, out *[]opaqueElement) {
	if e.Kind == ast.StmtShape && !isTextShape(e) && isOpaque(e) {
		*out = append(*out, opaqueElement{id: e.ID, bounds: e.Bounds})
	}
	for _, c := range e.Children {
		collectOpaque(c, out)
	}
}

// checkConnections warns when a connection's routed path crosses an
// opaque shape it does not originate from or terminate at.
func checkConnections(result *layout.Result, warnings *[]Warning) {
	var shapes []opaqueElement
	for _, root := range result.Roots {
		collectOpaque(root, &shapes)
	}
	for _, conn := range result.Connections {
		for i := 0; i+1 < len(conn.Path); i++ {
			p1, p2 := conn.Path[i], conn.Path[i+1]
			for _, sh := range shapes {
				if sh.id == conn.FromID || sh.id == conn.ToID {
					continue
				}
				if segmentIntersectsRect(p1, p2, sh.bounds) {
					*warnings = append(*warnings, Warning{
						Category: CategoryConnection,
						Message:  fmt.Sprintf("connection %s->%s crosses element %q", conn.FromID, conn.ToID, sh.id),
					})
				}
			}
		}
	}
}

func segmentIntersectsRect(p1, p2 geom.Point, b geom.Rect) bool {
	if b.Contains(p1) || b.Contains(p2) {
		return true
	}
	corners := [4]geom.Point{
		{X: b.X, Y: b.Y}, {X: b.Right(), Y: b.Y}, {X: b.Right(), Y: b.Bottom()}, {X: b.X, Y: b.Bottom()},
	}
	for i := 0; i < 4; i++ {
		if segmentsIntersect(p1, p2, corners[i], corners[(i+1)%4]) {
			return true
		}
	}
	return false
}

func segmentsIntersect(a1, a2, b1, b2 geom.Point) bool {
	d1x, d1y := a2.X-a1.X, a2.Y-a1.Y
	d2x, d2y := b2.X-b1.X, b2.Y-b1.Y
	denom := d1x*d2y - d1y*d2x
	if abs(denom) < 1e-10 {
		return false
	}
	dx, dy := b1.X-a1.X, b1.Y-a1.Y
	t := (dx*d2y - dy*d2x) / denom
	u := (dx*d1y - dy*d1x) / denom
	return t >= 0 && t <= 1 && u >= 0 && u <= 1
}

// checkAlignment flags siblings that sit within a few pixels of sharing
// an edge but not exactly — usually an authoring slip rather than intent.
func checkAlignment(result *layout.Result, warnings *[]Warning) {
	for _, root := range result.Roots {
		checkAlignmentSiblings(root, warnings)
	}
}

func checkAlignmentSiblings(parent *layout.Element, warnings *[]Warning) {
	const nearMiss = 3.0
	for i := 0; i < len(parent.Children); i++ {
		for j := i + 1; j < len(parent.Children); j++ {
			a, b := parent.Children[i], parent.Children[j]
			if d := abs(a.Bounds.X - b.Bounds.X); d > 0 && d <= nearMiss {
				*warnings = append(*warnings, Warning{
					Category: CategoryAlignment,
					Message:  fmt.Sprintf("elements %q and %q are %.1fpx from sharing a left edge", a.ID, b.ID, d),
				})
			}
			if d := abs(a.Bounds.Y - b.Bounds.Y); d > 0 && d <= nearMiss {
				*warnings = append(*warnings, Warning{
					Category: CategoryAlignment,
					Message:  fmt.Sprintf("elements %q and %q are %.1fpx from sharing a top edge", a.ID, b.ID, d),
				})
			}
		}
	}
	for _, c := range parent.Children {
		checkAlignmentSiblings(c, warnings)
	}
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

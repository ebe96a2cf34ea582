package layout

import (
	"github.com/illustrate/illustrate/pkg/ast"
	"github.com/illustrate/illustrate/pkg/geom"
	"github.com/illustrate/illustrate/pkg/pathres"
)

// TextAnchor selects the SVG text-anchor alignment of a label.
type TextAnchor int

const (
	TextStart TextAnchor = iota
	TextMiddle
	TextEnd
)

// LabelLayout is the resolved position and alignment of a text label.
type LabelLayout struct {
	Text     string
	Position geom.Point
	Anchor   TextAnchor
	Style    *Style
}

// Element is a positioned node in the resolved layout tree: a shape,
// layout container, or plain group, together with its children, style,
// anchors, and (for path shapes) its resolved path.
type Element struct {
	ID        string
	Kind      ast.StatementKind
	Primitive string
	Bounds    geom.Rect
	Style     Style
	Rotation  float64
	// RotationCenter is the pre-rotation bounds' center, the pivot a
	// renderer should use for an SVG group transform; children keep their
	// own unrotated local coordinates and are rotated as a unit around it.
	RotationCenter geom.Point
	Anchors   AnchorSet
	Children  []*Element
	Label     *LabelLayout
	Path      *pathres.ResolvedPath
}

// ConnectionLayout is a routed connection between two elements.
type ConnectionLayout struct {
	FromID    string
	ToID      string
	Direction ast.ConnDirection
	Path      []geom.Point
	Style     Style
	Label     *LabelLayout
}

// Result is the complete output of layout computation: every element
// indexed by identifier, the root-level elements in document order, the
// routed connections, and the overall bounding box.
type Result struct {
	Elements    map[string]*Element
	Roots       []*Element
	Connections []ConnectionLayout
	Bounds      geom.Rect
}

// NewResult creates an empty layout result.
func NewResult() *Result {
	return &Result{Elements: map[string]*Element{}}
}

// AddElement appends a root-level element, indexing it and its descendants
// by identifier.
func (r *Result) AddElement(e *Element) {
	r.indexElement(e)
	r.Roots = append(r.Roots, e)
}

func (r *Result) indexElement(e *Element) {
	if e.ID != "" {
		r.Elements[e.ID] = e
	}
	for _, c := range e.Children {
		r.indexElement(c)
	}
}

// GetByName returns the element with the given identifier.
func (r *Result) GetByName(name string) (*Element, bool) {
	e, ok := r.Elements[name]
	return e, ok
}

// RemoveByName removes an element from the index and from wherever it
// appears in the root or child trees, used to hide elements consumed as
// connection labels.
func (r *Result) RemoveByName(name string) {
	delete(r.Elements, name)
	r.Roots = removeNamed(r.Roots, name)
	for _, e := range r.Roots {
		e.Children = removeNamed(e.Children, name)
	}
}

func removeNamed(elems []*Element, name string) []*Element {
	out := elems[:0]
	for _, e := range elems {
		if e.ID == name {
			continue
		}
		e.Children = removeNamed(e.Children, name)
		out = append(out, e)
	}
	return out
}

// estimateLabelWidth approximates a label's rendered width at ~7px/char,
// matching the default font metrics assumed elsewhere in the pipeline.
func estimateLabelWidth(text string) float64 {
	return float64(len(text)) * 7.0
}

const labelLineHeight = 14.0

func expandForLabel(bounds geom.Rect, l *LabelLayout) geom.Rect {
	w := estimateLabelWidth(l.Text)
	var left, right float64
	switch l.Anchor {
	case TextStart:
		left, right = l.Position.X, l.Position.X+w
	case TextEnd:
		left, right = l.Position.X-w, l.Position.X
	default:
		left, right = l.Position.X-w/2, l.Position.X+w/2
	}
	top, bottom := l.Position.Y-labelLineHeight, l.Position.Y
	return bounds.Union(geom.Rect{X: left, Y: top, Width: right - left, Height: bottom - top})
}

func expandForElementLabels(bounds geom.Rect, e *Element) geom.Rect {
	if e.Label != nil {
		bounds = expandForLabel(bounds, e.Label)
	}
	for _, c := range e.Children {
		bounds = expandForElementLabels(bounds, c)
	}
	return bounds
}

func unionElementBounds(bounds geom.Rect, e *Element) geom.Rect {
	bounds = bounds.Union(e.Bounds)
	for _, c := range e.Children {
		bounds = unionElementBounds(bounds, c)
	}
	return bounds
}

// ComputeBounds recomputes Bounds as the union of every element's bounds
// (roots and all their descendants), every connection path point, and
// every label's estimated extent.
func (r *Result) ComputeBounds() {
	if len(r.Roots) == 0 {
		r.Bounds = geom.Rect{}
		return
	}
	bounds := r.Roots[0].Bounds
	for _, e := range r.Roots {
		bounds = unionElementBounds(bounds, e)
	}
	for _, conn := range r.Connections {
		for _, p := range conn.Path {
			bounds = bounds.ExpandToInclude(p)
		}
		if conn.Label != nil {
			bounds = expandForLabel(bounds, conn.Label)
		}
	}
	for _, e := range r.Roots {
		bounds = expandForElementLabels(bounds, e)
	}
	r.Bounds = bounds
}

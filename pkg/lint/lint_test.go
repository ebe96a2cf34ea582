package lint

import (
	"testing"

	"github.com/illustrate/illustrate/pkg/ast"
	"github.com/illustrate/illustrate/pkg/geom"
	"github.com/illustrate/illustrate/pkg/layout"
)

func elem(id string, bounds geom.Rect, children ...*layout.Element) *layout.Element {
	return &layout.Element{ID: id, Kind: ast.StmtShape, Bounds: bounds, Children: children}
}

func TestCheckOverlapsReportsIntersectingOpaqueSiblings(t *testing.T) {
	parent := &layout.Element{ID: "root", Kind: ast.StmtGroup, Children: []*layout.Element{
		elem("a", geom.Rect{X: 0, Y: 0, Width: 50, Height: 50}),
		elem("b", geom.Rect{X: 25, Y: 25, Width: 50, Height: 50}),
	}}
	result := layout.NewResult()
	result.AddElement(parent)
	warnings := Check(result, ast.Document{})
	found := false
	for _, w := range warnings {
		if w.Category == CategoryOverlap {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an overlap warning, got %+v", warnings)
	}
}

func TestCheckOverlapsSkipsTemplateInstanceSiblings(t *testing.T) {
	parent := &layout.Element{ID: "box", Kind: ast.StmtGroup, Children: []*layout.Element{
		elem("box_left", geom.Rect{X: 0, Y: 0, Width: 50, Height: 50}),
		elem("box_right", geom.Rect{X: 25, Y: 25, Width: 50, Height: 50}),
	}}
	result := layout.NewResult()
	result.AddElement(parent)
	warnings := Check(result, ast.Document{})
	for _, w := range warnings {
		if w.Category == CategoryOverlap {
			t.Fatalf("expected no overlap warning for template-instance siblings, got %+v", warnings)
		}
	}
}

func TestCheckContainsReportsOverflow(t *testing.T) {
	result := layout.NewResult()
	result.AddElement(elem("container", geom.Rect{X: 0, Y: 0, Width: 100, Height: 100}))
	result.AddElement(elem("inner", geom.Rect{X: 80, Y: 0, Width: 50, Height: 20}))
	doc := ast.Document{Statements: []ast.Statement{
		{Kind: ast.StmtConstrain, Constrain: &ast.ConstrainStmt{
			Subject: ast.PropertyRef{Path: ast.ElementPath{"container"}},
			RHS: ast.ConstraintRHS{
				Kind:     ast.RHSContains,
				Elements: []ast.ElementPath{{"inner"}},
			},
		}},
	}}
	warnings := Check(result, doc)
	found := false
	for _, w := range warnings {
		if w.Category == CategoryContainment {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a containment warning, got %+v", warnings)
	}
}

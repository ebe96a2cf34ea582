package ast_test

import (
	"testing"

	"github.com/illustrate/illustrate/pkg/ast"
)

func TestDesugarAlignmentProducesEqualConstraint(t *testing.T) {
	doc := ast.Document{Statements: []ast.Statement{
		{
			Kind: ast.StmtAlignment,
			Alignment: &ast.AlignmentStmt{
				Left:  ast.PropertyRef{Path: ast.ElementPath{"a"}, Property: "left"},
				Right: ast.PropertyRef{Path: ast.ElementPath{"b"}, Property: "left"},
			},
		},
	}}
	ast.DesugarDocument(&doc)
	if doc.Statements[0].Kind != ast.StmtConstrain {
		t.Fatalf("expected desugared statement to be a constrain, got %v", doc.Statements[0].Kind)
	}
	c := doc.Statements[0].Constrain
	if c.Op != ast.OpEqual || c.RHS.Kind != ast.RHSPropertyOffset {
		t.Fatalf("unexpected desugared constraint: %+v", c)
	}
}

func TestWalkVisitsNestedChildren(t *testing.T) {
	inner := ast.Statement{Kind: ast.StmtShape, Shape: &ast.ShapeStmt{Name: "body", Primitive: "rect"}}
	doc := []ast.Statement{
		{Kind: ast.StmtGroup, Group: &ast.GroupStmt{Name: "g", Children: []ast.Statement{inner}}},
	}
	var names []string
	ast.Walk(doc, func(s ast.Statement) { names = append(names, s.Name()) })
	if len(names) != 2 || names[0] != "g" || names[1] != "body" {
		t.Fatalf("unexpected walk order: %v", names)
	}
}

func TestAnchorPropertyDetectsSuffix(t *testing.T) {
	name, axis, ok := ast.AnchorProperty("right_conn_x")
	if !ok || name != "right_conn" || axis != "x" {
		t.Fatalf("got name=%q axis=%q ok=%v", name, axis, ok)
	}
	if _, _, ok := ast.AnchorProperty("width"); ok {
		t.Fatalf("width should not be an anchor property")
	}
}

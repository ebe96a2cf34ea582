package layout

import (
	"math"
	"testing"

	"github.com/illustrate/illustrate/pkg/ast"
)

func groupStmt(name string, children ...ast.Statement) ast.Statement {
	return ast.Statement{Kind: ast.StmtGroup, Group: &ast.GroupStmt{Name: name, Children: children}}
}

func anchorDeclStmt(name string, onPath ast.ElementPath, onProperty, direction string) ast.Statement {
	return ast.Statement{Kind: ast.StmtAnchorDecl, AnchorDecl: &ast.AnchorDeclStmt{
		Name:      name,
		Position:  ast.PropertyRef{Path: onPath, Property: onProperty},
		Direction: direction,
	}}
}

func constrainOffset(subjectPath ast.ElementPath, subjectProp string, refPath ast.ElementPath, refProp string) ast.Statement {
	return ast.Statement{Kind: ast.StmtConstrain, Constrain: &ast.ConstrainStmt{
		Op:      ast.OpEqual,
		Subject: ast.PropertyRef{Path: subjectPath, Property: subjectProp},
		RHS:     ast.ConstraintRHS{Kind: ast.RHSPropertyOffset, Ref: ast.PropertyRef{Path: refPath, Property: refProp}},
	}}
}

func TestComputeRowLaysOutSiblings(t *testing.T) {
	doc := ast.Document{Statements: []ast.Statement{
		rowLayout("row",
			rectShape("a", widthHeight(50, 20)...),
			rectShape("b", widthHeight(30, 20)...),
		),
	}}
	result, err := Compute(doc, DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	a, ok := result.GetByName("a")
	if !ok {
		t.Fatal("element a missing from result")
	}
	b, ok := result.GetByName("b")
	if !ok {
		t.Fatal("element b missing from result")
	}
	if b.Bounds.X <= a.Bounds.X {
		t.Errorf("expected b to the right of a: a=%+v b=%+v", a.Bounds, b.Bounds)
	}
	if result.Bounds.Width <= 0 || result.Bounds.Height <= 0 {
		t.Errorf("expected non-empty overall bounds, got %+v", result.Bounds)
	}
}

func TestComputeRotationExpandsReportedBounds(t *testing.T) {
	doc := ast.Document{Statements: []ast.Statement{
		rectShape("box", widthHeight(100, 20)...),
	}}
	result, err := Compute(doc, DefaultConfig(), map[string]float64{"box": 45})
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	box, _ := result.GetByName("box")
	if box.Rotation != 45 {
		t.Errorf("expected Rotation 45, got %v", box.Rotation)
	}
	// A 45-degree rotated 100x20 rect has a loose AABB of about 84.9 on
	// each side ((100+20)*cos 45°): taller than its unrotated footprint.
	if box.Bounds.Height <= 20 {
		t.Errorf("expected rotated bounds taller than original 20, got %v", box.Bounds.Height)
	}
}

func TestComputeConnectionRoutesBetweenElements(t *testing.T) {
	doc := ast.Document{Statements: []ast.Statement{
		rectShape("a", widthHeight(40, 40)...),
		rectShape("b", widthHeight(40, 40)...),
		{Kind: ast.StmtConstrain, Constrain: &ast.ConstrainStmt{
			Op:      ast.OpEqual,
			Subject: ast.PropertyRef{Path: ast.ElementPath{"b"}, Property: "x"},
			RHS:     ast.ConstraintRHS{Kind: ast.RHSConstant, Constant: 300},
		}},
		{Kind: ast.StmtConnection, Connection: &ast.ConnectionStmt{
			From: ast.ElementPath{"a"},
			To:   ast.ElementPath{"b"},
			Mode: ast.RouteDirect,
		}},
	}}
	result, err := Compute(doc, DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if len(result.Connections) != 1 {
		t.Fatalf("expected 1 connection, got %d", len(result.Connections))
	}
	conn := result.Connections[0]
	if len(conn.Path) != 2 {
		t.Fatalf("expected a direct 2-point path, got %v", conn.Path)
	}
	if conn.Path[0].X >= conn.Path[1].X {
		t.Errorf("expected path to run left-to-right, got %v", conn.Path)
	}
}

// TestComputeDeclaredAnchorResolvesAgainstRotatedInstance encodes scenario
// S3: a declared anchor backed by a rotated instance's child must resolve
// a cross-instance constraint to the anchor's rotated position, and the
// anchor's own direction must rotate along with it.
func TestComputeDeclaredAnchorResolvesAgainstRotatedInstance(t *testing.T) {
	doc := ast.Document{Statements: []ast.Statement{
		groupStmt("c1",
			rectShape("body", widthHeight(40, 20)...),
			anchorDeclStmt("c1_right_conn", ast.ElementPath{"body"}, "right", "right"),
		),
		rectShape("target", widthHeight(10, 10)...),
		constrainOffset(ast.ElementPath{"target"}, "center_x", ast.ElementPath{"c1"}, "right_conn_x"),
		constrainOffset(ast.ElementPath{"target"}, "center_y", ast.ElementPath{"c1"}, "right_conn_y"),
	}}
	result, err := Compute(doc, DefaultConfig(), map[string]float64{"c1": 90})
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	c1, ok := result.GetByName("c1")
	if !ok {
		t.Fatal("element c1 missing from result")
	}
	anchor, ok := c1.Anchors.Get("right_conn")
	if !ok {
		t.Fatal("declared anchor right_conn missing from c1")
	}
	if anchor.Direction.Kind != DirDown {
		t.Errorf("expected right_conn direction to rotate to Down, got %+v", anchor.Direction)
	}
	target, ok := result.GetByName("target")
	if !ok {
		t.Fatal("element target missing from result")
	}
	center := target.Bounds.Center()
	if math.Abs(center.X-anchor.Position.X) > 1.0 || math.Abs(center.Y-anchor.Position.Y) > 1.0 {
		t.Errorf("expected target.center within 1px of c1.right_conn, got center=%+v anchor=%+v", center, anchor)
	}
}

// TestComputeExplicitConstraintOverridesRotationStay encodes scenario S4: an
// explicit constraint positioning a rotated instance against a sibling must
// win over the weak post-rotation stay, not be blocked by it.
func TestComputeExplicitConstraintOverridesRotationStay(t *testing.T) {
	doc := ast.Document{Statements: []ast.Statement{
		rectShape("p0", widthHeight(60, 40)...),
		rectShape("p90", widthHeight(60, 40)...),
		{Kind: ast.StmtConstrain, Constrain: &ast.ConstrainStmt{
			Op:      ast.OpEqual,
			Subject: ast.PropertyRef{Path: ast.ElementPath{"p90"}, Property: "x"},
			RHS:     ast.ConstraintRHS{Kind: ast.RHSPropertyOffset, Ref: ast.PropertyRef{Path: ast.ElementPath{"p0"}, Property: "right"}, Offset: 80},
		}},
	}}
	result, err := Compute(doc, DefaultConfig(), map[string]float64{"p90": 90})
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	p0, ok := result.GetByName("p0")
	if !ok {
		t.Fatal("element p0 missing from result")
	}
	p90, ok := result.GetByName("p90")
	if !ok {
		t.Fatal("element p90 missing from result")
	}
	want := p0.Bounds.Right() + 80
	if math.Abs(p90.Bounds.X-want) > 1e-6 {
		t.Errorf("expected the explicit constraint to win over the rotation stay: got p90.x=%v, want %v", p90.Bounds.X, want)
	}
}

func TestComputeUndefinedReferenceFails(t *testing.T) {
	doc := ast.Document{Statements: []ast.Statement{
		rectShape("a", widthHeight(40, 40)...),
		{Kind: ast.StmtConstrain, Constrain: &ast.ConstrainStmt{
			Op:      ast.OpEqual,
			Subject: ast.PropertyRef{Path: ast.ElementPath{"nope"}, Property: "x"},
			RHS:     ast.ConstraintRHS{Kind: ast.RHSConstant, Constant: 1},
		}},
	}}
	_, err := Compute(doc, DefaultConfig(), nil)
	if err == nil {
		t.Fatal("expected an undefined-identifier error")
	}
	layoutErr, ok := err.(*Error)
	if !ok || layoutErr.Kind != ErrUndefinedIdentifier {
		t.Fatalf("expected ErrUndefinedIdentifier, got %v", err)
	}
}

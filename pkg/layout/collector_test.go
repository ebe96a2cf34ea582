package layout

import (
	"testing"

	"github.com/illustrate/illustrate/pkg/ast"
	"github.com/illustrate/illustrate/pkg/constraint"
	"github.com/illustrate/illustrate/pkg/solver"
)

func rectShape(name string, mods ...ast.Modifier) ast.Statement {
	return ast.Statement{Kind: ast.StmtShape, Shape: &ast.ShapeStmt{Name: name, Primitive: "rect", Modifiers: mods}}
}

func widthHeight(w, h float64) []ast.Modifier {
	return []ast.Modifier{
		{Key: ast.KeyWidth, Value: ast.StyleValue{Kind: ast.ValueNumber, Number: w}},
		{Key: ast.KeyHeight, Value: ast.StyleValue{Kind: ast.ValueNumber, Number: h}},
	}
}

func rowLayout(name string, children ...ast.Statement) ast.Statement {
	return ast.Statement{Kind: ast.StmtLayout, Layout: &ast.LayoutStmt{Name: name, Mode: ast.LayoutRow, Children: children}}
}

func solveAll(t *testing.T, stmts []ast.Statement) *solver.Solver {
	t.Helper()
	col := NewCollector(DefaultConfig())
	col.Collect(stmts)
	s := solver.New()
	for _, st := range col.Stays {
		s.AddStay(st.Var, st.Value)
	}
	for _, c := range col.Constraints {
		s.Add(c)
	}
	if err := s.Solve(); err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	return s
}

func val(t *testing.T, s *solver.Solver, id, prop string) float64 {
	t.Helper()
	v, ok := s.Value(constraint.Variable{ElementID: id, Property: prop})
	if !ok {
		t.Fatalf("no value for %s.%s", id, prop)
	}
	return v
}

func TestCollectorRowGapAccountsForWidth(t *testing.T) {
	doc := []ast.Statement{
		rowLayout("row",
			rectShape("a", widthHeight(50, 20)...),
			rectShape("b", widthHeight(30, 20)...),
		),
	}
	s := solveAll(t, doc)
	ax := val(t, s, "a", "x")
	bx := val(t, s, "b", "x")
	if ax != 0 {
		t.Fatalf("expected a.x == 0, got %v", ax)
	}
	wantBX := 50 + DefaultConfig().ElementSpacing
	if bx != wantBX {
		t.Fatalf("expected b.x == a.right + gap (%v), got %v", wantBX, bx)
	}
}

func TestCollectorGridArrangesInRowsAndColumns(t *testing.T) {
	doc := []ast.Statement{
		{Kind: ast.StmtLayout, Layout: &ast.LayoutStmt{
			Name: "grid",
			Mode: ast.LayoutGrid,
			Modifiers: []ast.Modifier{
				{Key: ast.KeyColumns, Value: ast.StyleValue{Kind: ast.ValueNumber, Number: 2}},
			},
			Children: []ast.Statement{
				rectShape("c0", widthHeight(40, 20)...),
				rectShape("c1", widthHeight(40, 20)...),
				rectShape("c2", widthHeight(40, 20)...),
			},
		}},
	}
	s := solveAll(t, doc)
	c0x := val(t, s, "c0", "x")
	c1x := val(t, s, "c1", "x")
	c2x := val(t, s, "c2", "x")
	c2y := val(t, s, "c2", "y")
	c0y := val(t, s, "c0", "y")
	if c1x <= c0x {
		t.Errorf("expected c1 to the right of c0: c0x=%v c1x=%v", c0x, c1x)
	}
	if c2x != c0x {
		t.Errorf("expected c2 to start a new row aligned under c0: c0x=%v c2x=%v", c0x, c2x)
	}
	if c2y <= c0y {
		t.Errorf("expected c2 below c0: c0y=%v c2y=%v", c0y, c2y)
	}
}

func TestCollectorUserConstraintOverridesLayout(t *testing.T) {
	doc := []ast.Statement{
		rowLayout("row",
			rectShape("a", widthHeight(50, 20)...),
			rectShape("b", widthHeight(30, 20)...),
		),
		{Kind: ast.StmtConstrain, Constrain: &ast.ConstrainStmt{
			Op:      ast.OpEqual,
			Subject: ast.PropertyRef{Path: ast.ElementPath{"b"}, Property: "x"},
			RHS:     ast.ConstraintRHS{Kind: ast.RHSConstant, Constant: 500},
		}},
	}
	s := solveAll(t, doc)
	bx := val(t, s, "b", "x")
	if bx != 500 {
		t.Fatalf("expected user constraint to win over layout gap, got %v", bx)
	}
}

package solver_test

import (
	"math"
	"testing"

	"github.com/illustrate/illustrate/pkg/constraint"
	"github.com/illustrate/illustrate/pkg/solver"
)

func v(id, prop string) constraint.Variable {
	return constraint.Variable{ElementID: id, Property: prop}
}

func userSrc() constraint.Source { return constraint.Source{Origin: constraint.OriginUser} }

func almost(a, b float64) bool { return math.Abs(a-b) < 0.01 }

func TestSpikeFitnessShape(t *testing.T) {
	s := solver.New()
	s.Seed(v("b", "x"), 0)
	s.Seed(v("b", "width"), 100)
	s.Seed(v("a", "width"), 100)
	s.Seed(v("c", "width"), 100)
	s.Seed(v("d", "width"), 100)

	s.Add(constraint.Equal(v("a", "x"), v("b", "x"), 0, userSrc()))
	s.Add(constraint.Equal(v("c", "x"), v("b", "right"), 20, userSrc()))
	s.Add(constraint.Midpoint(v("d", "x"), v("a", "x"), v("c", "x"), 0, userSrc()))
	s.Add(constraint.GE(v("e", "width"), constraint.Variable{}, 50, userSrc()))
	s.Add(constraint.LE(v("a", "x"), v("b", "x"), 10, userSrc()))

	if err := s.Solve(); err != nil {
		t.Fatalf("solve: %v", err)
	}
	ax, _ := s.Value(v("a", "x"))
	cx, _ := s.Value(v("c", "x"))
	dx, _ := s.Value(v("d", "x"))
	ew, _ := s.Value(v("e", "width"))
	if !almost(ax, 0) {
		t.Fatalf("a.x = %v, want 0", ax)
	}
	if !almost(cx, 120) {
		t.Fatalf("c.x = %v, want 120", cx)
	}
	if !almost(dx, 60) {
		t.Fatalf("d.x = %v, want 60", dx)
	}
	if ew < 50 {
		t.Fatalf("e.width = %v, want >= 50", ew)
	}
}

func TestRelativeWidthConstraint(t *testing.T) {
	s := solver.New()
	s.Seed(v("a", "x"), 10)
	s.Seed(v("a", "width"), 80)
	s.Seed(v("b", "width"), 60)
	s.Add(constraint.Equal(v("b", "x"), v("a", "right"), 20, userSrc()))
	if err := s.Solve(); err != nil {
		t.Fatalf("solve: %v", err)
	}
	bx, _ := s.Value(v("b", "x"))
	if !almost(bx, 110) {
		t.Fatalf("b.x = %v, want 110", bx)
	}
}

func TestCenterAlignmentScenario(t *testing.T) {
	// S2: two 50x50 rects, a.center_x = b.center_x, a.bottom = b.top - 10.
	s := solver.New()
	s.Seed(v("a", "width"), 50)
	s.Seed(v("a", "height"), 50)
	s.Seed(v("b", "width"), 50)
	s.Seed(v("b", "height"), 50)
	s.Seed(v("b", "x"), 0)
	s.Seed(v("b", "y"), 100)
	s.Add(constraint.Equal(v("a", "center_x"), v("b", "center_x"), 0, userSrc()))
	s.Add(constraint.Equal(v("a", "bottom"), v("b", "y"), -10, userSrc()))
	if err := s.Solve(); err != nil {
		t.Fatalf("solve: %v", err)
	}
	ax, _ := s.Value(v("a", "x"))
	bx, _ := s.Value(v("b", "x"))
	ay, _ := s.Value(v("a", "y"))
	if !almost(ax, bx) {
		t.Fatalf("a.x=%v b.x=%v should match", ax, bx)
	}
	if !almost(ay+50, 90) {
		t.Fatalf("a.bottom = %v, want 90", ay+50)
	}
}

func TestUnsatisfiableRequiredReportsError(t *testing.T) {
	s := solver.New()
	s.Add(constraint.Fixed(v("a", "x"), 0, userSrc()))
	s.Add(constraint.Fixed(v("a", "x"), 100, userSrc()))
	err := s.Solve()
	if err == nil {
		t.Fatalf("expected unsatisfiable error")
	}
}

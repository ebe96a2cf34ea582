package solver

import "github.com/illustrate/illustrate/pkg/constraint"

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

// applyOnce attempts one substitution step for c, returning whether it
// changed any stored value.
func (s *Solver) applyOnce(c constraint.Constraint, required bool) bool {
	switch c.Kind {
	case constraint.KindFixed:
		_, changed := s.setValue(c.Left, c.Value, required)
		return changed

	case constraint.KindEqual:
		changed := false
		if rv, ok := s.valueOf(c.Right); ok {
			if s.trySet(c.Left, rv+c.Offset, required) {
				changed = true
			}
		}
		if lv, ok := s.valueOf(c.Left); ok && !c.Right.IsZero() {
			if s.trySet(c.Right, lv-c.Offset, required) {
				changed = true
			}
		}
		return changed

	case constraint.KindGreaterOrEqual:
		bound, ok := s.bound(c)
		if !ok {
			return false
		}
		lv, lok := s.valueOf(c.Left)
		if !lok {
			return s.trySet(c.Left, bound, required)
		}
		if lv < bound-tolerance && !s.determined[c.Left] {
			return s.trySet(c.Left, bound, required)
		}
		return false

	case constraint.KindLessOrEqual:
		bound, ok := s.bound(c)
		if !ok {
			return false
		}
		lv, lok := s.valueOf(c.Left)
		if !lok {
			return s.trySet(c.Left, bound, required)
		}
		if lv > bound+tolerance && !s.determined[c.Left] {
			return s.trySet(c.Left, bound, required)
		}
		return false

	case constraint.KindMidpoint:
		av, aok := s.valueOf(c.A)
		bv, bok := s.valueOf(c.B)
		if aok && bok {
			return s.trySet(c.Left, (av+bv)/2+c.Offset, required)
		}
		return false

	case constraint.KindContains:
		return s.applyContains(c, required)
	}
	return false
}

func (s *Solver) bound(c constraint.Constraint) (float64, bool) {
	if c.Right.IsZero() {
		return c.Offset, true
	}
	rv, ok := s.valueOf(c.Right)
	if !ok {
		return 0, false
	}
	return rv + c.Offset, true
}

func (s *Solver) applyContains(c constraint.Constraint, required bool) bool {
	var minX, maxRight, minY, maxBottom float64
	haveX, haveRight, haveY, haveBottom := false, false, false, false
	for _, eid := range c.Elements {
		if x, ok := s.valueOf(primitive(eid, "x")); ok {
			bound := x - c.Padding
			if !haveX || bound < minX {
				minX, haveX = bound, true
			}
		}
		if r, ok := s.valueOf(primitive(eid, "right")); ok {
			bound := r + c.Padding
			if !haveRight || bound > maxRight {
				maxRight, haveRight = bound, true
			}
		}
		if y, ok := s.valueOf(primitive(eid, "y")); ok {
			bound := y - c.Padding
			if !haveY || bound < minY {
				minY, haveY = bound, true
			}
		}
		if b, ok := s.valueOf(primitive(eid, "bottom")); ok {
			bound := b + c.Padding
			if !haveBottom || bound > maxBottom {
				maxBottom, haveBottom = bound, true
			}
		}
	}
	changed := false
	if haveX && s.trySet(primitive(c.Container, "x"), minX, required) {
		changed = true
	}
	if haveRight {
		if xv, ok := s.valueOf(primitive(c.Container, "x")); ok {
			if s.trySet(primitive(c.Container, "width"), maxRight-xv, required) {
				changed = true
			}
		}
	}
	if haveY && s.trySet(primitive(c.Container, "y"), minY, required) {
		changed = true
	}
	if haveBottom {
		if yv, ok := s.valueOf(primitive(c.Container, "y")); ok {
			if s.trySet(primitive(c.Container, "height"), maxBottom-yv, required) {
				changed = true
			}
		}
	}
	return changed
}

// satisfied reports whether c currently holds within tolerance, used for
// the final validation pass over required constraints.
func (s *Solver) satisfied(c constraint.Constraint) bool {
	switch c.Kind {
	case constraint.KindFixed:
		v, ok := s.valueOf(c.Left)
		return ok && abs(v-c.Value) <= tolerance
	case constraint.KindEqual:
		lv, lok := s.valueOf(c.Left)
		rv, rok := s.valueOf(c.Right)
		return lok && rok && abs(lv-(rv+c.Offset)) <= tolerance
	case constraint.KindGreaterOrEqual:
		lv, lok := s.valueOf(c.Left)
		bound, bok := s.bound(c)
		return lok && bok && lv >= bound-tolerance
	case constraint.KindLessOrEqual:
		lv, lok := s.valueOf(c.Left)
		bound, bok := s.bound(c)
		return lok && bok && lv <= bound+tolerance
	case constraint.KindMidpoint:
		lv, lok := s.valueOf(c.Left)
		av, aok := s.valueOf(c.A)
		bv, bok := s.valueOf(c.B)
		return lok && aok && bok && abs(lv-((av+bv)/2+c.Offset)) <= tolerance
	case constraint.KindContains:
		for _, eid := range c.Elements {
			ex, exok := s.valueOf(primitive(eid, "x"))
			er, erok := s.valueOf(primitive(eid, "right"))
			ey, eyok := s.valueOf(primitive(eid, "y"))
			eb, ebok := s.valueOf(primitive(eid, "bottom"))
			cx, cxok := s.valueOf(primitive(c.Container, "x"))
			cr, crok := s.valueOf(primitive(c.Container, "right"))
			cy, cyok := s.valueOf(primitive(c.Container, "y"))
			cb, cbok := s.valueOf(primitive(c.Container, "bottom"))
			if !(exok && erok && eyok && ebok && cxok && crok && cyok && cbok) {
				return false
			}
			if cx > ex-c.Padding+tolerance || cr < er+c.Padding-tolerance ||
				cy > ey-c.Padding+tolerance || cb < eb+c.Padding-tolerance {
				return false
			}
		}
		return true
	}
	return true
}

package solver

import (
	"github.com/illustrate/illustrate/pkg/constraint"
)

const tolerance = 1.0

// Solver accumulates constraints and stay values for a single solve pass.
// Construct one per phase of the layout engine and discard it once Solve
// has run; there is no shared singleton state.
type Solver struct {
	values     map[constraint.Variable]float64
	determined map[constraint.Variable]bool
	required   []constraint.Constraint
	weak       []constraint.Constraint
	stays      []stay
}

type stay struct {
	v     constraint.Variable
	value float64
}

// New creates an empty solver.
func New() *Solver {
	return &Solver{
		values:     map[constraint.Variable]float64{},
		determined: map[constraint.Variable]bool{},
	}
}

// Add registers a constraint. Its origin decides whether it is treated as
// required (user, template-internal) or weak/overridable (intrinsic,
// layout-container), per spec §7: intrinsic and layout-container hints
// never conflict with an explicit user constraint.
func (s *Solver) Add(c constraint.Constraint) {
	if c.Source.Origin.Required() {
		s.required = append(s.required, c)
	} else {
		s.weak = append(s.weak, c)
	}
}

// AddStay pins v to value with the lowest priority: it is only applied if
// no required or weak constraint ever determines v.
func (s *Solver) AddStay(v constraint.Variable, value float64) {
	s.stays = append(s.stays, stay{v: v, value: value})
}

// Seed pre-populates a variable with a known value, as if a required Fixed
// constraint had set it: later weak writes to v are ignored and later
// required writes are only checked against it within tolerance.
func (s *Solver) Seed(v constraint.Variable, value float64) {
	s.values[v] = value
	s.determined[v] = true
}

// Value returns the resolved value of v, expanding derived properties on
// demand. Call only after Solve has returned successfully.
func (s *Solver) Value(v constraint.Variable) (float64, bool) {
	return s.valueOf(v)
}

func primitive(id, prop string) constraint.Variable {
	return constraint.Variable{ElementID: id, Property: prop}
}

func (s *Solver) valueOf(v constraint.Variable) (float64, bool) {
	switch v.Property {
	case "center_x":
		x, xok := s.values[primitive(v.ElementID, "x")]
		w, wok := s.values[primitive(v.ElementID, "width")]
		if xok && wok {
			return x + w/2, true
		}
		return 0, false
	case "center_y":
		y, yok := s.values[primitive(v.ElementID, "y")]
		h, hok := s.values[primitive(v.ElementID, "height")]
		if yok && hok {
			return y + h/2, true
		}
		return 0, false
	case "right":
		x, xok := s.values[primitive(v.ElementID, "x")]
		w, wok := s.values[primitive(v.ElementID, "width")]
		if xok && wok {
			return x + w, true
		}
		return 0, false
	case "bottom":
		y, yok := s.values[primitive(v.ElementID, "y")]
		h, hok := s.values[primitive(v.ElementID, "height")]
		if yok && hok {
			return y + h, true
		}
		return 0, false
	default:
		val, ok := s.values[v]
		return val, ok
	}
}

// setValue writes val into v, expanding derived properties into their
// backing primitive. ok is false only when a required write conflicts with
// an already-determined required value; changed reports whether the
// stored value moved enough to warrant another propagation pass.
func (s *Solver) setValue(v constraint.Variable, val float64, required bool) (ok bool, changed bool) {
	if required && s.determined[v] {
		cur := s.values[v]
		return abs(cur-val) <= tolerance, false
	}
	switch v.Property {
	case "center_x":
		if w, ok := s.values[primitive(v.ElementID, "width")]; ok {
			return s.setValue(primitive(v.ElementID, "x"), val-w/2, required)
		}
		return true, false
	case "center_y":
		if h, ok := s.values[primitive(v.ElementID, "height")]; ok {
			return s.setValue(primitive(v.ElementID, "y"), val-h/2, required)
		}
		return true, false
	case "right":
		if w, ok := s.values[primitive(v.ElementID, "width")]; ok {
			return s.setValue(primitive(v.ElementID, "x"), val-w, required)
		}
		return true, false
	case "bottom":
		if h, ok := s.values[primitive(v.ElementID, "height")]; ok {
			return s.setValue(primitive(v.ElementID, "y"), val-h, required)
		}
		return true, false
	default:
		if !required && s.determined[v] {
			return true, false // required value wins, ignore weak write
		}
		cur, had := s.values[v]
		changed = !had || abs(cur-val) > 1e-9
		s.values[v] = val
		if required {
			s.determined[v] = true
		}
		return true, changed
	}
}

// trySet is setValue for callers that only care whether anything changed,
// skipping the write entirely when the new value is already within
// tolerance of the current one.
func (s *Solver) trySet(v constraint.Variable, val float64, required bool) bool {
	if cur, ok := s.values[v]; ok && abs(cur-val) <= tolerance {
		return false
	}
	_, changed := s.setValue(v, val, required)
	return changed
}

// Solve runs fixed-point substitution over the required and weak
// constraints, applies stay constraints for anything still undetermined,
// and validates that every required constraint is satisfied within
// tolerance. It returns *UnsatisfiableRequiredError if not.
func (s *Solver) Solve() error {
	maxPasses := (len(s.required)+len(s.weak))*2 + 8
	for pass := 0; pass < maxPasses; pass++ {
		changed := false
		for _, c := range s.weak {
			if s.applyOnce(c, false) {
				changed = true
			}
		}
		for _, c := range s.required {
			if s.applyOnce(c, true) {
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	for _, st := range s.stays {
		if _, ok := s.values[st.v]; !ok {
			s.values[st.v] = st.value
		}
	}
	// A second propagation pass lets constraints that depended on a
	// just-applied stay value resolve: weak parent-relative offsets
	// (child.x = parent.x + dx from a root's stay) as well as required ones.
	for pass := 0; pass < maxPasses; pass++ {
		changed := false
		for _, c := range s.weak {
			if s.applyOnce(c, false) {
				changed = true
			}
		}
		for _, c := range s.required {
			if s.applyOnce(c, true) {
				changed = true
			}
		}
		if !changed {
			break
		}
	}

	var failures []constraint.Source
	for _, c := range s.required {
		if !s.satisfied(c) {
			failures = append(failures, c.Source)
		}
	}
	if len(failures) > 0 {
		return &UnsatisfiableRequiredError{Sources: failures}
	}
	return nil
}

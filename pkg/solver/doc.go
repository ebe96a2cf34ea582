// Package solver is a small Cassowary-style linear constraint solver
// wrapper. It maps (element, property) pairs to values, expands derived
// properties (center_x, center_y, right, bottom) to linear combinations of
// the primitive x/y/width/height variables, and resolves required
// constraints plus weak stay constraints deterministically by repeated
// substitution.
//
// This is not a general simplex solver: the constraint grammar accepted by
// the layout engine (Fixed, Equal-with-offset, inequalities against a
// constant or another variable, Midpoint, Contains) is closed and small
// enough that fixed-point substitution converges in a bounded number of
// passes without needing a dual-simplex tableau.
package solver

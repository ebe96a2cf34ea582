package ast

// ConstraintOp selects the relation a constrain statement expresses.
type ConstraintOp int

const (
	OpEqual ConstraintOp = iota
	OpGreaterOrEqual
	OpLessOrEqual
)

// RHSKind discriminates the right-hand side of a constrain statement.
type RHSKind int

const (
	RHSConstant RHSKind = iota
	RHSPropertyOffset
	RHSMidpoint
	RHSContains
)

// ConstraintRHS is the right-hand side of a `constrain` statement. Exactly
// the fields matching Kind are meaningful.
type ConstraintRHS struct {
	Kind RHSKind `yaml:"kind"`

	// RHSConstant
	Constant float64 `yaml:"constant,omitempty"`

	// RHSPropertyOffset: subject <op> Ref + Offset
	Ref    PropertyRef `yaml:"ref,omitempty"`
	Offset float64     `yaml:"offset,omitempty"`

	// RHSMidpoint: subject = (A + B) / 2 + Offset
	A, B PropertyRef `yaml:"-"`

	// RHSContains: Subject is the container; Elements are the contained
	// children; Padding is the required clearance on every edge.
	Elements []ElementPath `yaml:"elements,omitempty"`
	Padding  float64       `yaml:"padding,omitempty"`
}

// ConstrainStmt is one `constrain <subject> <op> <rhs>` statement. Anchor
// references (subject or rhs properties of the form <name>_x / <name>_y,
// e.g. right_conn_x) are split by AnchorProperty and deferred by the
// collector when <name> is an anchor declared on that element.
type ConstrainStmt struct {
	Span    Span          `yaml:"span,omitempty"`
	Op      ConstraintOp  `yaml:"op"`
	Subject PropertyRef   `yaml:"subject"`
	RHS     ConstraintRHS `yaml:"rhs"`
}

// AnchorProperty reports whether a property name has the <name>_x /
// <name>_y shape of an anchor coordinate reference, returning <name> and
// the axis. It checks only the suffix (center_x also matches); whether
// <name> is a declared anchor is left to the caller.
func AnchorProperty(property string) (anchorName string, axis string, ok bool) {
	const xSuffix = "_x"
	const ySuffix = "_y"
	if len(property) > len(xSuffix) && property[len(property)-len(xSuffix):] == xSuffix {
		return property[:len(property)-len(xSuffix)], "x", true
	}
	if len(property) > len(ySuffix) && property[len(property)-len(ySuffix):] == ySuffix {
		return property[:len(property)-len(ySuffix)], "y", true
	}
	return "", "", false
}

// DesugarAlignment converts an AlignmentStmt into the equivalent Constrain
// statement: `align a.left = b.left` becomes `constrain a.left = b.left`
// with no offset. This is the chosen resolution of the `align`-vs-`constrain`
// Open Question: align is pure sugar for an equality constraint.
func DesugarAlignment(a AlignmentStmt) ConstrainStmt {
	return ConstrainStmt{
		Op:      OpEqual,
		Subject: a.Left,
		RHS: ConstraintRHS{
			Kind: RHSPropertyOffset,
			Ref:  a.Right,
		},
	}
}

package layout

import (
	"strings"

	"github.com/illustrate/illustrate/pkg/ast"
	"github.com/illustrate/illustrate/pkg/constraint"
)

// stayEntry is a lowest-priority fallback value for a solver variable,
// applied only when nothing else ever determines it.
type stayEntry struct {
	Var   constraint.Variable
	Value float64
}

// deferredAnchorConstraint is a constrain statement whose subject or
// right-hand side names a declared anchor (e.g. "pump.drain_x"), which
// cannot be converted to a solver constraint until the anchor's backing
// property has itself been solved.
type deferredAnchorConstraint struct {
	Stmt ast.ConstrainStmt
}

// Collector walks a resolved document (post template-expansion) and emits
// the constraint list the solver needs, grounded on the three-pass design
// of original_source/src/layout/collector.rs: intrinsic sizes first, then
// layout-container arrangement, then explicit user constraints.
type Collector struct {
	cfg Config

	Constraints []constraint.Constraint
	Stays       []stayEntry
	Deferred    []deferredAnchorConstraint

	// anchors maps a container's own id to its declared anchors, keyed by
	// the anchor's local name (the resolver's container-id prefix
	// stripped), matching the local, unprefixed base name AnchorProperty
	// extracts from a constrain reference such as "right_conn_x".
	anchors map[string]map[string]ast.AnchorDeclStmt
}

// NewCollector creates a collector using cfg for intrinsic defaults.
func NewCollector(cfg Config) *Collector {
	return &Collector{cfg: cfg, anchors: map[string]map[string]ast.AnchorDeclStmt{}}
}

// Collect runs all three passes over stmts, accumulating onto the
// collector's Constraints/Stays/Deferred fields.
func (c *Collector) Collect(stmts []ast.Statement) {
	tree := make([]*provisional, 0, len(stmts))
	for _, s := range stmts {
		if p := c.buildProvisional(s); p != nil {
			tree = append(tree, p)
		}
	}
	for _, p := range tree {
		c.emitProvisional(p, constraint.Variable{})
	}
	for _, s := range stmts {
		c.collectUserConstraints(s)
	}
}

// provisional is one node of the bottom-up procedural pre-layout pass: an
// element's own size plus each child's offset from this element's origin.
// It gives every identifier — shape or container — a concrete width and
// height before the solver runs, so a `constrain` statement can reference
// a container's .right or .center_x exactly as it can a leaf shape's.
type provisional struct {
	id       string
	w, h     float64
	children []provisionalChild
}

type provisionalChild struct {
	node   *provisional
	dx, dy float64
}

func (c *Collector) buildProvisional(s ast.Statement) *provisional {
	switch s.Kind {
	case ast.StmtShape:
		w, h := c.intrinsicSize(*s.Shape)
		return &provisional{id: s.Shape.Name, w: w, h: h}
	case ast.StmtLayout:
		return c.buildContainer(s.Layout.Name, s.Layout.Mode, s.Layout.Modifiers, s.Layout.Children)
	case ast.StmtGroup:
		return c.buildContainer(s.Group.Name, ast.LayoutStack, s.Group.Modifiers, s.Group.Children)
	case ast.StmtLabel:
		if s.Label.Inner != nil {
			return c.buildProvisional(*s.Label.Inner)
		}
	}
	return nil
}

func (c *Collector) intrinsicSize(shape ast.ShapeStmt) (float64, float64) {
	if size, ok := ast.NumberOf(shape.Modifiers, ast.KeySize); ok {
		return size, size
	}
	w, hasW := ast.NumberOf(shape.Modifiers, ast.KeyWidth)
	h, hasH := ast.NumberOf(shape.Modifiers, ast.KeyHeight)
	dw, dh := c.defaultSize(shape.Primitive)
	if !hasW {
		w = dw
	}
	if !hasH {
		h = dh
	}
	return w, h
}

func (c *Collector) defaultSize(primitive string) (float64, float64) {
	switch primitive {
	case "circle":
		d := c.cfg.DefaultCircleRadius * 2
		return d, d
	case "line":
		return c.cfg.DefaultLineWidth, 1
	case "ellipse":
		return c.cfg.DefaultEllipseWidth, c.cfg.DefaultEllipseHeight
	default:
		return c.cfg.DefaultRectWidth, c.cfg.DefaultRectHeight
	}
}

func (c *Collector) buildContainer(name string, mode ast.LayoutMode, mods []ast.Modifier, stmts []ast.Statement) *provisional {
	gap, ok := ast.NumberOf(mods, ast.KeyGap)
	if !ok {
		gap = c.cfg.ElementSpacing
	}

	var children []*provisional
	for _, s := range stmts {
		if s.Kind == ast.StmtAnchorDecl {
			c.registerAnchor(name, *s.AnchorDecl)
			continue
		}
		if p := c.buildProvisional(s); p != nil {
			children = append(children, p)
		}
	}

	var laid []provisionalChild
	switch mode {
	case ast.LayoutRow:
		x := 0.0
		for _, ch := range children {
			laid = append(laid, provisionalChild{node: ch, dx: x, dy: 0})
			x += ch.w + gap
		}
	case ast.LayoutColumn:
		y := 0.0
		for _, ch := range children {
			laid = append(laid, provisionalChild{node: ch, dx: 0, dy: y})
			y += ch.h + gap
		}
	case ast.LayoutGrid:
		columns := int(len(children))
		if n, ok := ast.NumberOf(mods, ast.KeyColumns); ok && n > 0 {
			columns = int(n)
		} else if columns > 1 {
			columns = ceilSqrt(len(children))
		}
		laid = gridLayout(children, columns, gap)
	default: // LayoutStack and plain groups: children overlay at the origin.
		for _, ch := range children {
			laid = append(laid, provisionalChild{node: ch, dx: 0, dy: 0})
		}
	}

	w, h := 0.0, 0.0
	for _, lc := range laid {
		if r := lc.dx + lc.node.w; r > w {
			w = r
		}
		if b := lc.dy + lc.node.h; b > h {
			h = b
		}
	}

	return &provisional{id: name, w: w, h: h, children: laid}
}

func ceilSqrt(n int) int {
	for r := 1; ; r++ {
		if r*r >= n {
			return r
		}
	}
}

func gridLayout(children []*provisional, columns int, gap float64) []provisionalChild {
	if columns < 1 {
		columns = 1
	}
	rows := (len(children) + columns - 1) / columns
	colWidths := make([]float64, columns)
	rowHeights := make([]float64, rows)
	for i, ch := range children {
		col, row := i%columns, i/columns
		if ch.w > colWidths[col] {
			colWidths[col] = ch.w
		}
		if ch.h > rowHeights[row] {
			rowHeights[row] = ch.h
		}
	}
	colOffset := make([]float64, columns)
	for i := 1; i < columns; i++ {
		colOffset[i] = colOffset[i-1] + colWidths[i-1] + gap
	}
	rowOffset := make([]float64, rows)
	for i := 1; i < rows; i++ {
		rowOffset[i] = rowOffset[i-1] + rowHeights[i-1] + gap
	}
	laid := make([]provisionalChild, len(children))
	for i, ch := range children {
		col, row := i%columns, i/columns
		laid[i] = provisionalChild{node: ch, dx: colOffset[col], dy: rowOffset[row]}
	}
	return laid
}

// registerAnchor records a template-declared anchor under its local name:
// decl.Name already carries the resolver's full container-id prefix (e.g.
// "c1_right_conn"), which collectConstrain's raw, unprefixed constraint
// references ("right_conn_x") never include, so the prefix is stripped
// before storing.
func (c *Collector) registerAnchor(containerID string, decl ast.AnchorDeclStmt) {
	if c.anchors[containerID] == nil {
		c.anchors[containerID] = map[string]ast.AnchorDeclStmt{}
	}
	local := strings.TrimPrefix(decl.Name, containerID+"_")
	c.anchors[containerID][local] = decl
}

// emitProvisional walks the provisional tree, emitting weak size/position
// constraints for every element. Root nodes (parent is the zero Variable)
// get a lowest-priority (0, 0) stay; every other node is positioned
// relative to its parent so that a later required constraint moving the
// parent still carries its children along.
func (c *Collector) emitProvisional(p *provisional, parent constraint.Variable) {
	src := constraint.Source{Origin: constraint.OriginLayoutContainer, Description: "provisional size for " + p.id}
	c.Constraints = append(c.Constraints,
		constraint.Fixed(primitiveVar(p.id, "width"), p.w, src),
		constraint.Fixed(primitiveVar(p.id, "height"), p.h, src),
	)
	if parent.IsZero() {
		c.Stays = append(c.Stays,
			stayEntry{primitiveVar(p.id, "x"), 0},
			stayEntry{primitiveVar(p.id, "y"), 0},
		)
	}
	for _, ch := range p.children {
		childSrc := constraint.Source{Origin: constraint.OriginLayoutContainer, Description: "arrange " + ch.node.id + " within " + p.id}
		c.Constraints = append(c.Constraints,
			constraint.Equal(primitiveVar(ch.node.id, "x"), primitiveVar(p.id, "x"), ch.dx, childSrc),
			constraint.Equal(primitiveVar(ch.node.id, "y"), primitiveVar(p.id, "y"), ch.dy, childSrc),
		)
		c.emitProvisional(ch.node, primitiveVar(p.id, "x"))
	}
}

func primitiveVar(id, prop string) constraint.Variable {
	return constraint.Variable{ElementID: id, Property: prop}
}

// collectUserConstraints walks the statement tree emitting required
// constraints for `constrain` and (desugared) `align` statements, deferring
// any that reference a declared anchor until the anchor's own property has
// a value.
func (c *Collector) collectUserConstraints(s ast.Statement) {
	switch s.Kind {
	case ast.StmtConstrain:
		c.collectConstrain(*s.Constrain)
	case ast.StmtAlignment:
		c.collectConstrain(ast.DesugarAlignment(*s.Alignment))
	case ast.StmtLayout:
		for _, ch := range s.Layout.Children {
			c.collectUserConstraints(ch)
		}
	case ast.StmtGroup:
		for _, ch := range s.Group.Children {
			c.collectUserConstraints(ch)
		}
	case ast.StmtLabel:
		if s.Label.Inner != nil {
			c.collectUserConstraints(*s.Label.Inner)
		}
	}
}

func (c *Collector) collectConstrain(stmt ast.ConstrainStmt) {
	if c.hasAnchorRef(stmt) {
		c.Deferred = append(c.Deferred, deferredAnchorConstraint{Stmt: stmt})
		return
	}
	src := constraint.Source{Span: stmt.Span, Origin: constraint.OriginUser, Description: "constrain " + stmt.Subject.String()}
	subject := propertyVariable(stmt.Subject)
	switch stmt.RHS.Kind {
	case ast.RHSConstant:
		c.Constraints = append(c.Constraints, compareConstraint(stmt.Op, subject, constraint.Variable{}, stmt.RHS.Constant, src))
	case ast.RHSPropertyOffset:
		c.Constraints = append(c.Constraints, compareConstraint(stmt.Op, subject, propertyVariable(stmt.RHS.Ref), stmt.RHS.Offset, src))
	case ast.RHSMidpoint:
		c.Constraints = append(c.Constraints, constraint.Midpoint(subject, propertyVariable(stmt.RHS.A), propertyVariable(stmt.RHS.B), stmt.RHS.Offset, src))
	case ast.RHSContains:
		ids := make([]string, len(stmt.RHS.Elements))
		for i, e := range stmt.RHS.Elements {
			ids[i] = e.Leaf()
		}
		c.Constraints = append(c.Constraints, constraint.Contains(stmt.Subject.Path.Leaf(), ids, stmt.RHS.Padding, src))
	}
}

func compareConstraint(op ast.ConstraintOp, left, right constraint.Variable, offset float64, src constraint.Source) constraint.Constraint {
	switch op {
	case ast.OpGreaterOrEqual:
		return constraint.GE(left, right, offset, src)
	case ast.OpLessOrEqual:
		return constraint.LE(left, right, offset, src)
	default:
		if right.IsZero() {
			return constraint.Fixed(left, offset, src)
		}
		return constraint.Equal(left, right, offset, src)
	}
}

func propertyVariable(ref ast.PropertyRef) constraint.Variable {
	return constraint.Variable{ElementID: ref.Path.Leaf(), Property: mapProperty(ref.Property)}
}

func mapProperty(name string) string {
	switch name {
	case "left":
		return "x"
	case "top":
		return "y"
	case "center":
		return "center_x"
	default:
		return name
	}
}

func (c *Collector) hasAnchorRef(stmt ast.ConstrainStmt) bool {
	if c.refIsAnchor(stmt.Subject) {
		return true
	}
	switch stmt.RHS.Kind {
	case ast.RHSPropertyOffset:
		return c.refIsAnchor(stmt.RHS.Ref)
	case ast.RHSMidpoint:
		return c.refIsAnchor(stmt.RHS.A) || c.refIsAnchor(stmt.RHS.B)
	}
	return false
}

func (c *Collector) refIsAnchor(ref ast.PropertyRef) bool {
	anchorName, _, ok := ast.AnchorProperty(ref.Property)
	if !ok {
		return false
	}
	_, declared := c.anchors[ref.Path.Leaf()][anchorName]
	return declared
}

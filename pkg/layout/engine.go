package layout

import (
	"github.com/illustrate/illustrate/pkg/ast"
	"github.com/illustrate/illustrate/pkg/constraint"
	"github.com/illustrate/illustrate/pkg/geom"
	"github.com/illustrate/illustrate/pkg/pathres"
	"github.com/illustrate/illustrate/pkg/routing"
	"github.com/illustrate/illustrate/pkg/solver"
)

// Compute runs the full two-phase layout pipeline over a resolved (post
// template-expansion) document, grounded on the six-phase pipeline sketched
// in original_source/src/layout/engine.rs's module doc comment: collect,
// local solve, rotate, global solve, anchor recompute, route. That file
// held no executable bodies to port, so the phases below are synthesised
// from collector.rs, transform.rs and routing.rs individually.
//
// Because every child's position is collected as an offset relative to
// its parent (see Collector.emitProvisional) rather than as an
// independent absolute variable, a single shared constraint set already
// gives Phase D's "global solve moves whole instances without touching
// inter-child offsets" property for free: re-solving with a rotated
// instance's own box pinned shifts every descendant along with it,
// without a separate per-instance local solver. Phase A/B's partition is
// therefore folded into phase one below rather than implemented as an
// isolated per-instance solve.
func Compute(doc ast.Document, cfg Config, rotations map[string]float64) (*Result, error) {
	if err := ValidateReferences(doc); err != nil {
		return nil, err
	}

	col := NewCollector(cfg)
	col.Collect(doc.Statements)

	// Phase A/B: solve every intrinsic/container/user constraint once,
	// giving every instance its pre-rotation bounds.
	s1 := seededSolver(col)
	if err := s1.Solve(); err != nil {
		return nil, &Error{Kind: ErrSolver, Cause: err}
	}

	// Phase C: build a preliminary tree from the pre-rotation solve so
	// each rotated instance's post-rotation AABB and rotated anchors are
	// known. finishElement already rotates an instance's own bounds and
	// SimpleShapeAnchors; materializeAnchors extends that to declared
	// template anchors, rotating them through their owning instance's
	// transform since they are defined relative to children that render
	// unrotated inside that instance's <g transform>.
	prelim := NewResult()
	for _, stmt := range doc.Statements {
		if e := buildElement(stmt, s1, rotations, prelim); e != nil {
			prelim.AddElement(e)
		}
	}
	materializeAnchors(col, prelim)

	// Phase D: re-solve globally with weak stays pinning each rotated
	// instance's (x, y, width, height) to its post-rotation values, per
	// spec §4.6. These are added after the collector's own provisional
	// constraints so they take priority among weak writes, while still
	// yielding to any required (explicit user) constraint on the same
	// property, matching "weak stay-constraint" rather than a hard pin.
	s2 := seededSolver(col)
	for id, angle := range rotations {
		if angle == 0 {
			continue
		}
		e, ok := prelim.GetByName(id)
		if !ok {
			continue
		}
		pinRotatedBounds(s2, id, e.Bounds)
	}
	if err := s2.Solve(); err != nil {
		return nil, &Error{Kind: ErrSolver, Cause: err}
	}

	// Phase E: resolve constraints that reference a declared anchor
	// against the rotated anchors phase C materialized, then fold the
	// result into one final solve.
	if len(col.Deferred) > 0 {
		for _, d := range col.Deferred {
			c, ok := resolveAnchorConstraint(d.Stmt, prelim)
			if ok {
				s2.Add(c)
			}
		}
		if err := s2.Solve(); err != nil {
			return nil, &Error{Kind: ErrSolver, Cause: err}
		}
	}

	// Phase F: build the final tree from the fully-resolved solver and
	// recompute every instance's anchors, declared anchors included, so
	// routing sees consistent, final coordinates.
	result := NewResult()
	for _, stmt := range doc.Statements {
		if e := buildElement(stmt, s2, rotations, result); e != nil {
			result.AddElement(e)
		}
	}
	materializeAnchors(col, result)

	result.Connections = collectConnections(doc.Statements, result, cfg)
	result.ComputeBounds()
	return result, nil
}

func seededSolver(col *Collector) *solver.Solver {
	s := solver.New()
	for _, st := range col.Stays {
		s.AddStay(st.Var, st.Value)
	}
	for _, c := range col.Constraints {
		s.Add(c)
	}
	return s
}

// pinRotatedBounds adds the weak stay-constraints spec §4.6 Phase D
// describes: a rotated instance's (x, y, width, height) default to its
// post-rotation AABB, but a required constraint on the same property
// (e.g. an explicit `constrain` positioning the instance against a
// sibling) still overrides them, since OriginLayoutContainer is weak.
func pinRotatedBounds(s *solver.Solver, id string, bounds geom.Rect) {
	src := constraint.Source{Origin: constraint.OriginLayoutContainer, Description: "post-rotation stay for " + id}
	s.Add(constraint.Fixed(primitiveVar(id, "x"), bounds.X, src))
	s.Add(constraint.Fixed(primitiveVar(id, "y"), bounds.Y, src))
	s.Add(constraint.Fixed(primitiveVar(id, "width"), bounds.Width, src))
	s.Add(constraint.Fixed(primitiveVar(id, "height"), bounds.Height, src))
}

// materializeAnchors attaches every template-declared anchor to its
// owning instance's Anchors, per spec §3/§4.7: a declared anchor must be
// a real, queryable Anchor usable as a connection endpoint, not just
// internal deferred-constraint bookkeeping. decl.Position names an
// anchor on a backing element (e.g. "body.right"); the declared anchor's
// position and direction start from that anchor and are then rotated
// through the owning instance's own transform, since the backing element
// renders in local, unrotated coordinates inside the instance's group.
func materializeAnchors(col *Collector, result *Result) {
	for containerID, decls := range col.anchors {
		container, ok := result.GetByName(containerID)
		if !ok {
			continue
		}
		t := NewRotationTransform(container.Rotation, container.RotationCenter)
		for localName, decl := range decls {
			backing, ok := result.GetByName(decl.Position.Path.Leaf())
			if !ok {
				continue
			}
			a, ok := backing.Anchors.Get(decl.Position.Property)
			if !ok {
				continue
			}
			a.Name = localName
			if dir, ok := anchorDirectionByName(decl.Direction); ok {
				a.Direction = dir
			}
			if container.Anchors == nil {
				container.Anchors = AnchorSet{}
			}
			container.Anchors[localName] = t.TransformAnchor(a)
		}
	}
}

// resolveAnchorConstraint converts a deferred constrain statement into a
// concrete constraint once the declared anchor it references has a
// materialized, rotation-correct position in prelim. Only an anchor
// reference on the right-hand side is supported: an anchor is a derived
// read-only position, so it can serve as something else's target but can
// never itself be the subject being positioned.
func resolveAnchorConstraint(stmt ast.ConstrainStmt, prelim *Result) (constraint.Constraint, bool) {
	if stmt.RHS.Kind != ast.RHSPropertyOffset {
		return constraint.Constraint{}, false
	}
	anchorName, axis, ok := ast.AnchorProperty(stmt.RHS.Ref.Property)
	if !ok {
		return constraint.Constraint{}, false
	}
	container, ok := prelim.GetByName(stmt.RHS.Ref.Path.Leaf())
	if !ok {
		return constraint.Constraint{}, false
	}
	a, ok := container.Anchors.Get(anchorName)
	if !ok {
		return constraint.Constraint{}, false
	}
	val := a.Position.X
	if axis == "y" {
		val = a.Position.Y
	}
	src := constraint.Source{Span: stmt.Span, Origin: constraint.OriginUser, Description: "constrain (anchor) " + stmt.Subject.String()}
	subject := propertyVariable(stmt.Subject)
	return compareConstraint(stmt.Op, subject, constraint.Variable{}, val+stmt.RHS.Offset, src), true
}

func buildElement(stmt ast.Statement, s *solver.Solver, rotations map[string]float64, result *Result) *Element {
	switch stmt.Kind {
	case ast.StmtShape:
		return finishElement(&Element{
			ID:        stmt.Shape.Name,
			Kind:      ast.StmtShape,
			Primitive: stmt.Shape.Primitive,
			Style:     DefaultStyle().Merge(StyleFromModifiers(stmt.Shape.Modifiers)),
		}, s, rotations, stmt.Shape.Path)
	case ast.StmtLayout:
		e := &Element{ID: stmt.Layout.Name, Kind: ast.StmtLayout, Style: DefaultStyle().Merge(StyleFromModifiers(stmt.Layout.Modifiers))}
		e.Children = buildChildren(stmt.Layout.Children, s, rotations, result)
		return finishElement(e, s, rotations, nil)
	case ast.StmtGroup:
		e := &Element{ID: stmt.Group.Name, Kind: ast.StmtGroup, Style: DefaultStyle().Merge(StyleFromModifiers(stmt.Group.Modifiers))}
		e.Children = buildChildren(stmt.Group.Children, s, rotations, result)
		return finishElement(e, s, rotations, nil)
	case ast.StmtLabel:
		if stmt.Label.Inner == nil {
			return nil
		}
		e := buildElement(*stmt.Label.Inner, s, rotations, result)
		if e != nil {
			e.Label = buildLabel(e.Bounds, stmt.Label.Text, stmt.Label.Position)
		}
		return e
	default:
		return nil
	}
}

func buildChildren(stmts []ast.Statement, s *solver.Solver, rotations map[string]float64, result *Result) []*Element {
	var children []*Element
	for _, st := range stmts {
		if e := buildElement(st, s, rotations, result); e != nil {
			children = append(children, e)
		}
	}
	return children
}

func finishElement(e *Element, s *solver.Solver, rotations map[string]float64, pathDecl *ast.PathDecl) *Element {
	x, _ := s.Value(constraint.Variable{ElementID: e.ID, Property: "x"})
	y, _ := s.Value(constraint.Variable{ElementID: e.ID, Property: "y"})
	w, _ := s.Value(constraint.Variable{ElementID: e.ID, Property: "width"})
	h, _ := s.Value(constraint.Variable{ElementID: e.ID, Property: "height"})
	bounds := geom.Rect{X: x, Y: y, Width: w, Height: h}
	e.Bounds = bounds
	e.Anchors = SimpleShapeAnchors(bounds)

	if pathDecl != nil {
		resolved := pathres.Resolve(*pathDecl, geom.Point{X: x, Y: y})
		e.Path = &resolved
	}

	if angle, rotated := rotations[e.ID]; rotated && angle != 0 {
		t := NewRotationTransform(angle, bounds.Center())
		e.Rotation = angle
		e.RotationCenter = bounds.Center()
		e.Anchors = e.Anchors.Transform(t)
		e.Bounds = t.TransformBounds(bounds)
	}
	return e
}

func buildLabel(bounds geom.Rect, text, position string) *LabelLayout {
	l := &LabelLayout{Text: text, Anchor: TextMiddle}
	center := bounds.Center()
	switch position {
	case "above":
		l.Position = geom.Point{X: center.X, Y: bounds.Y - 4}
	case "below":
		l.Position = geom.Point{X: center.X, Y: bounds.Bottom() + labelLineHeight}
	case "left":
		l.Anchor = TextEnd
		l.Position = geom.Point{X: bounds.X - 4, Y: center.Y}
	case "right":
		l.Anchor = TextStart
		l.Position = geom.Point{X: bounds.Right() + 4, Y: center.Y}
	default:
		l.Position = center
	}
	return l
}

func collectConnections(stmts []ast.Statement, result *Result, cfg Config) []ConnectionLayout {
	var conns []ConnectionLayout
	var walk func([]ast.Statement)
	walk = func(stmts []ast.Statement) {
		for _, stmt := range stmts {
			switch stmt.Kind {
			case ast.StmtConnection:
				if c, ok := buildConnection(*stmt.Connection, result, cfg); ok {
					conns = append(conns, c)
				}
			case ast.StmtLayout:
				walk(stmt.Layout.Children)
			case ast.StmtGroup:
				walk(stmt.Group.Children)
			}
		}
	}
	walk(stmts)
	return conns
}

func buildConnection(stmt ast.ConnectionStmt, result *Result, cfg Config) (ConnectionLayout, bool) {
	from, ok := result.GetByName(stmt.From.Leaf())
	if !ok {
		return ConnectionLayout{}, false
	}
	to, ok := result.GetByName(stmt.To.Leaf())
	if !ok {
		return ConnectionLayout{}, false
	}

	vias := make([]geom.Point, len(stmt.Vias))
	for i, v := range stmt.Vias {
		vias[i] = geom.Point{X: v.X, Y: v.Y}
	}

	mode := routing.Orthogonal
	switch stmt.Mode {
	case ast.RouteDirect:
		mode = routing.Direct
	case ast.RouteCurved:
		mode = routing.Curved
	}

	// A named anchor can be a materialized template anchor (not just a
	// cardinal edge); those route via their exact known position and
	// direction rather than a bounds-derived edge pick.
	if a, ok := from.Anchors.Get(stmt.FromAnchor); ok && !isCardinalName(stmt.FromAnchor) {
		if b, ok := to.Anchors.Get(stmt.ToAnchor); ok && !isCardinalName(stmt.ToAnchor) {
			path := routing.RouteWithEndpoints(mode, a.Position, b.Position, a.Direction.ToVector(), b.Direction.ToVector(), vias)
			return ConnectionLayout{FromID: from.ID, ToID: to.ID, Direction: stmt.Direction, Path: path, Style: StyleFromModifiers(stmt.Modifiers)}, true
		}
	}

	fromEdge := -1
	if e, ok := routing.EdgeByName(stmt.FromAnchor); ok {
		fromEdge = int(e)
	}
	toEdge := -1
	if e, ok := routing.EdgeByName(stmt.ToAnchor); ok {
		toEdge = int(e)
	}

	path := routing.Route(mode, from.Bounds, to.Bounds, fromEdge, toEdge, vias)
	return ConnectionLayout{
		FromID:    from.ID,
		ToID:      to.ID,
		Direction: stmt.Direction,
		Path:      path,
		Style:     StyleFromModifiers(stmt.Modifiers),
	}, true
}

func isCardinalName(name string) bool {
	switch name {
	case "top", "bottom", "left", "right":
		return true
	default:
		return false
	}
}

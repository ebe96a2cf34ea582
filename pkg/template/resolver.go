package template

import (
	"strings"

	"github.com/illustrate/illustrate/pkg/ast"
)

// Resolver expands template instances into plain statements.
type Resolver struct {
	registry  *Registry
	Rotations map[string]float64
}

// NewResolver creates a resolver backed by reg.
func NewResolver(reg *Registry) *Resolver {
	return &Resolver{registry: reg, Rotations: map[string]float64{}}
}

// context carries the parameter overlay, the accumulated name prefix, and
// cycle-detection state through a single expansion.
type context struct {
	params    map[string]ast.StyleValue
	prefix    string
	resolving map[string]bool
	chain     []string
}

func rootContext() context {
	return context{params: map[string]ast.StyleValue{}, resolving: map[string]bool{}}
}

// nested builds the context for expanding template body newPrefix came
// from, joining prefixes with "_" exactly as the registered instance name
// will be joined to its own children.
func (c context) nested(newPrefix string, newParams map[string]ast.StyleValue) context {
	prefix := newPrefix
	if c.prefix != "" {
		prefix = c.prefix + "_" + newPrefix
	}
	resolving := make(map[string]bool, len(c.resolving))
	for k := range c.resolving {
		resolving[k] = true
	}
	chain := append(append([]string{}, c.chain...))
	return context{params: newParams, prefix: prefix, resolving: resolving, chain: chain}
}

func (c context) prefixName(name string) string {
	if c.prefix == "" {
		return name
	}
	return c.prefix + "_" + name
}

// prefixPath renames the leaf segment of p, which is the unique identifier
// the solver and element tree key on; earlier segments are documentation
// of nesting and are left untouched.
func (c context) prefixPath(p ast.ElementPath) ast.ElementPath {
	if len(p) == 0 {
		return p
	}
	out := make(ast.ElementPath, len(p))
	copy(out, p)
	out[len(out)-1] = c.prefixName(out[len(out)-1])
	return out
}

func (c context) prefixRef(r ast.PropertyRef) ast.PropertyRef {
	return ast.PropertyRef{Path: c.prefixPath(r.Path), Property: r.Property}
}

// ResolveDocument registers every top-level template declaration the
// registry does not already hold (a caller may have registered and loaded
// them beforehand with CollectFromStatements and LoadAllFileBased) and
// expands the rest of the document. Two declarations of the same name in
// doc fail with Duplicate. It returns the expanded statements in document
// order; the rotation angle of every template instance is recorded in
// r.Rotations against its fully-prefixed name (extracted while the
// instance node is still available, before it is replaced by a group or
// renamed shape).
func (r *Resolver) ResolveDocument(doc ast.Document) ([]ast.Statement, error) {
	seen := map[string]bool{}
	for _, s := range doc.Statements {
		if s.Kind != ast.StmtTemplateDecl {
			continue
		}
		name := s.TemplateDecl.Name
		if seen[name] {
			return nil, &Error{Kind: ErrDuplicate, Name: name}
		}
		seen[name] = true
		if !r.registry.Contains(name) {
			r.registry.templates[name] = FromDecl(*s.TemplateDecl)
		}
	}
	return r.resolveStatements(doc.Statements, rootContext())
}

func (r *Resolver) resolveStatements(stmts []ast.Statement, ctx context) ([]ast.Statement, error) {
	var out []ast.Statement
	for _, s := range stmts {
		if s.Kind == ast.StmtTemplateDecl {
			continue // consumed into the registry
		}
		expanded, err := r.resolveStatement(s, ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, expanded...)
	}
	return out, nil
}

func (r *Resolver) resolveStatement(s ast.Statement, ctx context) ([]ast.Statement, error) {
	switch s.Kind {
	case ast.StmtTemplateInstance:
		return r.resolveInstance(*s.TemplateInstance, s.Span, ctx)

	case ast.StmtShape:
		ns := *s.Shape
		ns.Name = ctx.prefixName(ns.Name)
		ns.Modifiers = substituteModifiers(ns.Modifiers, ctx.params)
		return []ast.Statement{{Kind: ast.StmtShape, Span: s.Span, Shape: &ns}}, nil

	case ast.StmtLayout:
		nl := *s.Layout
		nl.Name = ctx.prefixName(nl.Name)
		nl.Modifiers = substituteModifiers(nl.Modifiers, ctx.params)
		children, err := r.resolveStatements(nl.Children, ctx)
		if err != nil {
			return nil, err
		}
		nl.Children = children
		return []ast.Statement{{Kind: ast.StmtLayout, Span: s.Span, Layout: &nl}}, nil

	case ast.StmtGroup:
		ng := *s.Group
		ng.Name = ctx.prefixName(ng.Name)
		ng.Modifiers = substituteModifiers(ng.Modifiers, ctx.params)
		children, err := r.resolveStatements(ng.Children, ctx)
		if err != nil {
			return nil, err
		}
		ng.Children = children
		return []ast.Statement{{Kind: ast.StmtGroup, Span: s.Span, Group: &ng}}, nil

	case ast.StmtConnection:
		nc := *s.Connection
		nc.From = ctx.prefixPath(nc.From)
		nc.To = ctx.prefixPath(nc.To)
		nc.Modifiers = substituteModifiers(nc.Modifiers, ctx.params)
		return []ast.Statement{{Kind: ast.StmtConnection, Span: s.Span, Connection: &nc}}, nil

	case ast.StmtConstrain:
		nc := substituteConstrain(*s.Constrain, ctx)
		return []ast.Statement{{Kind: ast.StmtConstrain, Span: s.Span, Constrain: &nc}}, nil

	case ast.StmtAlignment:
		na := ast.AlignmentStmt{Left: ctx.prefixRef(s.Alignment.Left), Right: ctx.prefixRef(s.Alignment.Right)}
		return []ast.Statement{{Kind: ast.StmtAlignment, Span: s.Span, Alignment: &na}}, nil

	case ast.StmtLabel:
		nl := ast.LabelStmt{Text: s.Label.Text, Position: s.Label.Position}
		if s.Label.Inner != nil {
			inner, err := r.resolveStatement(*s.Label.Inner, ctx)
			if err != nil {
				return nil, err
			}
			if len(inner) > 0 {
				nl.Inner = &inner[0]
			}
		}
		return []ast.Statement{{Kind: ast.StmtLabel, Span: s.Span, Label: &nl}}, nil

	case ast.StmtAnchorDecl:
		na := *s.AnchorDecl
		na.Name = ctx.prefixName(na.Name)
		na.Position = ctx.prefixRef(na.Position)
		return []ast.Statement{{Kind: ast.StmtAnchorDecl, Span: s.Span, AnchorDecl: &na}}, nil

	default:
		return []ast.Statement{s}, nil
	}
}

func (r *Resolver) resolveInstance(inst ast.TemplateInstanceStmt, span ast.Span, ctx context) ([]ast.Statement, error) {
	fullName := ctx.prefixName(inst.Name)
	if inst.Rotation != nil {
		r.Rotations[fullName] = *inst.Rotation
	}

	if ctx.resolving[inst.Template] {
		chain := append(append([]string{}, ctx.chain...), inst.Template)
		return nil, &Error{Kind: ErrCircularReference, Chain: strings.Join(chain, " -> ")}
	}
	def, ok := r.registry.Get(inst.Template)
	if !ok {
		return nil, &Error{Kind: ErrNotFound, Name: inst.Template}
	}

	params := map[string]ast.StyleValue{}
	for _, p := range def.Parameters {
		params[p.Name] = p.Default
	}
	for _, a := range inst.Args {
		if def.HasParameter(a.Name) {
			params[a.Name] = a.Value
		}
		// unknown argument keys are ignored silently, per spec §4.3 step 2.
	}

	childCtx := ctx.nested(inst.Name, params)
	childCtx.resolving[inst.Template] = true
	childCtx.chain = append(childCtx.chain, inst.Template)

	expanded, err := r.resolveStatements(def.Body, childCtx)
	if err != nil {
		return nil, err
	}

	if len(expanded) == 1 {
		return []ast.Statement{renameStatement(expanded[0], fullName)}, nil
	}
	group := ast.GroupStmt{Name: fullName, Children: expanded}
	return []ast.Statement{{Kind: ast.StmtGroup, Span: span, Group: &group}}, nil
}

func renameStatement(s ast.Statement, name string) ast.Statement {
	switch s.Kind {
	case ast.StmtShape:
		s.Shape.Name = name
	case ast.StmtLayout:
		s.Layout.Name = name
	case ast.StmtGroup:
		s.Group.Name = name
	}
	return s
}

// substituteModifiers replaces any modifier value that is a bare parameter
// reference (an Identifier-kind value naming a parameter) with the
// overlaid parameter's value. Other modifiers pass through unchanged.
func substituteModifiers(mods []ast.Modifier, params map[string]ast.StyleValue) []ast.Modifier {
	if len(mods) == 0 {
		return mods
	}
	out := make([]ast.Modifier, len(mods))
	for i, m := range mods {
		if m.Value.Kind == ast.ValueIdentifier {
			if pv, ok := params[m.Value.Identifier]; ok {
				m.Value = pv
			}
		}
		out[i] = m
	}
	return out
}

func substituteConstrain(c ast.ConstrainStmt, ctx context) ast.ConstrainStmt {
	c.Subject = ctx.prefixRef(c.Subject)
	switch c.RHS.Kind {
	case ast.RHSPropertyOffset:
		c.RHS.Ref = ctx.prefixRef(c.RHS.Ref)
	case ast.RHSMidpoint:
		c.RHS.A = ctx.prefixRef(c.RHS.A)
		c.RHS.B = ctx.prefixRef(c.RHS.B)
	case ast.RHSContains:
		elems := make([]ast.ElementPath, len(c.RHS.Elements))
		for i, e := range c.RHS.Elements {
			elems[i] = ctx.prefixPath(e)
		}
		c.RHS.Elements = elems
	}
	return c
}

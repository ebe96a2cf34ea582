package ast

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// StatementKind discriminates the closed Statement sum.
type StatementKind int

const (
	StmtShape StatementKind = iota
	StmtConnection
	StmtLayout
	StmtGroup
	StmtTemplateDecl
	StmtTemplateInstance
	StmtConstrain
	StmtAlignment
	StmtLabel
	StmtExport
	StmtAnchorDecl
)

// String renders the kind using the wire keyword a document spells it with.
func (k StatementKind) String() string {
	switch k {
	case StmtShape:
		return "shape"
	case StmtConnection:
		return "connection"
	case StmtLayout:
		return "layout"
	case StmtGroup:
		return "group"
	case StmtTemplateDecl:
		return "template_decl"
	case StmtTemplateInstance:
		return "template_instance"
	case StmtConstrain:
		return "constrain"
	case StmtAlignment:
		return "alignment"
	case StmtLabel:
		return "label"
	case StmtExport:
		return "export"
	case StmtAnchorDecl:
		return "anchor_decl"
	default:
		return "unknown"
	}
}

func parseStatementKind(s string) (StatementKind, bool) {
	switch s {
	case "shape":
		return StmtShape, true
	case "connection":
		return StmtConnection, true
	case "layout":
		return StmtLayout, true
	case "group":
		return StmtGroup, true
	case "template_decl":
		return StmtTemplateDecl, true
	case "template_instance":
		return StmtTemplateInstance, true
	case "constrain":
		return StmtConstrain, true
	case "alignment":
		return StmtAlignment, true
	case "label":
		return StmtLabel, true
	case "export":
		return StmtExport, true
	case "anchor_decl":
		return StmtAnchorDecl, true
	default:
		return 0, false
	}
}

// UnmarshalYAML accepts the wire keyword form (e.g. "shape", "template_instance").
func (k *StatementKind) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	kind, ok := parseStatementKind(s)
	if !ok {
		return fmt.Errorf("ast: unrecognised statement kind %q", s)
	}
	*k = kind
	return nil
}

// MarshalYAML renders the kind back to its wire keyword.
func (k StatementKind) MarshalYAML() (interface{}, error) {
	return k.String(), nil
}

// Document is an ordered sequence of top-level statements.
type Document struct {
	Statements []Statement `yaml:"statements"`
}

// Statement is a tagged union over every node kind the grammar in spec §6
// names. Go has no native sum type, so exactly one of the pointer fields
// matching Kind is populated; the rest are nil.
type Statement struct {
	Kind Kind `yaml:"kind"`
	Span Span `yaml:"span,omitempty"`

	Shape            *ShapeStmt            `yaml:"shape,omitempty"`
	Connection       *ConnectionStmt       `yaml:"connection,omitempty"`
	Layout           *LayoutStmt           `yaml:"layout,omitempty"`
	Group            *GroupStmt            `yaml:"group,omitempty"`
	TemplateDecl     *TemplateDeclStmt     `yaml:"template_decl,omitempty"`
	TemplateInstance *TemplateInstanceStmt `yaml:"template_instance,omitempty"`
	Constrain        *ConstrainStmt        `yaml:"constrain,omitempty"`
	Alignment        *AlignmentStmt        `yaml:"alignment,omitempty"`
	Label            *LabelStmt            `yaml:"label,omitempty"`
	Export           *ExportStmt           `yaml:"export,omitempty"`
	AnchorDecl       *AnchorDeclStmt       `yaml:"anchor_decl,omitempty"`
}

// Kind is an alias kept distinct from StatementKind only for YAML clarity;
// both name the same enumeration.
type Kind = StatementKind

// Name returns the identifier this statement defines, if any. Connection,
// Constrain, Alignment, and Export statements define no identifier.
func (s Statement) Name() string {
	switch s.Kind {
	case StmtShape:
		return s.Shape.Name
	case StmtLayout:
		return s.Layout.Name
	case StmtGroup:
		return s.Group.Name
	case StmtTemplateInstance:
		return s.TemplateInstance.Name
	case StmtLabel:
		if s.Label.Inner != nil {
			return s.Label.Inner.Name()
		}
	}
	return ""
}

// Children returns the nested statements of a container-like statement.
func (s Statement) Children() []Statement {
	switch s.Kind {
	case StmtLayout:
		return s.Layout.Children
	case StmtGroup:
		return s.Group.Children
	}
	return nil
}

// LayoutMode selects the arrangement algorithm for a layout container.
type LayoutMode int

const (
	LayoutRow LayoutMode = iota
	LayoutColumn
	LayoutStack
	LayoutGrid
)

func (m LayoutMode) String() string {
	switch m {
	case LayoutRow:
		return "row"
	case LayoutColumn:
		return "column"
	case LayoutStack:
		return "stack"
	case LayoutGrid:
		return "grid"
	default:
		return "unknown"
	}
}

// UnmarshalYAML accepts "row", "column", "stack", or "grid".
func (m *LayoutMode) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	switch s {
	case "row":
		*m = LayoutRow
	case "column":
		*m = LayoutColumn
	case "stack":
		*m = LayoutStack
	case "grid":
		*m = LayoutGrid
	default:
		return fmt.Errorf("ast: unrecognised layout mode %q", s)
	}
	return nil
}

// MarshalYAML renders the mode back to its wire keyword.
func (m LayoutMode) MarshalYAML() (interface{}, error) {
	return m.String(), nil
}

// ShapeStmt declares a single primitive: rect, circle, line, ellipse, or
// path.
type ShapeStmt struct {
	Name      string     `yaml:"name"`
	Primitive string     `yaml:"primitive"`
	Modifiers []Modifier `yaml:"modifiers,omitempty"`
	Path      *PathDecl  `yaml:"path,omitempty"`
}

// LayoutStmt declares a row, column, stack, or grid container.
type LayoutStmt struct {
	Name      string      `yaml:"name"`
	Mode      LayoutMode  `yaml:"mode"`
	Modifiers []Modifier  `yaml:"modifiers,omitempty"`
	Children  []Statement `yaml:"children,omitempty"`
}

// GroupStmt declares a plain group with no layout behaviour of its own.
type GroupStmt struct {
	Name      string      `yaml:"name"`
	Modifiers []Modifier  `yaml:"modifiers,omitempty"`
	Children  []Statement `yaml:"children,omitempty"`
}

// ConnDirection selects the arrowhead rendering convention. The router
// itself only records the direction; drawing arrowheads is a render-time
// concern.
type ConnDirection int

const (
	DirForward ConnDirection = iota
	DirBackward
	DirBidirectional
	DirUndirected
)

func (d ConnDirection) String() string {
	switch d {
	case DirForward:
		return "forward"
	case DirBackward:
		return "backward"
	case DirBidirectional:
		return "bidirectional"
	case DirUndirected:
		return "undirected"
	default:
		return "unknown"
	}
}

// UnmarshalYAML accepts "forward", "backward", "bidirectional", or "undirected".
func (d *ConnDirection) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	switch s {
	case "forward":
		*d = DirForward
	case "backward":
		*d = DirBackward
	case "bidirectional":
		*d = DirBidirectional
	case "undirected":
		*d = DirUndirected
	default:
		return fmt.Errorf("ast: unrecognised connection direction %q", s)
	}
	return nil
}

// MarshalYAML renders the direction back to its wire keyword.
func (d ConnDirection) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

// ConnectionStmt declares a routed connection between two elements.
type ConnectionStmt struct {
	From       ElementPath   `yaml:"from"`
	To         ElementPath   `yaml:"to"`
	FromAnchor string        `yaml:"from_anchor,omitempty"`
	ToAnchor   string        `yaml:"to_anchor,omitempty"`
	Mode       RoutingMode   `yaml:"mode"`
	Direction  ConnDirection `yaml:"direction"`
	Vias       []Point       `yaml:"vias,omitempty"`
	Modifiers  []Modifier    `yaml:"modifiers,omitempty"`
}

// RoutingMode selects how a connection's path is constructed.
type RoutingMode int

const (
	RouteOrthogonal RoutingMode = iota // default
	RouteDirect
	RouteCurved
)

func (m RoutingMode) String() string {
	switch m {
	case RouteOrthogonal:
		return "orthogonal"
	case RouteDirect:
		return "direct"
	case RouteCurved:
		return "curved"
	default:
		return "unknown"
	}
}

// UnmarshalYAML accepts "orthogonal", "direct", or "curved".
func (m *RoutingMode) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	switch s {
	case "orthogonal":
		*m = RouteOrthogonal
	case "direct":
		*m = RouteDirect
	case "curved":
		*m = RouteCurved
	default:
		return fmt.Errorf("ast: unrecognised routing mode %q", s)
	}
	return nil
}

// MarshalYAML renders the mode back to its wire keyword.
func (m RoutingMode) MarshalYAML() (interface{}, error) {
	return m.String(), nil
}

// Point is a plain coordinate pair used for path vertices and via points.
type Point struct {
	X, Y float64
}

// TemplateSourceType distinguishes where a template's body comes from.
type TemplateSourceType int

const (
	SourceInline TemplateSourceType = iota
	SourceExternalAST
	SourceExternalSVG
	SourceRaster
)

// ParameterDef declares one template parameter and its default value.
type ParameterDef struct {
	Name    string     `yaml:"name"`
	Default StyleValue `yaml:"default"`
}

// TemplateDeclStmt declares a reusable template.
type TemplateDeclStmt struct {
	Name       string             `yaml:"name"`
	SourceType TemplateSourceType `yaml:"source_type"`
	SourcePath string             `yaml:"source_path,omitempty"`
	Parameters []ParameterDef     `yaml:"parameters,omitempty"`
	Body       []Statement        `yaml:"body,omitempty"`
}

// TemplateArg is one `key: value` argument passed to a template instance.
type TemplateArg struct {
	Name  string     `yaml:"name"`
	Value StyleValue `yaml:"value"`
}

// TemplateInstanceStmt instantiates a template under a new local name.
type TemplateInstanceStmt struct {
	Name     string        `yaml:"name"`
	Template string        `yaml:"template"`
	Args     []TemplateArg `yaml:"args,omitempty"`
	Rotation *float64      `yaml:"rotation,omitempty"`
}

// LabelStmt attaches a text label to an inner statement.
type LabelStmt struct {
	Inner    *Statement `yaml:"inner"`
	Text     string     `yaml:"text"`
	Position string     `yaml:"position,omitempty"`
}

// ExportStmt re-exports child identifiers so an enclosing template instance
// can expose connection points to its caller.
type ExportStmt struct {
	Names []string `yaml:"names"`
}

// AnchorDeclStmt declares a named anchor relative to a template's children.
type AnchorDeclStmt struct {
	Name      string      `yaml:"name"`
	Position  PropertyRef `yaml:"position"`
	Direction string      `yaml:"direction"`
}

// AlignmentStmt is sugar for a `constrain a.left = b.left` statement; see
// DesugarAlignment.
type AlignmentStmt struct {
	Left  PropertyRef `yaml:"left"`
	Right PropertyRef `yaml:"right"`
}

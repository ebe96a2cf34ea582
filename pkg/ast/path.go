package ast

// PathCommandKind discriminates the closed set of path commands.
type PathCommandKind int

const (
	CmdVertex PathCommandKind = iota
	CmdLineTo
	CmdArcTo
	CmdCurveTo
	CmdClose
	CmdCloseArc
)

// ArcParamsKind selects which way an arc's curvature is specified.
type ArcParamsKind int

const (
	ArcBulge ArcParamsKind = iota
	ArcRadius
)

// Sweep selects the rotational direction of an explicit-radius arc.
type Sweep int

const (
	SweepClockwise Sweep = iota
	SweepCounterClockwise
)

// ArcParams is either a signed bulge or an explicit radius plus sweep and
// large-arc flags.
type ArcParams struct {
	Kind ArcParamsKind `yaml:"kind"`

	Bulge float64 `yaml:"bulge,omitempty"`

	Radius   float64 `yaml:"radius,omitempty"`
	Sweep    Sweep   `yaml:"sweep,omitempty"`
	LargeArc bool    `yaml:"large_arc,omitempty"`
}

// PathCommand is one step of a path declaration. Vertices are addressable
// by Name; later commands may omit Pos and reference an earlier vertex by
// Name instead.
type PathCommand struct {
	Kind PathCommandKind `yaml:"kind"`

	Name string `yaml:"name,omitempty"`
	Pos  *Point `yaml:"pos,omitempty"`

	Arc *ArcParams `yaml:"arc,omitempty"`

	// Via is the optional control vertex for CurveTo; nil selects the
	// default control point construction.
	Via *Point `yaml:"via,omitempty"`
}

// PathDecl is an ordered list of path commands.
type PathDecl struct {
	Commands []PathCommand `yaml:"commands"`
}

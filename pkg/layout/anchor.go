package layout

import (
	"math"
	"strconv"

	"github.com/illustrate/illustrate/pkg/geom"
)

// AnchorDirKind discriminates the closed AnchorDirection sum: the four
// cardinal directions snap to exact axis vectors; anything else carries its
// angle explicitly.
type AnchorDirKind int

const (
	DirRight AnchorDirKind = iota
	DirDown
	DirLeft
	DirUp
	DirAngle
)

// AnchorDirection is the outward-normal direction of a named anchor, using
// the SVG convention: 0° = right, clockwise positive, Y-axis down.
type AnchorDirection struct {
	Kind    AnchorDirKind
	Degrees float64 // only meaningful when Kind == DirAngle
}

const cardinalEpsilon = 1e-9

func normalizeDegrees(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	return d
}

// FromDegrees builds an AnchorDirection from an angle, snapping to a
// cardinal when the normalized angle lands on an exact multiple of 90°.
func FromDegrees(deg float64) AnchorDirection {
	n := normalizeDegrees(deg)
	switch {
	case math.Abs(n) < cardinalEpsilon || math.Abs(n-360) < cardinalEpsilon:
		return AnchorDirection{Kind: DirRight}
	case math.Abs(n-90) < cardinalEpsilon:
		return AnchorDirection{Kind: DirDown}
	case math.Abs(n-180) < cardinalEpsilon:
		return AnchorDirection{Kind: DirLeft}
	case math.Abs(n-270) < cardinalEpsilon:
		return AnchorDirection{Kind: DirUp}
	default:
		return AnchorDirection{Kind: DirAngle, Degrees: n}
	}
}

// ToDegrees returns the direction's angle, 0-360, clockwise from right.
func (d AnchorDirection) ToDegrees() float64 {
	switch d.Kind {
	case DirRight:
		return 0
	case DirDown:
		return 90
	case DirLeft:
		return 180
	case DirUp:
		return 270
	default:
		return normalizeDegrees(d.Degrees)
	}
}

// ToVector returns the unit vector pointing in this direction.
func (d AnchorDirection) ToVector() geom.Point {
	rad := d.ToDegrees() * math.Pi / 180
	return geom.Point{X: math.Cos(rad), Y: math.Sin(rad)}
}

// Anchor is a named attachment point on an element's boundary.
type Anchor struct {
	Name      string
	Position  geom.Point
	Direction AnchorDirection
}

// AnchorSet maps anchor names to their current position and direction.
type AnchorSet map[string]Anchor

// SimpleShapeAnchors builds the five implicit anchors of a rectangular
// bounds: top, bottom, left, right, center. center carries no outward
// normal, since it doesn't sit on the boundary; it defaults to DirRight,
// the zero value, which callers positioning against it should ignore.
func SimpleShapeAnchors(bounds geom.Rect) AnchorSet {
	c := bounds.Center()
	return AnchorSet{
		"top":    {Name: "top", Position: geom.Point{X: c.X, Y: bounds.Y}, Direction: AnchorDirection{Kind: DirUp}},
		"bottom": {Name: "bottom", Position: geom.Point{X: c.X, Y: bounds.Bottom()}, Direction: AnchorDirection{Kind: DirDown}},
		"left":   {Name: "left", Position: geom.Point{X: bounds.X, Y: c.Y}, Direction: AnchorDirection{Kind: DirLeft}},
		"right":  {Name: "right", Position: geom.Point{X: bounds.Right(), Y: c.Y}, Direction: AnchorDirection{Kind: DirRight}},
		"center": {Name: "center", Position: c},
	}
}

// anchorDirectionByName parses a template anchor declaration's `direction`
// field: a cardinal name (up/down/left/right) or a bare angle in degrees.
func anchorDirectionByName(name string) (AnchorDirection, bool) {
	switch name {
	case "right":
		return AnchorDirection{Kind: DirRight}, true
	case "down":
		return AnchorDirection{Kind: DirDown}, true
	case "left":
		return AnchorDirection{Kind: DirLeft}, true
	case "up":
		return AnchorDirection{Kind: DirUp}, true
	case "":
		return AnchorDirection{}, false
	default:
		deg, err := strconv.ParseFloat(name, 64)
		if err != nil {
			return AnchorDirection{}, false
		}
		return FromDegrees(deg), true
	}
}

// Get returns the named anchor, and whether it exists.
func (s AnchorSet) Get(name string) (Anchor, bool) {
	a, ok := s[name]
	return a, ok
}

// Transform returns a new AnchorSet with every anchor transformed by t.
func (s AnchorSet) Transform(t RotationTransform) AnchorSet {
	out := make(AnchorSet, len(s))
	for name, a := range s {
		out[name] = t.TransformAnchor(a)
	}
	return out
}

// Names returns the anchor names, sorted.
func (s AnchorSet) Names() []string {
	names := make([]string, 0, len(s))
	for n := range s {
		names = append(names, n)
	}
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j-1] > names[j]; j-- {
			names[j-1], names[j] = names[j], names[j-1]
		}
	}
	return names
}

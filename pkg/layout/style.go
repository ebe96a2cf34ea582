package layout

import (
	"fmt"

	"github.com/illustrate/illustrate/pkg/ast"
)

// Style holds resolved rendering properties, ready for pkg/svgout. Unset
// fields are nil so Merge can tell "not specified" from "explicitly unset".
type Style struct {
	Fill            *string
	Stroke          *string
	StrokeWidth     *float64
	StrokeDasharray *string
	Opacity         *float64
	FontSize        *float64
	Classes         []string
	Rotation        *float64
}

func strPtr(s string) *string   { return &s }
func f64Ptr(f float64) *float64 { return &f }

// DefaultStyle returns the fallback styling applied before modifiers.
func DefaultStyle() Style {
	return Style{
		Fill:        strPtr("#f0f0f0"),
		Stroke:      strPtr("#333333"),
		StrokeWidth: f64Ptr(2),
		Opacity:     f64Ptr(1),
		FontSize:    f64Ptr(14),
	}
}

// StyleFromModifiers resolves a shape's style modifiers into a Style that
// sets only the fields the modifiers name (callers merge it onto the
// default), converting symbolic colors to CSS variable references. No
// concrete palette is generated for those references.
func StyleFromModifiers(mods []ast.Modifier) Style {
	s := Style{}
	for _, m := range mods {
		switch m.ResolvedKey() {
		case ast.KeyFill:
			s.Fill = colorToCSS(m.Value)
		case ast.KeyStroke:
			s.Stroke = colorToCSS(m.Value)
		case ast.KeyStrokeWidth:
			if m.Value.Kind == ast.ValueNumber {
				s.StrokeWidth = f64Ptr(m.Value.Number)
			}
		case ast.KeyOpacity:
			if m.Value.Kind == ast.ValueNumber {
				s.Opacity = f64Ptr(m.Value.Number)
			}
		case ast.KeyFontSize:
			if m.Value.Kind == ast.ValueNumber {
				s.FontSize = f64Ptr(m.Value.Number)
			}
		case ast.KeyRotation:
			if m.Value.Kind == ast.ValueNumber {
				s.Rotation = f64Ptr(m.Value.Number)
			}
		case ast.KeyCustom:
			if m.CustomName == "dash" {
				s.StrokeDasharray = dashPattern(m.Value)
			} else if m.CustomName == "class" {
				if m.Value.Kind == ast.ValueString {
					s.Classes = append(s.Classes, m.Value.Text)
				} else if m.Value.Kind == ast.ValueKeyword {
					s.Classes = append(s.Classes, m.Value.Keyword)
				}
			}
		}
	}
	return s
}

func dashPattern(v ast.StyleValue) *string {
	switch v.Kind {
	case ast.ValueString:
		return strPtr(v.Text)
	case ast.ValueKeyword:
		switch v.Keyword {
		case "dashed":
			return strPtr("8,4")
		case "dotted":
			return strPtr("2,2")
		default:
			return strPtr(v.Keyword)
		}
	default:
		return nil
	}
}

// colorToCSS converts a StyleValue naming a colour into its CSS
// representation: hex and named colours pass through, symbolic tokens
// become `var(--<token>)` references.
func colorToCSS(v ast.StyleValue) *string {
	switch v.Kind {
	case ast.ValueColor:
		if v.Color.Symbolic {
			return strPtr(fmt.Sprintf("var(--%s)", v.Color.Raw))
		}
		return strPtr(v.Color.Raw)
	case ast.ValueKeyword:
		return strPtr(v.Keyword)
	case ast.ValueIdentifier:
		return strPtr(v.Identifier)
	default:
		return nil
	}
}

// Merge returns a style with other's fields taking precedence over s's.
func (s Style) Merge(other Style) Style {
	out := s
	if other.Fill != nil {
		out.Fill = other.Fill
	}
	if other.Stroke != nil {
		out.Stroke = other.Stroke
	}
	if other.StrokeWidth != nil {
		out.StrokeWidth = other.StrokeWidth
	}
	if other.StrokeDasharray != nil {
		out.StrokeDasharray = other.StrokeDasharray
	}
	if other.Opacity != nil {
		out.Opacity = other.Opacity
	}
	if other.FontSize != nil {
		out.FontSize = other.FontSize
	}
	if other.Rotation != nil {
		out.Rotation = other.Rotation
	}
	out.Classes = append(append([]string{}, s.Classes...), other.Classes...)
	return out
}

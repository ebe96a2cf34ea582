package ast

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// StyleKey enumerates the recognised modifier keys. Unrecognised keys are
// carried as Custom rather than rejected, never a crash; consumers that do
// not handle a Custom key skip it silently, and no trace is emitted.
type StyleKey int

const (
	KeyCustom StyleKey = iota
	KeyWidth
	KeyHeight
	KeySize
	KeyGap
	KeyColumns
	KeyRows
	KeyLabel
	KeyLabelPosition
	KeyRotation
	KeyRole
	KeyX
	KeyY
	KeyRouting
	KeyFill
	KeyStroke
	KeyStrokeWidth
	KeyOpacity
	KeyFontSize
)

func (k StyleKey) String() string {
	switch k {
	case KeyWidth:
		return "width"
	case KeyHeight:
		return "height"
	case KeySize:
		return "size"
	case KeyGap:
		return "gap"
	case KeyColumns:
		return "columns"
	case KeyRows:
		return "rows"
	case KeyLabel:
		return "label"
	case KeyLabelPosition:
		return "label_position"
	case KeyRotation:
		return "rotation"
	case KeyRole:
		return "role"
	case KeyX:
		return "x"
	case KeyY:
		return "y"
	case KeyRouting:
		return "routing"
	case KeyFill:
		return "fill"
	case KeyStroke:
		return "stroke"
	case KeyStrokeWidth:
		return "stroke_width"
	case KeyOpacity:
		return "opacity"
	case KeyFontSize:
		return "font_size"
	default:
		return "custom"
	}
}

// styleKeyNames maps the wire representation used in YAML documents back to
// a StyleKey, so unrecognised strings fall through to KeyCustom.
var styleKeyNames = map[string]StyleKey{
	"width": KeyWidth, "height": KeyHeight, "size": KeySize, "gap": KeyGap,
	"columns": KeyColumns, "rows": KeyRows, "label": KeyLabel,
	"label_position": KeyLabelPosition, "rotation": KeyRotation, "role": KeyRole,
	"x": KeyX, "y": KeyY, "routing": KeyRouting, "fill": KeyFill,
	"stroke": KeyStroke, "stroke_width": KeyStrokeWidth, "opacity": KeyOpacity,
	"font_size": KeyFontSize,
}

// ParseStyleKey resolves a wire key name, returning KeyCustom with the
// original name preserved by the caller when the name is not recognised.
func ParseStyleKey(name string) StyleKey {
	if k, ok := styleKeyNames[name]; ok {
		return k
	}
	return KeyCustom
}

// ValueKind discriminates the closed StyleValue sum.
type ValueKind int

const (
	ValueColor ValueKind = iota
	ValueNumber
	ValueString
	ValueKeyword
	ValueIdentifier
)

// ColorValue is either a concrete colour (hex or CSS named colour) or a
// symbolic token of the form "<category>[-<variant>][-light|-dark]", where
// <category> is foreground, background, text, or accent.
type ColorValue struct {
	Symbolic bool   `yaml:"symbolic,omitempty"`
	Raw      string `yaml:"raw"`
}

// StyleValue is the closed sum type backing every modifier value:
// {Color, Number(value, unit?), String, Keyword, Identifier}.
type StyleValue struct {
	Kind       ValueKind  `yaml:"-"`
	Color      ColorValue `yaml:"-"`
	Number     float64    `yaml:"-"`
	Unit       string     `yaml:"-"`
	Text       string     `yaml:"-"`
	Keyword    string     `yaml:"-"`
	Identifier string     `yaml:"-"`
}

// wireStyleValue is the YAML-friendly representation: exactly one of these
// fields should be set, and UnmarshalYAML picks the matching StyleValue
// variant.
type wireStyleValue struct {
	Color      *string  `yaml:"color,omitempty"`
	Number     *float64 `yaml:"number,omitempty"`
	Unit       string   `yaml:"unit,omitempty"`
	String     *string  `yaml:"string,omitempty"`
	Keyword    *string  `yaml:"keyword,omitempty"`
	Identifier *string  `yaml:"identifier,omitempty"`
}

// UnmarshalYAML decodes one of the wire fields into the matching variant.
func (v *StyleValue) UnmarshalYAML(value *yaml.Node) error {
	var w wireStyleValue
	if err := value.Decode(&w); err != nil {
		return err
	}
	switch {
	case w.Color != nil:
		v.Kind = ValueColor
		v.Color = ColorValue{Raw: *w.Color, Symbolic: isSymbolicColor(*w.Color)}
	case w.Number != nil:
		v.Kind = ValueNumber
		v.Number = *w.Number
		v.Unit = w.Unit
	case w.String != nil:
		v.Kind = ValueString
		v.Text = *w.String
	case w.Keyword != nil:
		v.Kind = ValueKeyword
		v.Keyword = *w.Keyword
	case w.Identifier != nil:
		v.Kind = ValueIdentifier
		v.Identifier = *w.Identifier
	default:
		return fmt.Errorf("style value has no recognised variant")
	}
	return nil
}

// MarshalYAML renders the active variant back to its wire form.
func (v StyleValue) MarshalYAML() (interface{}, error) {
	w := wireStyleValue{}
	switch v.Kind {
	case ValueColor:
		w.Color = &v.Color.Raw
	case ValueNumber:
		w.Number = &v.Number
		w.Unit = v.Unit
	case ValueString:
		w.String = &v.Text
	case ValueKeyword:
		w.Keyword = &v.Keyword
	case ValueIdentifier:
		w.Identifier = &v.Identifier
	}
	return w, nil
}

func isSymbolicColor(s string) bool {
	category, _, _ := strings.Cut(s, "-")
	switch category {
	case "foreground", "background", "text", "accent":
		return true
	}
	return false
}

// Modifier is a single `key: value` pair attached to a shape, layout,
// group, connection, or template declaration.
type Modifier struct {
	Key        StyleKey   `yaml:"-"`
	CustomName string     `yaml:"key"`
	Value      StyleValue `yaml:"value"`
}

// ResolvedKey returns the StyleKey for this modifier, computing it from
// CustomName when the document was decoded without a pre-resolved Key.
func (m Modifier) ResolvedKey() StyleKey {
	if m.Key != KeyCustom {
		return m.Key
	}
	return ParseStyleKey(m.CustomName)
}

// Find returns the first modifier matching key, and whether one was found.
func Find(mods []Modifier, key StyleKey) (Modifier, bool) {
	for _, m := range mods {
		if m.ResolvedKey() == key {
			return m, true
		}
	}
	return Modifier{}, false
}

// NumberOf returns the numeric value of the first modifier matching key.
func NumberOf(mods []Modifier, key StyleKey) (float64, bool) {
	m, ok := Find(mods, key)
	if !ok || m.Value.Kind != ValueNumber {
		return 0, false
	}
	return m.Value.Number, true
}

package ast

import "gopkg.in/yaml.v3"

// Span is a byte-range into the original source text, carried for error
// reporting. A zero Span means "no source location" (e.g. synthesised
// statements produced by desugaring).
type Span struct {
	Start int `yaml:"start,omitempty"`
	End   int `yaml:"end,omitempty"`
}

// ElementPath is a dotted identifier path (`a.b.c`). The final segment is
// the leaf name used by the solver; earlier segments name the chain of
// enclosing groups.
type ElementPath []string

// Leaf returns the final path segment.
func (p ElementPath) Leaf() string {
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1]
}

// String renders the path in dotted form.
func (p ElementPath) String() string {
	s := ""
	for i, seg := range p {
		if i > 0 {
			s += "."
		}
		s += seg
	}
	return s
}

// UnmarshalYAML accepts a dotted string and splits it into segments.
func (p *ElementPath) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	*p = splitPath(s)
	return nil
}

// MarshalYAML renders the path back to its dotted string form.
func (p ElementPath) MarshalYAML() (interface{}, error) {
	return p.String(), nil
}

func splitPath(s string) ElementPath {
	var segs []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			segs = append(segs, s[start:i])
			start = i + 1
		}
	}
	segs = append(segs, s[start:])
	return ElementPath(segs)
}

// PropertyRef names a property on an element reached by path, e.g. the
// "center_x" property of "c1.right_conn".
type PropertyRef struct {
	Path     ElementPath `yaml:"path"`
	Property string      `yaml:"property"`
}

func (r PropertyRef) String() string {
	if r.Property == "" {
		return r.Path.String()
	}
	return r.Path.String() + "." + r.Property
}

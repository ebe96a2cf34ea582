package template

import "fmt"

// ErrorKind discriminates the template error taxonomy named in spec §6.
type ErrorKind int

const (
	ErrNotFound ErrorKind = iota
	ErrDuplicate
	ErrMissingParameter
	ErrInvalidParameterType
	ErrFileNotFound
	ErrFileReadError
	ErrInvalidSVG
	ErrCircularReference
	ErrExportNotFound
)

// Error reports a template registration or resolution failure.
type Error struct {
	Kind     ErrorKind
	Name     string // template or export name
	Template string // owning template, for MissingParameter/ExportNotFound
	Param    string
	Expected string
	Path     string
	Message  string
	Chain    string // for CircularReference: the resolution chain, joined by " -> "
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrNotFound:
		return fmt.Sprintf("template not found: %s", e.Name)
	case ErrDuplicate:
		return fmt.Sprintf("duplicate template definition: %s", e.Name)
	case ErrMissingParameter:
		return fmt.Sprintf("missing required parameter: %s for template %s", e.Param, e.Template)
	case ErrInvalidParameterType:
		return fmt.Sprintf("invalid parameter type for %s: expected %s", e.Param, e.Expected)
	case ErrFileNotFound:
		return fmt.Sprintf("template file not found: %s", e.Path)
	case ErrFileReadError:
		return fmt.Sprintf("error reading template file %s: %s", e.Path, e.Message)
	case ErrInvalidSVG:
		return fmt.Sprintf("invalid SVG content: %s", e.Message)
	case ErrCircularReference:
		return fmt.Sprintf("circular template reference detected: %s", e.Chain)
	case ErrExportNotFound:
		return fmt.Sprintf("exported identifier not found in template %s: %s", e.Template, e.Name)
	default:
		return "template error"
	}
}

package template

import (
	"strconv"
	"strings"

	"github.com/illustrate/illustrate/pkg/ast"
)

// Definition is a stored template: its parameters, body, exports, and
// anchor declarations. File-based templates (external-ast, external-svg,
// raster) are loaded lazily and memoised here once read.
type Definition struct {
	Name       string
	SourceType ast.TemplateSourceType
	SourcePath string
	Parameters []ast.ParameterDef
	Body       []ast.Statement
	Exports    []string
	Anchors    []ast.AnchorDeclStmt

	SVGContent string
	SVGWidth   float64
	SVGHeight  float64
}

// FromDecl builds a Definition from a template declaration, extracting its
// Export and AnchorDecl statements.
func FromDecl(decl ast.TemplateDeclStmt) Definition {
	def := Definition{
		Name:       decl.Name,
		SourceType: decl.SourceType,
		SourcePath: decl.SourcePath,
		Parameters: decl.Parameters,
		Body:       decl.Body,
	}
	for _, s := range decl.Body {
		switch s.Kind {
		case ast.StmtExport:
			def.Exports = append(def.Exports, s.Export.Names...)
		case ast.StmtAnchorDecl:
			def.Anchors = append(def.Anchors, *s.AnchorDecl)
		}
	}
	return def
}

// Default returns the default value for a parameter, and whether it has
// one.
func (d Definition) Default(name string) (ast.StyleValue, bool) {
	for _, p := range d.Parameters {
		if p.Name == name {
			return p.Default, true
		}
	}
	return ast.StyleValue{}, false
}

// HasParameter reports whether name is a declared parameter.
func (d Definition) HasParameter(name string) bool {
	_, ok := d.Default(name)
	return ok
}

// IsFileBased reports whether the template's body comes from an external
// source that must be loaded before expansion.
func (d Definition) IsFileBased() bool {
	return d.SourceType == ast.SourceExternalSVG || d.SourceType == ast.SourceExternalAST || d.SourceType == ast.SourceRaster
}

// Registry stores template definitions by name.
type Registry struct {
	templates map[string]Definition
	basePath  string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{templates: map[string]Definition{}}
}

// NewRegistryWithBasePath creates a registry that resolves relative
// file-based template paths against basePath.
func NewRegistryWithBasePath(basePath string) *Registry {
	return &Registry{templates: map[string]Definition{}, basePath: basePath}
}

// Register adds a template declaration. Registration is idempotent in the
// sense that it never overwrites: a second registration under the same
// name fails with Duplicate.
func (r *Registry) Register(decl ast.TemplateDeclStmt) error {
	if _, exists := r.templates[decl.Name]; exists {
		return &Error{Kind: ErrDuplicate, Name: decl.Name}
	}
	r.templates[decl.Name] = FromDecl(decl)
	return nil
}

// RegisterDefinition adds a definition directly, used for file-based
// templates constructed outside the AST path.
func (r *Registry) RegisterDefinition(def Definition) error {
	if _, exists := r.templates[def.Name]; exists {
		return &Error{Kind: ErrDuplicate, Name: def.Name}
	}
	r.templates[def.Name] = def
	return nil
}

// Get returns the named template definition.
func (r *Registry) Get(name string) (Definition, bool) {
	d, ok := r.templates[name]
	return d, ok
}

// Contains reports whether name is registered.
func (r *Registry) Contains(name string) bool {
	_, ok := r.templates[name]
	return ok
}

// Names returns every registered template name, sorted for determinism.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.templates))
	for n := range r.templates {
		names = append(names, n)
	}
	sortStrings(names)
	return names
}

// CollectFromStatements registers every TemplateDecl found at the top
// level of stmts, in document order, stopping at the first Duplicate.
func (r *Registry) CollectFromStatements(stmts []ast.Statement) error {
	for _, s := range stmts {
		if s.Kind == ast.StmtTemplateDecl {
			if err := r.Register(*s.TemplateDecl); err != nil {
				return err
			}
		}
	}
	return nil
}

// ParseSVGDimensions extracts (width, height) from an SVG document's
// viewBox, falling back to its width/height attributes with unit suffixes
// stripped.
func ParseSVGDimensions(svg string) (w, h float64, ok bool) {
	if vb, found := extractAttr(svg, "viewBox"); found {
		parts := strings.Fields(vb)
		if len(parts) >= 4 {
			w = parseLeadingFloat(parts[2])
			h = parseLeadingFloat(parts[3])
			return w, h, true
		}
	}
	wAttr, wok := extractAttr(svg, "width")
	hAttr, hok := extractAttr(svg, "height")
	if wok && hok {
		return parseLeadingFloat(wAttr), parseLeadingFloat(hAttr), true
	}
	return 0, 0, false
}

func extractAttr(svg, name string) (string, bool) {
	pattern := name + "=\""
	idx := strings.Index(svg, pattern)
	if idx < 0 {
		return "", false
	}
	start := idx + len(pattern)
	rest := svg[start:]
	end := strings.IndexByte(rest, '"')
	if end < 0 {
		return "", false
	}
	return rest[:end], true
}

func parseLeadingFloat(s string) float64 {
	end := 0
	for end < len(s) && (s[end] == '.' || s[end] == '-' || (s[end] >= '0' && s[end] <= '9')) {
		end++
	}
	f, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0
	}
	return f
}

func sortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}

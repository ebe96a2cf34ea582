package template

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/illustrate/illustrate/pkg/ast"
)

// LoadFileBased reads a file-based template's content from disk and
// returns a Definition with Body (and, for SVG sources, SVGContent and
// intrinsic dimensions) populated. It is a no-op for inline templates.
//
// Relative SourcePaths resolve against the registry's basePath.
func (r *Registry) LoadFileBased(def Definition) (Definition, error) {
	if !def.IsFileBased() {
		return def, nil
	}
	path := def.SourcePath
	if path == "" {
		return def, &Error{Kind: ErrFileNotFound, Path: path, Template: def.Name}
	}
	if !filepath.IsAbs(path) && r.basePath != "" {
		path = filepath.Join(r.basePath, path)
	}

	switch def.SourceType {
	case ast.SourceExternalAST:
		data, err := os.ReadFile(path)
		if err != nil {
			return def, &Error{Kind: ErrFileNotFound, Path: path, Template: def.Name}
		}
		var doc ast.Document
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return def, &Error{Kind: ErrFileReadError, Path: path, Template: def.Name, Message: err.Error()}
		}
		def.Body = doc.Statements

	case ast.SourceExternalSVG:
		data, err := os.ReadFile(path)
		if err != nil {
			return def, &Error{Kind: ErrFileNotFound, Path: path, Template: def.Name}
		}
		def.SVGContent = string(data)
		w, h, ok := ParseSVGDimensions(def.SVGContent)
		if !ok {
			return def, &Error{Kind: ErrInvalidSVG, Path: path, Template: def.Name, Message: "no viewBox or width/height attribute found"}
		}
		def.SVGWidth, def.SVGHeight = w, h
		def.Body = embeddedBody(w, h)

	case ast.SourceRaster:
		// Vector geometry has no raster decoder; only the intrinsic frame
		// a raster template occupies is modelled, per the spec's
		// image-as-opaque-rect treatment of raster embeds.
		if _, err := os.Stat(path); err != nil {
			return def, &Error{Kind: ErrFileNotFound, Path: path, Template: def.Name}
		}
		def.SVGWidth, def.SVGHeight = rasterDefaultWidth, rasterDefaultHeight
		def.Body = embeddedBody(def.SVGWidth, def.SVGHeight)
	}
	return def, nil
}

const (
	rasterDefaultWidth  = 64
	rasterDefaultHeight = 64
)

// embeddedBody synthesises a single placeholder shape sized to an
// externally-sourced template's intrinsic dimensions, so resolveInstance's
// single-shape collapse renames it onto the instance exactly as it would
// an inline single-rect template.
func embeddedBody(w, h float64) []ast.Statement {
	return []ast.Statement{{
		Kind: ast.StmtShape,
		Shape: &ast.ShapeStmt{
			Name:      "_embed",
			Primitive: "rect",
			Modifiers: []ast.Modifier{
				{Key: ast.KeyWidth, Value: ast.StyleValue{Kind: ast.ValueNumber, Number: w}},
				{Key: ast.KeyHeight, Value: ast.StyleValue{Kind: ast.ValueNumber, Number: h}},
			},
		},
	}}
}

// LoadAllFileBased resolves every file-based definition currently
// registered, replacing each with its loaded form. Call once after
// CollectFromStatements and before resolving any template instance.
func (r *Registry) LoadAllFileBased() error {
	for name, def := range r.templates {
		if !def.IsFileBased() {
			continue
		}
		loaded, err := r.LoadFileBased(def)
		if err != nil {
			return err
		}
		r.templates[name] = loaded
	}
	return nil
}

package template_test

import (
	"testing"

	"github.com/illustrate/illustrate/pkg/ast"
	"github.com/illustrate/illustrate/pkg/template"
)

func declWithBody(name string, body []ast.Statement) ast.TemplateDeclStmt {
	return ast.TemplateDeclStmt{Name: name, SourceType: ast.SourceInline, Body: body}
}

func rectStmt(name string) ast.Statement {
	return ast.Statement{Kind: ast.StmtShape, Shape: &ast.ShapeStmt{Name: name, Primitive: "rect"}}
}

func TestRegisterDuplicateFails(t *testing.T) {
	r := template.NewRegistry()
	decl := declWithBody("box", []ast.Statement{rectStmt("body")})
	if err := r.Register(decl); err != nil {
		t.Fatalf("first register: %v", err)
	}
	err := r.Register(decl)
	if err == nil {
		t.Fatalf("expected duplicate error")
	}
	te, ok := err.(*template.Error)
	if !ok || te.Kind != template.ErrDuplicate {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestGetNotFound(t *testing.T) {
	r := template.NewRegistry()
	if _, ok := r.Get("missing"); ok {
		t.Fatalf("expected not found")
	}
}

func TestNamesSorted(t *testing.T) {
	r := template.NewRegistry()
	_ = r.Register(declWithBody("zeta", nil))
	_ = r.Register(declWithBody("alpha", nil))
	_ = r.Register(declWithBody("mid", nil))
	got := r.Names()
	want := []string{"alpha", "mid", "zeta"}
	for i, name := range want {
		if got[i] != name {
			t.Fatalf("Names() = %v, want %v", got, want)
		}
	}
}

func TestParseSVGDimensionsFromViewBox(t *testing.T) {
	svg := `<svg viewBox="0 0 120 45" width="120px" height="45px"></svg>`
	w, h, ok := template.ParseSVGDimensions(svg)
	if !ok || w != 120 || h != 45 {
		t.Fatalf("got (%v, %v, %v), want (120, 45, true)", w, h, ok)
	}
}

func TestParseSVGDimensionsFallsBackToAttrs(t *testing.T) {
	svg := `<svg width="80" height="30"></svg>`
	w, h, ok := template.ParseSVGDimensions(svg)
	if !ok || w != 80 || h != 30 {
		t.Fatalf("got (%v, %v, %v), want (80, 30, true)", w, h, ok)
	}
}

func TestParseSVGDimensionsMissing(t *testing.T) {
	if _, _, ok := template.ParseSVGDimensions(`<svg></svg>`); ok {
		t.Fatalf("expected ok=false")
	}
}

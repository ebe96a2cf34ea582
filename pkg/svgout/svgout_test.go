package svgout

import (
	"strings"
	"testing"

	"github.com/illustrate/illustrate/pkg/ast"
	"github.com/illustrate/illustrate/pkg/layout"
	"github.com/illustrate/illustrate/pkg/lint"
)

func TestRenderNilResult(t *testing.T) {
	_, err := Render(nil, nil, layout.DefaultConfig())
	if err == nil {
		t.Error("expected error for nil result, got nil")
	}
}

func computeSimple(t *testing.T) *layout.Result {
	t.Helper()
	doc := ast.Document{Statements: []ast.Statement{
		{Kind: ast.StmtShape, Shape: &ast.ShapeStmt{
			Name: "box", Primitive: "rect",
			Modifiers: []ast.Modifier{
				{Key: ast.KeyWidth, Value: ast.StyleValue{Kind: ast.ValueNumber, Number: 80}},
				{Key: ast.KeyHeight, Value: ast.StyleValue{Kind: ast.ValueNumber, Number: 40}},
			},
		}},
	}}
	result, err := layout.Compute(doc, layout.DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	return result
}

func TestRenderProducesValidSVGDocument(t *testing.T) {
	result := computeSimple(t)
	data, err := Render(result, nil, layout.DefaultConfig())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "<svg") {
		t.Error("output does not contain <svg> tag")
	}
	if !strings.Contains(out, "</svg>") {
		t.Error("output does not contain closing </svg> tag")
	}
	if !strings.Contains(out, "viewBox=") {
		t.Error("output does not contain a viewBox attribute")
	}
	if !strings.Contains(out, "<rect") {
		t.Error("output does not contain a <rect> element for the box shape")
	}
}

func TestRenderEmitsLintWarningsAsComments(t *testing.T) {
	result := computeSimple(t)
	warnings := []lint.Warning{{Category: lint.CategoryOverlap, Message: "a and b overlap"}}
	data, err := Render(result, warnings, layout.DefaultConfig())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(string(data), "a and b overlap") {
		t.Error("expected lint warning text to appear in output")
	}
}

func TestRenderRotatedShapeWrapsGroupTransform(t *testing.T) {
	doc := ast.Document{Statements: []ast.Statement{
		{Kind: ast.StmtShape, Shape: &ast.ShapeStmt{
			Name: "box", Primitive: "rect",
			Modifiers: []ast.Modifier{
				{Key: ast.KeyWidth, Value: ast.StyleValue{Kind: ast.ValueNumber, Number: 80}},
				{Key: ast.KeyHeight, Value: ast.StyleValue{Kind: ast.ValueNumber, Number: 40}},
			},
		}},
	}}
	result, err := layout.Compute(doc, layout.DefaultConfig(), map[string]float64{"box": 30})
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	data, err := Render(result, nil, layout.DefaultConfig())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(string(data), "rotate(30") {
		t.Error("expected a rotate(...) group transform in output")
	}
}

// Package integration exercises the compiler end to end: a hand-authored
// YAML document through template resolution, layout, lint, and SVG
// rendering, the same sequence cmd/illustrate's run() performs.
package integration

import (
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/illustrate/illustrate/pkg/ast"
	"github.com/illustrate/illustrate/pkg/layout"
	"github.com/illustrate/illustrate/pkg/lint"
	"github.com/illustrate/illustrate/pkg/svgout"
	"github.com/illustrate/illustrate/pkg/template"
)

const pipelineDoc = `
statements:
  - kind: template_decl
    template_decl:
      name: stage
      source_type: 0
      parameters:
        - name: fill
          default: {color: "category-blue"}
      body:
        - kind: shape
          shape:
            name: body
            primitive: rect
            modifiers:
              - key: width
                value: {number: 90}
              - key: height
                value: {number: 50}
              - key: fill
                value: {identifier: "fill"}

  - kind: layout
    layout:
      name: row
      mode: row
      modifiers:
        - key: gap
          value: {number: 30}
      children:
        - kind: template_instance
          template_instance:
            name: ingest
            template: stage
            args:
              - name: fill
                value: {color: "category-blue"}

        - kind: template_instance
          template_instance:
            name: transform
            template: stage
            rotation: 15
            args:
              - name: fill
                value: {color: "category-green"}

  - kind: connection
    connection:
      from: row.ingest
      to: row.transform
      mode: orthogonal
      direction: forward
`

func compile(t *testing.T, doc string) (*layout.Result, []lint.Warning, []byte) {
	t.Helper()
	var parsed ast.Document
	if err := yaml.Unmarshal([]byte(doc), &parsed); err != nil {
		t.Fatalf("yaml.Unmarshal failed: %v", err)
	}

	reg := template.NewRegistry()
	if err := reg.CollectFromStatements(parsed.Statements); err != nil {
		t.Fatalf("CollectFromStatements failed: %v", err)
	}
	if err := reg.LoadAllFileBased(); err != nil {
		t.Fatalf("LoadAllFileBased failed: %v", err)
	}

	resolver := template.NewResolver(reg)
	expanded, err := resolver.ResolveDocument(parsed)
	if err != nil {
		t.Fatalf("ResolveDocument failed: %v", err)
	}
	resolvedDoc := ast.Document{Statements: expanded}

	cfg := layout.DefaultConfig()
	result, err := layout.Compute(resolvedDoc, cfg, resolver.Rotations)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	warnings := lint.Check(result, resolvedDoc)

	data, err := svgout.Render(result, warnings, cfg)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	return result, warnings, data
}

func TestPipelineProducesTwoRectsAndARoute(t *testing.T) {
	result, _, data := compile(t, pipelineDoc)

	if len(result.Roots) != 1 {
		t.Fatalf("expected a single row root, got %d", len(result.Roots))
	}
	row := result.Roots[0]
	if len(row.Children) != 2 {
		t.Fatalf("expected 2 stage instances, got %d", len(row.Children))
	}
	if len(result.Connections) != 1 {
		t.Fatalf("expected 1 routed connection, got %d", len(result.Connections))
	}

	out := string(data)
	if strings.Count(out, "<rect") != 2 {
		t.Errorf("expected 2 <rect> elements, got output: %s", out)
	}
	if !strings.Contains(out, "rotate(15") {
		t.Error("expected the transform instance's rotation to appear in the SVG")
	}
	if !strings.Contains(out, "<polyline") && !strings.Contains(out, "<line") {
		t.Error("expected the routed connection to render as a polyline or line")
	}
}

func TestPipelineBoundsContainEveryElement(t *testing.T) {
	result, _, _ := compile(t, pipelineDoc)
	for id, e := range result.Elements {
		b, outer := e.Bounds, result.Bounds
		if b.X < outer.X-1e-6 || b.Y < outer.Y-1e-6 ||
			b.Right() > outer.Right()+1e-6 || (b.Y+b.Height) > (outer.Y+outer.Height)+1e-6 {
			t.Errorf("element %q bounds %+v not contained in overall bounds %+v", id, b, outer)
		}
	}
}

func TestPipelineIsDeterministic(t *testing.T) {
	_, _, first := compile(t, pipelineDoc)
	_, _, second := compile(t, pipelineDoc)
	if string(first) != string(second) {
		t.Error("expected identical output across repeated compiles of the same document")
	}
}

func TestPipelineRejectsUndefinedReference(t *testing.T) {
	const badDoc = `
statements:
  - kind: connection
    connection:
      from: nope
      to: alsoNope
      mode: direct
      direction: forward
`
	var parsed ast.Document
	if err := yaml.Unmarshal([]byte(badDoc), &parsed); err != nil {
		t.Fatalf("yaml.Unmarshal failed: %v", err)
	}
	reg := template.NewRegistry()
	resolver := template.NewResolver(reg)
	expanded, err := resolver.ResolveDocument(parsed)
	if err != nil {
		t.Fatalf("ResolveDocument failed: %v", err)
	}
	_, err = layout.Compute(ast.Document{Statements: expanded}, layout.DefaultConfig(), resolver.Rotations)
	if err == nil {
		t.Fatal("expected an error for a connection referencing undefined elements")
	}
}

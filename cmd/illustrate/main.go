// Command illustrate compiles a declarative illustration document into an
// SVG diagram.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/illustrate/illustrate/pkg/ast"
	"github.com/illustrate/illustrate/pkg/layout"
	"github.com/illustrate/illustrate/pkg/lint"
	"github.com/illustrate/illustrate/pkg/svgout"
	"github.com/illustrate/illustrate/pkg/template"
)

const version = "1.0.0"

var (
	inputPath  = flag.String("input", "", "Path to YAML illustration document (required)")
	outputPath = flag.String("output", "", "Path to write the SVG file (default: input name with .svg extension)")
	configPath = flag.String("config", "", "Path to a YAML layout config file overriding engine defaults")
	verbose    = flag.Bool("verbose", false, "Enable verbose output")
	debug      = flag.Bool("debug", false, "Print the resolved element tree before rendering")
	versionF   = flag.Bool("version", false, "Print version and exit")
	help       = flag.Bool("help", false, "Show help message")
)

func main() {
	flag.Parse()

	if *versionF {
		fmt.Printf("illustrate version %s\n", version)
		os.Exit(0)
	}

	if *help {
		printHelp()
		os.Exit(0)
	}

	if *inputPath == "" {
		fmt.Fprintln(os.Stderr, "Error: -input flag is required")
		printUsage()
		os.Exit(1)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if *verbose {
		fmt.Printf("Loading document from %s\n", *inputPath)
	}

	doc, err := loadDocument(*inputPath)
	if err != nil {
		return fmt.Errorf("failed to load document: %w", err)
	}

	cfg := layout.DefaultConfig()
	if *configPath != "" {
		if *verbose {
			fmt.Printf("Loading config from %s\n", *configPath)
		}
		cfg, err = loadConfig(*configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	}

	start := time.Now()

	reg := template.NewRegistryWithBasePath(filepath.Dir(*inputPath))
	if err := reg.CollectFromStatements(doc.Statements); err != nil {
		return fmt.Errorf("template registration failed: %w", err)
	}
	if err := reg.LoadAllFileBased(); err != nil {
		return fmt.Errorf("template loading failed: %w", err)
	}

	if *verbose {
		fmt.Printf("Registered %d template(s)\n", len(reg.Names()))
	}

	resolver := template.NewResolver(reg)
	expanded, err := resolver.ResolveDocument(doc)
	if err != nil {
		return fmt.Errorf("template resolution failed: %w", err)
	}
	resolvedDoc := ast.Document{Statements: expanded}

	if *verbose {
		fmt.Println("Computing layout...")
	}
	result, err := layout.Compute(resolvedDoc, cfg, resolver.Rotations)
	if err != nil {
		return fmt.Errorf("layout failed: %w", err)
	}

	warnings := lint.Check(result, resolvedDoc)
	if *verbose && len(warnings) > 0 {
		fmt.Printf("Lint warnings: %d\n", len(warnings))
		for _, w := range warnings {
			fmt.Printf("  [%s] %s\n", w.Category, w.Message)
		}
	}

	if *debug {
		printTree(result)
	}

	elapsed := time.Since(start)
	if *verbose {
		fmt.Printf("Compiled in %v\n", elapsed)
		fmt.Printf("Roots: %d, Connections: %d\n", len(result.Roots), len(result.Connections))
	}

	out := *outputPath
	if out == "" {
		ext := filepath.Ext(*inputPath)
		out = (*inputPath)[:len(*inputPath)-len(ext)] + ".svg"
	}

	if err := svgout.SaveToFile(result, warnings, cfg, out); err != nil {
		return fmt.Errorf("failed to write SVG: %w", err)
	}

	if *verbose {
		info, _ := os.Stat(out)
		if info != nil {
			fmt.Printf("Wrote %d bytes to %s\n", info.Size(), out)
		}
	}

	fmt.Printf("Successfully compiled %s -> %s in %v\n", *inputPath, out, elapsed)
	return nil
}

func loadDocument(path string) (ast.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ast.Document{}, err
	}
	var doc ast.Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return ast.Document{}, err
	}
	return doc, nil
}

func loadConfig(path string) (layout.Config, error) {
	cfg := layout.DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func printTree(result *layout.Result) {
	fmt.Println("\nElement tree:")
	for _, root := range result.Roots {
		printElement(root, 1)
	}
}

func printElement(e *layout.Element, depth int) {
	indent := ""
	for i := 0; i < depth; i++ {
		indent += "  "
	}
	fmt.Printf("%s%s (%s) x=%.1f y=%.1f w=%.1f h=%.1f\n",
		indent, e.ID, e.Primitive, e.Bounds.X, e.Bounds.Y, e.Bounds.Width, e.Bounds.Height)
	for _, c := range e.Children {
		printElement(c, depth+1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "\nUsage: illustrate -input <document.yaml> [options]")
	fmt.Fprintln(os.Stderr, "\nRun 'illustrate -help' for detailed help")
}

func printHelp() {
	fmt.Printf("illustrate version %s\n\n", version)
	fmt.Println("A command-line compiler for declarative illustration documents.")
	fmt.Println("\nUsage:")
	fmt.Println("  illustrate -input <document.yaml> [options]")
	fmt.Println("\nRequired Flags:")
	fmt.Println("  -input string")
	fmt.Println("        Path to YAML illustration document")
	fmt.Println("\nOptional Flags:")
	fmt.Println("  -output string")
	fmt.Println("        Path to write the SVG file (default: input name with .svg extension)")
	fmt.Println("  -config string")
	fmt.Println("        Path to a YAML layout config file overriding engine defaults")
	fmt.Println("  -verbose")
	fmt.Println("        Enable verbose output")
	fmt.Println("  -debug")
	fmt.Println("        Print the resolved element tree before rendering")
	fmt.Println("  -version")
	fmt.Println("        Print version and exit")
	fmt.Println("  -help")
	fmt.Println("        Show this help message")
	fmt.Println("\nExamples:")
	fmt.Println("  # Compile a document to SVG next to it")
	fmt.Println("  illustrate -input diagram.yaml")
	fmt.Println("\n  # Compile with a custom config and explicit output path")
	fmt.Println("  illustrate -input diagram.yaml -config theme.yaml -output out/diagram.svg")
	fmt.Println("\n  # Inspect the resolved layout tree")
	fmt.Println("  illustrate -input diagram.yaml -debug -verbose")
}

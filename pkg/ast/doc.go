// Package ast defines the typed abstract syntax tree consumed by the layout
// pipeline. Parsing source text into this tree is outside the scope of this
// module; documents are constructed directly or decoded from YAML (see
// cmd/illustrate), which unmarshals straight into these types via struct
// tags.
package ast

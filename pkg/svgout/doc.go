// Package svgout serialises a computed layout.Result into an SVG document,
// grounded on the canvas-drawing conventions of the donor's
// pkg/export/svg.go: a bytes.Buffer-backed github.com/ajstarks/svgo canvas,
// imperative per-shape draw calls, and inline CSS style strings. Colour
// values that were symbolic tokens (spec.md §1: "stylesheet / colour-token
// lookup" is explicitly out of scope) pass through as bare
// var(--token) references for an external stylesheet to resolve.
package svgout

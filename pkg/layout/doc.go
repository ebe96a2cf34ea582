// Package layout computes element positions and sizes from a resolved
// document: collecting intrinsic, container, and user constraints; solving
// them with pkg/solver; applying per-instance rotation; and routing
// connections between the final element bounds.
package layout

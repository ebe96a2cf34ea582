// Package routing computes the point sequence for a rendered connection:
// where it leaves its source element, where it bends, and where it enters
// its target, for each of the direct, orthogonal, and curved routing
// modes named in spec §5.
package routing

// Package constraint defines the typed constraint forms the layout engine
// solves: Fixed, Equal, GreaterOrEqual, LessOrEqual, Midpoint, and
// Contains, each carrying a source record for error reporting.
package constraint

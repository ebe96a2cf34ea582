// Package pathres resolves a path declaration (vertices plus line, arc, and
// curve commands) into a sequence of draw segments, normalising the result
// so that authored geometry starts at a sensible origin.
package pathres

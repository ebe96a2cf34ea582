// Package lint runs advisory checks over a computed layout: element
// overlap, containment-constraint violations, label collisions, a
// connection crossing an unrelated element, and near-miss alignment.
// None of these block rendering; they are reported for the author to
// review, grounded on original_source/src/layout/lint.rs.
package lint

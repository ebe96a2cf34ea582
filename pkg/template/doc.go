// Package template implements template registration and resolution:
// storing template definitions with parameters and anchors, and expanding
// template instances into plain statements with parameters substituted
// and child identifiers prefixed by the instance name.
package template

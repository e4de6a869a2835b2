// Package template defines the renderer-agnostic template contract. The pongo
// subpackage provides the default pongo2-backed implementation.
package template

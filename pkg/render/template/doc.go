// Package template defines the template engine contract used by markup
// renderers. The gotemplate subpackage provides a pongo2-backed engine.
package template

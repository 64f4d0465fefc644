package snippet

import "strings"

// DefaultRootName is used when a render call passes an empty root name.
const DefaultRootName = "TalonFXConfiguration"

// Indent is the per-depth indentation unit.
const Indent = "    "

// StringMode selects how string leaves that are not bare identifiers render.
type StringMode string

const (
	// StringModeEnum collapses whitespace into underscores and renders an
	// enum reference, e.g. sensorDirectionValue.Counter_Clockwise_Positive.
	StringModeEnum StringMode = "enum"
	// StringModeQuoted renders a Kotlin string literal instead, e.g. "rio 2".
	StringModeQuoted StringMode = "quoted"
)

// DefaultIdentifierMarkers lists the key substrings that mark numeric fields
// as identifiers or parameter indexes.
var DefaultIdentifierMarkers = []string{"Param", "ID"}

// Option configures a Renderer.
type Option func(*Renderer)

// WithIdentifierMarkers replaces the identifier marker list. Empty markers are
// skipped; an empty list disables the rule.
func WithIdentifierMarkers(markers ...string) Option {
	return func(r *Renderer) {
		out := make([]string, 0, len(markers))
		for _, marker := range markers {
			if strings.TrimSpace(marker) == "" {
				continue
			}
			out = append(out, marker)
		}
		r.markers = out
	}
}

// WithStringMode selects the rendering of non-identifier strings.
func WithStringMode(mode StringMode) Option {
	return func(r *Renderer) {
		if mode != "" {
			r.stringMode = mode
		}
	}
}

// WithRootName overrides the root type used for empty root names.
func WithRootName(name string) Option {
	return func(r *Renderer) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			r.rootName = trimmed
		}
	}
}

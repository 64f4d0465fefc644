package render

import (
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-phoenixgen/pkg/snippet"
)

// RenderOptions describe per-request presentation choices that do not change
// the configuration itself.
type RenderOptions struct {
	// Theme carries the resolved go-theme configuration. Renderers that have no
	// visual output ignore it.
	Theme *theme.RendererConfig
	// StringMode selects how string values that are not plain identifiers are
	// emitted in the snippet. The zero value means snippet.StringModeEnum.
	StringMode snippet.StringMode
}

// SnippetOptions translates the options into snippet renderer options.
func (o RenderOptions) SnippetOptions() []snippet.Option {
	if o.StringMode == "" {
		return nil
	}
	return []snippet.Option{snippet.WithStringMode(o.StringMode)}
}

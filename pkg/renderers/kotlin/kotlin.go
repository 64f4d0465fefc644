// Package kotlin renders device configurations as Kotlin object-initializer
// snippets.
package kotlin

import (
	"context"
	"errors"

	"github.com/goliatone/go-phoenixgen/pkg/render"
	"github.com/goliatone/go-phoenixgen/pkg/snippet"
)

// Name is the registry name of the Kotlin renderer.
const Name = "kotlin"

// ContentType is reported for Kotlin output.
const ContentType = "text/x-kotlin"

// FileExtension is the conventional extension of Kotlin sources.
const FileExtension = ".kt"

// Renderer emits the snippet followed by a trailing newline.
type Renderer struct {
	options []snippet.Option
	base    *snippet.Renderer
}

var _ render.FileRenderer = (*Renderer)(nil)

// New returns a renderer. Options apply to every call; per-request string
// modes are layered on top.
func New(options ...snippet.Option) *Renderer {
	return &Renderer{
		options: options,
		base:    snippet.New(options...),
	}
}

func (r *Renderer) Name() string        { return Name }
func (r *Renderer) ContentType() string { return ContentType }

// FileExtension implements render.FileRenderer.
func (r *Renderer) FileExtension() string { return FileExtension }

// Render implements render.Renderer.
func (r *Renderer) Render(ctx context.Context, req render.Request) ([]byte, error) {
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}
	if req.Config == nil {
		return nil, errors.New("kotlin: config is required")
	}
	return []byte(r.snippetFor(req.Options).Render(req.Config, req.Root()) + "\n"), nil
}

func (r *Renderer) snippetFor(opts render.RenderOptions) *snippet.Renderer {
	extra := opts.SnippetOptions()
	if len(extra) == 0 {
		return r.base
	}
	combined := make([]snippet.Option, 0, len(r.options)+len(extra))
	combined = append(combined, r.options...)
	combined = append(combined, extra...)
	return snippet.New(combined...)
}

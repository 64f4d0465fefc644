package render

import (
	"context"

	"github.com/goliatone/go-phoenixgen/pkg/config"
	"github.com/goliatone/go-phoenixgen/pkg/model"
)

// Renderer converts a device configuration into a byte representation
// (Kotlin source, an HTML preview, etc.).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, req Request) ([]byte, error)
}

// FileRenderer is implemented by renderers whose output has a conventional
// file extension, such as ".kt" for Kotlin sources.
type FileRenderer interface {
	Renderer
	FileExtension() string
}

// Request carries everything a renderer needs for a single call. Config is
// the fully merged tree (defaults plus overrides); renderers must not mutate
// it.
type Request struct {
	Device   model.Device
	Config   *config.Tree
	RootName string
	Options  RenderOptions
}

// Root returns the explicit root type name, falling back to the device's.
func (r Request) Root() string {
	if r.RootName != "" {
		return r.RootName
	}
	return r.Device.RootName
}

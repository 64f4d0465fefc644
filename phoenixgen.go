package phoenixgen

import (
	"context"

	"github.com/goliatone/go-phoenixgen/pkg/config"
	"github.com/goliatone/go-phoenixgen/pkg/orchestrator"
	"github.com/goliatone/go-phoenixgen/pkg/render"
	"github.com/goliatone/go-phoenixgen/pkg/renderers/kotlin"
	"github.com/goliatone/go-phoenixgen/pkg/snippet"
	theme "github.com/goliatone/go-theme"
)

// Tree aliases config.Tree so callers can build configs from the root package.
type Tree = config.Tree

// Request aliases orchestrator.Request.
type Request = orchestrator.Request

// RenderOptions describes per-request renderer settings such as the theme and
// string mode.
type RenderOptions = render.RenderOptions

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GenerateSnippet renders the Kotlin snippet for a catalog device with
// overrides merged over its defaults. Overrides may be nil.
func GenerateSnippet(ctx context.Context, deviceKey string, overrides *config.Tree, options ...orchestrator.Option) (string, error) {
	gen := orchestrator.New(options...)
	out, err := gen.Generate(ctx, orchestrator.Request{
		DeviceKey: deviceKey,
		Overrides: overrides,
		Renderer:  kotlin.Name,
	})
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// RenderSnippet renders tree directly, bypassing the device catalog. An empty
// rootName falls back to snippet.DefaultRootName.
func RenderSnippet(tree *config.Tree, rootName string, options ...snippet.Option) string {
	return snippet.New(options...).Render(tree, rootName)
}

// WithThemeSelector passes a go-theme selector through to the orchestrator so
// the html preview receives resolved tokens and assets.
func WithThemeSelector(selector theme.ThemeSelector) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector)
}

package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-phoenixgen/pkg/catalog"
	"github.com/goliatone/go-phoenixgen/pkg/config"
	"github.com/goliatone/go-phoenixgen/pkg/model"
	"github.com/goliatone/go-phoenixgen/pkg/render"
	"github.com/goliatone/go-phoenixgen/pkg/renderers/html"
	"github.com/goliatone/go-phoenixgen/pkg/renderers/kotlin"
	"github.com/goliatone/go-phoenixgen/pkg/snippet"
)

const defaultRendererName = kotlin.Name

var (
	// ErrDeviceNotFound is returned when the catalog has no device for the
	// requested key.
	ErrDeviceNotFound = errors.New("orchestrator: device not found")
	// ErrInvalidConfig wraps override values that do not fit the device.
	ErrInvalidConfig = errors.New("orchestrator: invalid config")
)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithCatalog injects the device store. Defaults to the embedded catalog.
func WithCatalog(store *catalog.Store) Option {
	return func(o *Orchestrator) {
		o.catalog = store
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithSnippetOptions configures the snippet renderer used by the built-in
// kotlin and html renderers. Ignored when WithRegistry is supplied.
func WithSnippetOptions(options ...snippet.Option) Option {
	return func(o *Orchestrator) {
		o.snippetOptions = append(o.snippetOptions, options...)
	}
}

// WithThemeSelector passes a go-theme selector through to renderers. Without
// one, renderers receive no theme.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
	}
}

// WithTransformer registers a Transformer that rewrites the device defaults
// before request overrides are merged. Transformers run in registration order.
func WithTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		if t != nil {
			o.transformers = append(o.transformers, t)
		}
	}
}

// WithLogger sets the logger used for pipeline diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Orchestrator coordinates the full pipeline from device key to rendered
// output. It applies sensible defaults (embedded catalog, kotlin renderer)
// while remaining open to dependency injection.
type Orchestrator struct {
	catalog         *catalog.Store
	registry        *render.Registry
	defaultRenderer string
	snippetOptions  []snippet.Option
	themeSelector   theme.ThemeSelector
	transformers    []Transformer
	logger          *slog.Logger
	initialiseErr   error
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes a single generation.
type Request struct {
	// DeviceKey selects the device definition, e.g. "motor" or "cancoder".
	DeviceKey string

	// Overrides is merged over the device defaults. Optional.
	Overrides *config.Tree

	// Renderer names the renderer to use. If empty, the orchestrator falls back
	// to the configured default renderer.
	Renderer string

	// RootName overrides the device's root configuration type.
	RootName string

	// ThemeName and ThemeVariant are forwarded to the theme selector.
	ThemeName    string
	ThemeVariant string

	// StringMode selects how non-identifier strings render in the snippet.
	StringMode snippet.StringMode
}

// Generate resolves the device, applies transformers to its defaults, merges
// the overrides and renders the result.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	device, cfg, err := o.resolve(ctx, req.DeviceKey, req.Overrides)
	if err != nil {
		return nil, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	themeCfg, err := o.resolveTheme(req.ThemeName, req.ThemeVariant)
	if err != nil {
		return nil, err
	}

	o.logger.Debug("rendering device config",
		"device", device.Key,
		"renderer", renderer.Name(),
		"root", firstNonEmpty(req.RootName, device.RootName),
		"sections", cfg.Len(),
	)

	output, err := renderer.Render(ctx, render.Request{
		Device:   device,
		Config:   cfg,
		RootName: req.RootName,
		Options: render.RenderOptions{
			Theme:      themeCfg,
			StringMode: req.StringMode,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

// Config returns the merged and checked configuration for a device without
// rendering it.
func (o *Orchestrator) Config(ctx context.Context, deviceKey string, overrides *config.Tree) (*config.Tree, error) {
	_, cfg, err := o.resolve(ctx, deviceKey, overrides)
	return cfg, err
}

// Device returns the catalog definition for key.
func (o *Orchestrator) Device(key string) (model.Device, error) {
	if err := o.initialiseErr; err != nil {
		return model.Device{}, err
	}
	device, ok := o.catalog.Device(key)
	if !ok {
		return model.Device{}, fmt.Errorf("%w: %q (available: %v)", ErrDeviceNotFound, key, o.catalog.Keys())
	}
	return device, nil
}

// Devices lists the catalog in key order.
func (o *Orchestrator) Devices() []model.Device {
	return o.catalog.Devices()
}

// Renderers lists the registered renderer names.
func (o *Orchestrator) Renderers() []string {
	if o.registry == nil {
		return nil
	}
	return o.registry.List()
}

// DescribeRenderers lists the registered renderers with their content types
// and file extensions.
func (o *Orchestrator) DescribeRenderers() []render.Descriptor {
	if o.registry == nil {
		return nil
	}
	return o.registry.Describe()
}

// RendererForFile names the renderer whose file extension matches path.
func (o *Orchestrator) RendererForFile(path string) (string, bool) {
	if o.registry == nil {
		return "", false
	}
	renderer, ok := o.registry.ForFile(path)
	if !ok {
		return "", false
	}
	return renderer.Name(), true
}

func (o *Orchestrator) resolve(ctx context.Context, key string, overrides *config.Tree) (model.Device, *config.Tree, error) {
	if ctx == nil {
		return model.Device{}, nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return model.Device{}, nil, err
	}
	if key == "" {
		return model.Device{}, nil, errors.New("orchestrator: device key is required")
	}

	device, err := o.Device(key)
	if err != nil {
		return model.Device{}, nil, err
	}

	cfg := model.DefaultConfig(device)
	for _, transformer := range o.transformers {
		cfg, err = transformer.Transform(ctx, device, cfg)
		if err != nil {
			return model.Device{}, nil, fmt.Errorf("orchestrator: transform config: %w", err)
		}
		if cfg == nil {
			return model.Device{}, nil, errors.New("orchestrator: transformer returned nil config")
		}
	}
	cfg = cfg.Merge(overrides)

	if err := model.CheckConfig(device, cfg); err != nil {
		return model.Device{}, nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return device, cfg, nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}

	renderer, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	if o.catalog == nil {
		store, err := catalog.Default()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: load catalog: %w", err)
			return
		}
		o.catalog = store
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		o.registry.MustRegister(kotlin.New(o.snippetOptions...))
		preview, err := html.New(html.WithDefaultStyles(), html.WithSnippetOptions(o.snippetOptions...))
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: html renderer: %w", err)
			return
		}
		o.registry.MustRegister(preview)
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

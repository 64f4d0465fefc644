// Package html renders a themed HTML preview of a device configuration: the
// device form with current values next to the Kotlin snippet it produces.
package html

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-phoenixgen/pkg/config"
	"github.com/goliatone/go-phoenixgen/pkg/model"
	"github.com/goliatone/go-phoenixgen/pkg/render"
	rendertemplate "github.com/goliatone/go-phoenixgen/pkg/render/template"
	gotemplate "github.com/goliatone/go-phoenixgen/pkg/render/template/gotemplate"
	"github.com/goliatone/go-phoenixgen/pkg/snippet"
)

// Name is the registry name of the preview renderer.
const Name = "html"

const pageTemplate = "templates/preview.tpl"

type Option func(*rendererConfig)

type rendererConfig struct {
	templateFS       fs.FS
	templatesDir     string
	templateRenderer rendertemplate.TemplateRenderer
	stylesheet       string
	inlineStyles     bool
	snippetOptions   []snippet.Option
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS. The bundle
// must contain templates/preview.tpl.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *rendererConfig) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk. Templates
// missing from the directory fall back to the embedded bundle.
func WithTemplatesDir(path string) Option {
	return func(cfg *rendererConfig) {
		cfg.templatesDir = strings.TrimSpace(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *rendererConfig) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithStylesheet links an external stylesheet. A theme asset resolved for
// StylesheetAssetKey takes precedence.
func WithStylesheet(href string) Option {
	return func(cfg *rendererConfig) {
		cfg.stylesheet = strings.TrimSpace(href)
	}
}

// WithDefaultStyles inlines the bundled stylesheet into the page head.
func WithDefaultStyles() Option {
	return func(cfg *rendererConfig) {
		cfg.inlineStyles = true
	}
}

// WithSnippetOptions configures the embedded snippet.
func WithSnippetOptions(options ...snippet.Option) Option {
	return func(cfg *rendererConfig) {
		cfg.snippetOptions = append(cfg.snippetOptions, options...)
	}
}

// Renderer produces the preview page.
type Renderer struct {
	templates      rendertemplate.TemplateRenderer
	snippetOptions []snippet.Option
}

var _ render.FileRenderer = (*Renderer)(nil)

// New constructs the preview renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := rendererConfig{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithBaseDir(cfg.templatesDir),
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	// Page-wide settings live in the engine globals; request data may
	// override them.
	globals := map[string]any{
		"generator":  "phoenixgen",
		"stylesheet": cfg.stylesheet,
	}
	if cfg.inlineStyles {
		globals["inline_styles"] = defaultStylesheet()
	}
	if err := renderer.GlobalContext(globals); err != nil {
		return nil, fmt.Errorf("html renderer: apply globals: %w", err)
	}

	return &Renderer{
		templates:      renderer,
		snippetOptions: cfg.snippetOptions,
	}, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// FileExtension implements render.FileRenderer.
func (r *Renderer) FileExtension() string {
	return ".html"
}

// Render implements render.Renderer.
func (r *Renderer) Render(ctx context.Context, req render.Request) ([]byte, error) {
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}
	if r.templates == nil {
		return nil, errors.New("html renderer: template renderer is nil")
	}
	if req.Config == nil {
		return nil, errors.New("html renderer: config is required")
	}

	options := append(append([]snippet.Option{}, r.snippetOptions...), req.Options.SnippetOptions()...)
	code := snippet.New(options...).Render(req.Config, req.Root())

	data := map[string]any{
		"device": map[string]any{
			"key":      req.Device.Key,
			"label":    deviceLabel(req),
			"summary":  req.Device.Summary,
			"rootName": req.Root(),
		},
		"sections": buildSections(req.Device, req.Config),
		"snippet":  code,
		"theme":    buildTheme(req.Options.Theme),
	}
	if href := themeStylesheet(req.Options.Theme); href != "" {
		data["stylesheet"] = href
	}

	result, err := r.templates.RenderTemplate(pageTemplate, data)
	if err != nil {
		return nil, fmt.Errorf("html renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func themeStylesheet(cfg *theme.RendererConfig) string {
	if cfg == nil || cfg.AssetURL == nil {
		return ""
	}
	return strings.TrimSpace(cfg.AssetURL(StylesheetAssetKey))
}

func deviceLabel(req render.Request) string {
	if req.Device.Label != "" {
		return req.Device.Label
	}
	if req.Device.Key != "" {
		return req.Device.Key
	}
	return req.Root()
}

func buildSections(device model.Device, cfg *config.Tree) []map[string]any {
	sections := make([]map[string]any, 0, len(device.Sections))
	for _, section := range device.Sections {
		fields := make([]map[string]any, 0, len(section.Fields))
		for _, field := range section.Fields {
			fields = append(fields, buildField(field, model.ValueFor(cfg, section, field)))
		}
		sections = append(sections, map[string]any{
			"title":  section.Title,
			"helper": section.Helper,
			"fields": fields,
		})
	}
	return sections
}

// buildField exposes the raw value and descriptor; the display and
// range_label template filters turn them into text.
func buildField(field model.Field, value config.Value) map[string]any {
	base := field.Base()
	out := map[string]any{
		"key":         base.Key,
		"label":       base.Label,
		"description": base.Description,
		"kind":        string(field.Kind()),
		"value":       config.ToAny(value),
	}

	switch f := field.(type) {
	case model.NumberField:
		out["suffix"] = f.Suffix
		if f.Min != nil {
			out["min"] = *f.Min
		}
		if f.Max != nil {
			out["max"] = *f.Max
		}
	case model.SelectField:
		options := make([]map[string]any, 0, len(f.Options))
		for _, opt := range f.Options {
			options = append(options, map[string]any{"label": opt.Label, "value": opt.Value})
		}
		out["options"] = options
	case model.BooleanField:
		out["trueLabel"] = f.TrueLabel
		out["falseLabel"] = f.FalseLabel
	}
	return out
}

func buildTheme(cfg *theme.RendererConfig) map[string]any {
	if cfg == nil {
		return map[string]any{}
	}
	return map[string]any{
		"name":    cfg.Theme,
		"variant": cfg.Variant,
		"style":   cssVarsStyle(cfg.CSSVars),
	}
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		name := key
		if !strings.HasPrefix(name, "--") {
			name = "--" + name
		}
		parts = append(parts, name+": "+vars[key])
	}
	return strings.Join(parts, "; ")
}

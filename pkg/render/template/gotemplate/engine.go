// Package gotemplate builds the pongo2-backed go-template engine used by the
// preview renderer, preloaded with the phoenixgen filters.
package gotemplate

import (
	"fmt"
	"io/fs"
	"strings"

	gotemplate "github.com/goliatone/go-template"

	"github.com/goliatone/go-phoenixgen/pkg/render/template"
)

// DefaultExtension is appended to template names that carry none.
const DefaultExtension = ".tpl"

var _ template.TemplateRenderer = (*gotemplate.Engine)(nil)

// Option configures the engine before construction.
type Option func(*config)

type config struct {
	baseDir   string
	templates fs.FS
	extension string
	funcs     map[string]any
	globals   map[string]any
}

// WithBaseDir loads templates from a directory on disk. When combined with
// WithFS the directory is searched first.
func WithBaseDir(dir string) Option {
	return func(cfg *config) {
		cfg.baseDir = strings.TrimSpace(dir)
	}
}

// WithFS loads templates from an fs.FS.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templates = files
	}
}

// WithExtension overrides DefaultExtension.
func WithExtension(ext string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(ext); trimmed != "" {
			cfg.extension = trimmed
		}
	}
}

// WithTemplateFunc adds filters (pongo2.FilterFunction values) or callable
// globals next to the built-in ones. Built-in names cannot be replaced.
func WithTemplateFunc(funcs map[string]any) Option {
	return func(cfg *config) {
		for name, fn := range funcs {
			name = strings.TrimSpace(name)
			if name == "" || fn == nil {
				continue
			}
			if _, builtin := filters[name]; builtin {
				continue
			}
			cfg.funcs[name] = fn
		}
	}
}

// WithGlobalData seeds values visible to every template. Request data with
// the same key wins.
func WithGlobalData(data map[string]any) Option {
	return func(cfg *config) {
		for key, value := range data {
			if key = strings.TrimSpace(key); key != "" {
				cfg.globals[key] = value
			}
		}
	}
}

// New returns a go-template engine with the phoenixgen filters registered.
// Either WithBaseDir or WithFS is required.
func New(options ...Option) (*gotemplate.Engine, error) {
	cfg := &config{
		extension: DefaultExtension,
		funcs:     make(map[string]any, len(filters)),
		globals:   make(map[string]any),
	}
	for name, fn := range filters {
		cfg.funcs[name] = fn
	}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}

	if cfg.baseDir == "" && cfg.templates == nil {
		return nil, fmt.Errorf("gotemplate: need to provide either base dir or fs.FS")
	}

	engineOptions := []gotemplate.Option{
		gotemplate.WithExtension(cfg.extension),
		gotemplate.WithTemplateFunc(cfg.funcs),
		gotemplate.WithGlobalData(cfg.globals),
	}
	if cfg.baseDir != "" {
		engineOptions = append(engineOptions, gotemplate.WithBaseDir(cfg.baseDir))
	}
	if cfg.templates != nil {
		engineOptions = append(engineOptions, gotemplate.WithFS(cfg.templates))
	}

	engine, err := gotemplate.NewRenderer(engineOptions...)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: load templates: %w", err)
	}
	return engine, nil
}

package orchestrator

import (
	"errors"
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"
	"gopkg.in/yaml.v3"
)

func (o *Orchestrator) resolveTheme(name, variant string) (*theme.RendererConfig, error) {
	if o.themeSelector == nil {
		return nil, nil
	}
	selection, err := o.themeSelector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: select theme: %w", err)
	}
	if selection == nil {
		return nil, nil
	}
	o.logger.Debug("theme selected", "theme", selection.Theme, "variant", selection.Variant)
	return rendererConfigFromSelection(selection), nil
}

// rendererConfigFromSelection flattens a manifest and its selected variant.
// Variant tokens, templates and asset files win over the base manifest.
func rendererConfigFromSelection(selection *theme.Selection) *theme.RendererConfig {
	cfg := &theme.RendererConfig{
		Theme:   selection.Theme,
		Variant: selection.Variant,
	}
	manifest := selection.Manifest
	if manifest == nil {
		return cfg
	}

	tokens := mergeStringMap(nil, manifest.Tokens)
	partials := mergeStringMap(nil, manifest.Templates)
	files := mergeStringMap(nil, manifest.Assets.Files)
	prefix := manifest.Assets.Prefix

	if v, ok := manifest.Variants[selection.Variant]; ok {
		tokens = mergeStringMap(tokens, v.Tokens)
		partials = mergeStringMap(partials, v.Templates)
		files = mergeStringMap(files, v.Assets.Files)
		if v.Assets.Prefix != "" {
			prefix = v.Assets.Prefix
		}
	}

	cfg.Tokens = tokens
	cfg.Partials = partials
	if len(tokens) > 0 {
		cfg.CSSVars = make(map[string]string, len(tokens))
		for key, value := range tokens {
			cfg.CSSVars["--"+strings.TrimPrefix(key, "--")] = value
		}
	}
	cfg.AssetURL = func(key string) string {
		file, ok := files[key]
		if !ok || file == "" {
			return ""
		}
		if prefix == "" || strings.Contains(file, "://") || strings.HasPrefix(file, "/") {
			return file
		}
		return strings.TrimRight(prefix, "/") + "/" + strings.TrimLeft(file, "/")
	}
	return cfg
}

func mergeStringMap(dst, src map[string]string) map[string]string {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]string, len(src))
	}
	for key, value := range src {
		dst[key] = value
	}
	return dst
}

// ManifestSelector is a theme.ThemeSelector over an in-memory manifest list.
// An empty theme name selects the first manifest; an empty variant selects the
// base manifest.
type ManifestSelector struct {
	manifests []*theme.Manifest
}

var _ theme.ThemeSelector = (*ManifestSelector)(nil)

// NewManifestSelector returns a selector over manifests. Nil entries are
// skipped.
func NewManifestSelector(manifests ...*theme.Manifest) *ManifestSelector {
	out := &ManifestSelector{}
	for _, m := range manifests {
		if m != nil {
			out.manifests = append(out.manifests, m)
		}
	}
	return out
}

// Select implements theme.ThemeSelector. Query options are not supported.
func (s *ManifestSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	if s == nil || len(s.manifests) == 0 {
		return nil, errors.New("theme: no manifests registered")
	}
	manifest := s.manifests[0]
	if name != "" {
		manifest = nil
		for _, m := range s.manifests {
			if m.Name == name {
				manifest = m
				break
			}
		}
		if manifest == nil {
			return nil, fmt.Errorf("theme: %q not found", name)
		}
	}
	if variant != "" {
		if _, ok := manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("theme: %q has no variant %q", manifest.Name, variant)
		}
	}
	return &theme.Selection{
		Theme:    manifest.Name,
		Variant:  variant,
		Manifest: manifest,
	}, nil
}

// LoadManifest parses a YAML (or JSON) theme manifest.
func LoadManifest(data []byte) (*theme.Manifest, error) {
	var manifest theme.Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("theme: parse manifest: %w", err)
	}
	if strings.TrimSpace(manifest.Name) == "" {
		return nil, errors.New("theme: manifest name is required")
	}
	return &manifest, nil
}

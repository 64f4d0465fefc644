package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/goliatone/go-phoenixgen/pkg/config"
	"github.com/goliatone/go-phoenixgen/pkg/model"
)

// Transformer rewrites the default config of a device before request
// overrides are merged over it. Implementations return a new tree or the one
// they were given.
type Transformer interface {
	Transform(ctx context.Context, device model.Device, cfg *config.Tree) (*config.Tree, error)
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, device model.Device, cfg *config.Tree) (*config.Tree, error)

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, device model.Device, cfg *config.Tree) (*config.Tree, error) {
	if fn == nil {
		return cfg, nil
	}
	return fn(ctx, device, cfg)
}

// AllDevices is the preset key applied to every device.
const AllDevices = "*"

// PresetTransformer overlays team-wide presets. The document maps a device
// key, or "*" for every device, to a partial config:
//
//	"*":
//	  Hardware:
//	    bus: canivore
//	motor:
//	  Ramps & Limits:
//	    supplyCurrentLimit: 60
//
// The "*" entry applies first, then the device entry, both on top of the
// device defaults and below request overrides.
type PresetTransformer struct {
	presets *config.Tree
}

// NewPresetTransformer constructs a transformer from a preset document.
func NewPresetTransformer(data []byte, format config.Format) (*PresetTransformer, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, errors.New("preset transformer: document is empty")
	}
	tree, err := config.Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("preset transformer: parse document: %w", err)
	}
	for _, entry := range tree.Entries() {
		if _, ok := entry.Value.(*config.Tree); !ok {
			return nil, fmt.Errorf("preset transformer: entry %q must be a mapping", entry.Key)
		}
	}
	return &PresetTransformer{presets: tree}, nil
}

// NewPresetTransformerFromFS loads a preset document from fsys. The format
// follows the file extension.
func NewPresetTransformerFromFS(fsys fs.FS, path string) (*PresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("preset transformer: path is required")
	}
	format, err := config.FormatFromPath(path)
	if err != nil {
		return nil, fmt.Errorf("preset transformer: %w", err)
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("preset transformer: read %s: %w", path, err)
	}
	return NewPresetTransformer(data, format)
}

// Transform applies the matching presets onto cfg.
func (t *PresetTransformer) Transform(ctx context.Context, device model.Device, cfg *config.Tree) (*config.Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := cfg
	for _, key := range []string{AllDevices, device.Key} {
		raw, ok := t.presets.Get(key)
		if !ok {
			continue
		}
		out = out.Merge(raw.(*config.Tree))
	}
	return out, nil
}

// Keys lists the preset entries in document order.
func (t *PresetTransformer) Keys() []string {
	return t.presets.Keys()
}

package testsupport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-phoenixgen/pkg/config"
	"github.com/goliatone/go-phoenixgen/pkg/model"
)

// MustLoadTree decodes a JSON, YAML or TOML fixture into a config tree. The
// format follows the file extension.
func MustLoadTree(t *testing.T, path string) *config.Tree {
	t.Helper()

	tree, err := LoadTree(path)
	if err != nil {
		t.Fatalf("load tree: %v", err)
	}
	return tree
}

// LoadTree returns a decoded fixture without requiring testing.T so callers
// can wire fixtures in setup functions.
func LoadTree(path string) (*config.Tree, error) {
	format, err := config.FormatFromPath(path)
	if err != nil {
		return nil, fmt.Errorf("testsupport: %w", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("testsupport: read tree: %w", err)
	}
	tree, err := config.Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("testsupport: decode %s: %w", path, err)
	}
	return tree, nil
}

// SampleDevice returns a small two-section device covering every field kind.
func SampleDevice() model.Device {
	lower, upper := 0.0, 63.0
	return model.Device{
		Key:      "motor",
		RootName: "TalonFXConfiguration",
		Label:    "TalonFX",
		Summary:  "Configure TalonFX Motor",
		Sections: []model.Section{
			{
				Title:  "Hardware",
				Helper: "Basic device identity.",
				Fields: []model.Field{
					model.NumberField{FieldBase: model.FieldBase{Key: "canId", Label: "CAN ID"}, Min: &lower, Max: &upper, Step: 1, Default: 1},
					model.SelectField{
						FieldBase: model.FieldBase{Key: "bus", Label: "CAN Bus"},
						Options:   []model.Option{{Label: "rio", Value: "rio"}, {Label: "canivore", Value: "canivore"}},
						Default:   "rio",
					},
					model.BooleanField{FieldBase: model.FieldBase{Key: "inverted", Label: "Invert Output"}, TrueLabel: "Clockwise +", FalseLabel: "Counter Clockwise +"},
				},
			},
			{
				Title: "Current Limits",
				Fields: []model.Field{
					model.NumberField{FieldBase: model.FieldBase{Key: "supplyCurrentLimit", Label: "Supply Current Limit"}, Suffix: "A", Default: 40},
					model.TextField{FieldBase: model.FieldBase{Key: "note", Label: "Note"}, Placeholder: "optional", Default: "left drive"},
				},
			},
		},
	}
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}

package template_test

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-phoenixgen/pkg/render/template"
	"github.com/goliatone/go-phoenixgen/pkg/render/template/gotemplate"
	"github.com/goliatone/go-phoenixgen/pkg/testsupport"
)

//go:embed testdata/templates/*.tpl
var embeddedTemplates embed.FS

func TestGoTemplateEngine_RenderTemplate(t *testing.T) {
	engine := newEngine(t)

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("hello", map[string]any{"name": "Ada"}, w)
	})

	want := testsupport.MustReadGoldenString(t, filepath.Join("testdata", "hello.golden"))
	if result != want {
		t.Fatalf("render template mismatch result\nwant: %q\n got: %q", want, result)
	}
	if written != want {
		t.Fatalf("render template mismatch writer\nwant: %q\n got: %q", want, written)
	}
}

func TestGoTemplateEngine_GlobalContext(t *testing.T) {
	engine := newEngine(t)
	if err := engine.GlobalContext(map[string]any{
		"settings": map[string]any{"bus": "canivore"},
	}); err != nil {
		t.Fatalf("global context: %v", err)
	}

	result, _ := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("use-global", nil, w)
	})

	want := testsupport.MustReadGoldenString(t, filepath.Join("testdata", "use-global.golden"))
	if result != want {
		t.Fatalf("render template mismatch result\nwant: %q\n got: %q", want, result)
	}
}

func TestGoTemplateEngine_FiltersAndCustomFilter(t *testing.T) {
	engine := newEngine(t)
	err := engine.RegisterFilter("shout", func(input any, _ any) (any, error) {
		if input == nil {
			return "", nil
		}
		return fmt.Sprintf("%s!", strings.ToUpper(fmt.Sprint(input))), nil
	})
	if err != nil {
		t.Fatalf("register filter: %v", err)
	}
	if err := engine.RegisterFilter("shout", func(any, any) (any, error) { return nil, nil }); err == nil {
		t.Fatalf("expected duplicate filter registration to fail")
	}

	result, _ := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("use-filter", map[string]any{"name": "Ada", "title": "Ramps Limits"}, w)
	})

	want := testsupport.MustReadGoldenString(t, filepath.Join("testdata", "use-filter.golden"))
	if result != want {
		t.Fatalf("render template mismatch result\nwant: %q\n got: %q", want, result)
	}
}

func TestGoTemplateEngine_RenderInline(t *testing.T) {
	engine := newEngine(t)

	got, err := engine.Render("{{ device }}().apply {", map[string]any{"device": "CANcoderConfiguration"})
	if err != nil {
		t.Fatalf("render inline: %v", err)
	}
	if got != "CANcoderConfiguration().apply {" {
		t.Fatalf("unexpected inline output %q", got)
	}

	if _, err := engine.RenderTemplate("missing", nil); err == nil {
		t.Fatalf("expected missing template error")
	}
}

func TestGoTemplateEngine_RequiresSource(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatalf("expected error without base dir or fs")
	}
}

func TestGoTemplateEngine_BaseDirAndGlobalData(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "hello.tpl"), []byte("Local {{ name }}"), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}

	engine, err := gotemplate.New(
		gotemplate.WithBaseDir(dir),
		gotemplate.WithFS(templatesSubFS(t)),
		gotemplate.WithGlobalData(map[string]any{"settings": map[string]any{"bus": "rio"}}),
	)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	got, err := engine.RenderTemplate("hello", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render from dir: %v", err)
	}
	if got != "Local Ada" {
		t.Fatalf("expected directory template to win, got %q", got)
	}

	got, err = engine.RenderTemplate("use-global", nil)
	if err != nil {
		t.Fatalf("render fallback: %v", err)
	}
	if !strings.HasPrefix(got, "Bus: rio") {
		t.Fatalf("expected embedded template with global data, got %q", got)
	}

	got, err = engine.RenderTemplate("use-global", map[string]any{"settings": map[string]any{"bus": "canivore"}})
	if err != nil {
		t.Fatalf("render override: %v", err)
	}
	if !strings.HasPrefix(got, "Bus: canivore") {
		t.Fatalf("expected request data to override globals, got %q", got)
	}
}

func TestGoTemplateEngine_TemplateFunc(t *testing.T) {
	amps := func(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		return pongo2.AsValue(in.String() + " A"), nil
	}
	shadow := func(*pongo2.Value, *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		return pongo2.AsValue("shadowed"), nil
	}
	engine, err := gotemplate.New(
		gotemplate.WithFS(templatesSubFS(t)),
		gotemplate.WithTemplateFunc(map[string]any{
			"amps":       pongo2.FilterFunction(amps),
			"identifier": pongo2.FilterFunction(shadow),
		}),
	)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	got, err := engine.RenderString("{{ limit|amps }} {{ title|identifier }}", map[string]any{
		"limit": "40",
		"title": "Current Limits",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "40 A CurrentLimits" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestGoTemplateEngine_FieldFilters(t *testing.T) {
	engine := newEngine(t)

	tests := []struct {
		name  string
		field map[string]any
		want  string
	}{
		{"bounded number", map[string]any{"kind": "number", "value": 40, "min": 0, "max": 63}, "40|[0, 63]"},
		{"open number", map[string]any{"kind": "number", "value": 1.5, "max": 2}, "1.5|[, 2]"},
		{"unbounded number", map[string]any{"kind": "number", "value": 0.25}, "0.25|"},
		{"select label", map[string]any{
			"kind":    "select",
			"value":   "canivore",
			"options": []map[string]any{{"label": "rio", "value": "rio"}, {"label": "CANivore", "value": "canivore"}},
		}, "CANivore|"},
		{"select unknown", map[string]any{"kind": "select", "value": "mxp"}, "mxp|"},
		{"boolean label", map[string]any{"kind": "boolean", "value": true, "trueLabel": "Clockwise +"}, "Clockwise +|"},
		{"boolean plain", map[string]any{"kind": "boolean", "value": false, "trueLabel": "Clockwise +"}, "false|"},
		{"text", map[string]any{"kind": "text", "value": "left drive"}, "left drive|"},
		{"section value", map[string]any{"kind": "text", "value": map[string]any{"a": 1}}, "|"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := engine.RenderString("{{ field|display }}|{{ field|range_label }}", map[string]any{"field": tt.field})
			if err != nil {
				t.Fatalf("render: %v", err)
			}
			if got != tt.want {
				t.Fatalf("want %q, got %q", tt.want, got)
			}
		})
	}
}

func newEngine(t *testing.T) template.TemplateRenderer {
	t.Helper()

	engine, err := gotemplate.New(gotemplate.WithFS(templatesSubFS(t)))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func templatesSubFS(t *testing.T) fs.FS {
	t.Helper()

	templatesFS, err := fs.Sub(embeddedTemplates, "testdata/templates")
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}
	return templatesFS
}

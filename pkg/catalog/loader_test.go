package catalog

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-phoenixgen/pkg/model"
	"github.com/goliatone/go-phoenixgen/pkg/snippet"
)

func TestLoadFS_Embedded(t *testing.T) {
	store, err := LoadFS(EmbeddedFS())
	if err != nil {
		t.Fatalf("load embedded: %v", err)
	}
	if diff := cmp.Diff([]string{"cancoder", "motor"}, store.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}

	motor, ok := store.Device("motor")
	if !ok {
		t.Fatalf("expected motor device")
	}
	if motor.RootName != "TalonFXConfiguration" || motor.Label != "TalonFX" {
		t.Fatalf("unexpected motor header: %+v", motor)
	}
	titles := make([]string, 0, len(motor.Sections))
	for _, section := range motor.Sections {
		titles = append(titles, section.Title)
	}
	if diff := cmp.Diff([]string{"Hardware", "Closed Loop Gains", "Ramps & Limits"}, titles); diff != "" {
		t.Fatalf("section titles mismatch (-want +got):\n%s", diff)
	}

	canID, ok := motor.Field("Hardware", "canId")
	if !ok {
		t.Fatalf("expected canId field")
	}
	number, ok := canID.(model.NumberField)
	if !ok {
		t.Fatalf("expected NumberField, got %T", canID)
	}
	if number.Min == nil || *number.Min != 0 || number.Max == nil || *number.Max != 63 || number.Default != 1 {
		t.Fatalf("unexpected canId descriptor: %+v", number)
	}

	inverted, _ := motor.Field("Hardware", "inverted")
	if b, ok := inverted.(model.BooleanField); !ok || b.TrueLabel != "Clockwise +" {
		t.Fatalf("unexpected inverted descriptor: %#v", inverted)
	}
}

func TestDefault_CancoderSnippet(t *testing.T) {
	store, err := Default()
	if err != nil {
		t.Fatalf("default catalog: %v", err)
	}
	cancoder, ok := store.Device("cancoder")
	if !ok {
		t.Fatalf("expected cancoder device")
	}

	got := snippet.Lines(model.DefaultConfig(cancoder), cancoder.RootName)
	want := []string{
		"CANcoderConfiguration().apply {",
		"    Identity = Identity().apply {",
		"        canId = 2.0",
		"        bus = busValue.rio",
		"        initStrategy = initStrategyValue.Boot_to_Absolute_Position",
		"    }",
		"    Sensor = Sensor().apply {",
		"        magnetOffset = 0.0",
		"        sensorDirection = sensorDirectionValue.Counter_Clockwise_Positive",
		"        statusFrameRate = 10.0",
		"    }",
		"}",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("snippet mismatch (-want +got):\n%s", diff)
	}

	again, err := Default()
	if err != nil || again != store {
		t.Fatalf("expected Default to return the shared store")
	}
}

func TestLoadFS_JSONAndSanitizedText(t *testing.T) {
	fsys := fstest.MapFS{
		"arm.json": {Data: []byte(`{
  "key": "arm",
  "rootName": "TalonFXConfiguration",
  "summary": "<b>Arm</b> pivot &amp; wrist",
  "sections": [
    {
      "title": "Gains",
      "helper": "<script>alert(1)</script>Tune gains",
      "fields": [
        {"type": "number", "key": "kP", "defaultValue": 0.5},
        {"type": "text", "key": "name", "description": "<i>free</i> text", "defaultValue": "arm"}
      ]
    }
  ]
}`)},
		"README.md": {Data: []byte("ignored")},
	}

	store, err := LoadFS(fsys)
	if err != nil {
		t.Fatalf("load fs: %v", err)
	}
	arm, ok := store.Device("arm")
	if !ok {
		t.Fatalf("expected arm device")
	}
	if arm.Label != "arm" {
		t.Fatalf("expected label to default to key, got %q", arm.Label)
	}
	if arm.Summary != "Arm pivot & wrist" {
		t.Fatalf("unexpected summary %q", arm.Summary)
	}
	if arm.Sections[0].Helper != "Tune gains" {
		t.Fatalf("unexpected helper %q", arm.Sections[0].Helper)
	}
	name, _ := arm.Field("Gains", "name")
	if name.Base().Description != "free text" {
		t.Fatalf("unexpected description %q", name.Base().Description)
	}
	if name.Base().Label != "name" {
		t.Fatalf("expected field label to default to key, got %q", name.Base().Label)
	}
}

func TestLoadFS_Errors(t *testing.T) {
	valid := "key: motor\nrootName: TalonFXConfiguration\nsections: []\n"
	tests := []struct {
		name string
		fsys fstest.MapFS
		want string
	}{
		{
			name: "duplicate device",
			fsys: fstest.MapFS{
				"a.yaml": {Data: []byte(valid)},
				"b.yaml": {Data: []byte(valid)},
			},
			want: "duplicate device",
		},
		{
			name: "unknown field type",
			fsys: fstest.MapFS{"a.yaml": {Data: []byte(`key: motor
rootName: TalonFXConfiguration
sections:
  - title: Hardware
    fields:
      - type: slider
        key: x
`)}},
			want: `unknown type "slider"`,
		},
		{
			name: "select default not an option",
			fsys: fstest.MapFS{"a.yaml": {Data: []byte(`key: motor
rootName: TalonFXConfiguration
sections:
  - title: Hardware
    fields:
      - type: select
        key: bus
        options: [{value: rio}]
        defaultValue: mxp
`)}},
			want: "is not an option",
		},
		{
			name: "wrong default type",
			fsys: fstest.MapFS{"a.yaml": {Data: []byte(`key: motor
rootName: TalonFXConfiguration
sections:
  - title: Hardware
    fields:
      - type: number
        key: canId
        defaultValue: one
`)}},
			want: "number default has type string",
		},
		{
			name: "empty file",
			fsys: fstest.MapFS{"a.yaml": {Data: []byte("  \n")}},
			want: "is empty",
		},
		{
			name: "missing root name",
			fsys: fstest.MapFS{"a.yaml": {Data: []byte("key: motor\n")}},
			want: "root name is required",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFS(tt.fsys)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadFS_NilFS(t *testing.T) {
	store, err := LoadFS(nil)
	if err != nil {
		t.Fatalf("load nil fs: %v", err)
	}
	if !store.Empty() {
		t.Fatalf("expected empty store")
	}
	if _, ok := store.Device("motor"); ok {
		t.Fatalf("expected lookup to miss")
	}
}

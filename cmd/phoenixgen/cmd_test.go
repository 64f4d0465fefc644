package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-phoenixgen/internal/errors"
	"github.com/goliatone/go-phoenixgen/internal/tui"
	"github.com/goliatone/go-phoenixgen/pkg/config"
	"github.com/goliatone/go-phoenixgen/pkg/model"
	"github.com/goliatone/go-phoenixgen/pkg/prompt"
)

// runCLI executes a fresh command tree and returns stdout, stderr and the
// classified error.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), errors.Classify(err)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func stubSeams(t *testing.T, terminal bool, picked tui.PickerResult, driver prompt.PromptDriver) {
	t.Helper()
	prevTerminal, prevPicker, prevDriver := stdinIsTerminal, runPicker, newPromptDriver
	stdinIsTerminal = func() bool { return terminal }
	runPicker = func([]model.Device) (tui.PickerResult, error) { return picked, nil }
	newPromptDriver = func() prompt.PromptDriver { return driver }
	t.Cleanup(func() {
		stdinIsTerminal, runPicker, newPromptDriver = prevTerminal, prevPicker, prevDriver
	})
}

// answerDriver accepts every default except the inputs keyed by message
// prefix.
type answerDriver struct {
	answers map[string]string
	abort   bool
}

func (d *answerDriver) Input(_ context.Context, cfg prompt.InputConfig) (string, error) {
	if d.abort {
		return "", prompt.ErrAborted
	}
	for prefix, answer := range d.answers {
		if strings.HasPrefix(cfg.Message, prefix) {
			return answer, nil
		}
	}
	return cfg.Default, nil
}

func (d *answerDriver) Confirm(_ context.Context, cfg prompt.ConfirmConfig) (bool, error) {
	return cfg.Default, nil
}

func (d *answerDriver) Select(_ context.Context, cfg prompt.SelectConfig) (int, error) {
	return cfg.DefaultIndex, nil
}

func (d *answerDriver) Info(context.Context, string) error { return nil }

func TestDevicesCommand(t *testing.T) {
	stdout, _, err := runCLI(t, "devices")
	if err != nil {
		t.Fatalf("devices: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and two devices, got:\n%s", stdout)
	}
	if fields := strings.Fields(lines[0]); !cmp.Equal(fields, []string{"KEY", "LABEL", "ROOT", "SECTIONS"}) {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "cancoder") || !strings.Contains(lines[1], "CANcoderConfiguration") {
		t.Fatalf("unexpected cancoder row %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "motor") || !strings.Contains(lines[2], "TalonFXConfiguration") {
		t.Fatalf("unexpected motor row %q", lines[2])
	}
}

func TestRenderCommand_SetOverrides(t *testing.T) {
	stdout, _, err := runCLI(t, "render", "-d", "cancoder",
		"--set", "Identity.canId=5",
		"--set", "Sensor.sensorDirection=Clockwise Positive",
	)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{
		"CANcoderConfiguration().apply {\n",
		"        canId = 5.0\n",
		"        sensorDirection = sensorDirectionValue.Clockwise_Positive\n",
	} {
		if !strings.Contains(stdout, want) {
			t.Fatalf("expected %q in output:\n%s", want, stdout)
		}
	}
}

func TestRenderCommand_ConfigFileRootAndQuotedStrings(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "cancoder.toml", `
[Identity]
canId = 12

[Sensor]
sensorDirection = "Clockwise Positive"
`)

	stdout, _, err := runCLI(t, "render", "-d", "cancoder", "-c", cfg, "--root", "EncoderConfig", "--quoted-strings")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{
		"EncoderConfig().apply {\n",
		"        canId = 12.0\n",
		`        sensorDirection = "Clockwise Positive"` + "\n",
	} {
		if !strings.Contains(stdout, want) {
			t.Fatalf("expected %q in output:\n%s", want, stdout)
		}
	}
}

func TestRenderCommand_OutputFileAndClipboard(t *testing.T) {
	var copied string
	prev := writeClipboard
	writeClipboard = func(text string) error {
		copied = text
		return nil
	}
	t.Cleanup(func() { writeClipboard = prev })

	out := filepath.Join(t.TempDir(), "motor.kt")
	stdout, _, err := runCLI(t, "render", "-d", "motor", "-o", out, "--copy")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if stdout != "" {
		t.Fatalf("expected nothing on stdout when writing a file, got %q", stdout)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.HasPrefix(string(data), "TalonFXConfiguration().apply {\n") {
		t.Fatalf("unexpected file content:\n%s", data)
	}
	if copied != string(data) {
		t.Fatalf("clipboard content differs from file content")
	}
}

func TestRenderCommand_ExitCodes(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want int
	}{
		{"unknown device", []string{"render", "-d", "pigeon"}, errors.ExitDeviceNotFound},
		{"out of range", []string{"render", "-d", "motor", "--set", "Hardware.canId=99"}, errors.ExitConfigError},
		{"not an option", []string{"render", "-d", "motor", "--set", "Hardware.bus=can fd"}, errors.ExitConfigError},
		{"malformed set", []string{"render", "-d", "motor", "--set", "Hardware.canId"}, errors.ExitGeneralError},
		{"section over number", []string{"render", "-d", "motor", "--set", "Hardware.canId.x=1"}, errors.ExitConfigError},
		{"unknown renderer", []string{"render", "-d", "motor", "--renderer", "svg"}, errors.ExitRenderError},
		{"unsupported config extension", []string{"render", "-d", "motor", "-c", "motor.ini"}, errors.ExitConfigError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runCLI(t, tt.args...)
			if err == nil {
				t.Fatalf("expected error")
			}
			if got := errors.GetExitCode(err); got != tt.want {
				t.Fatalf("exit code = %d, want %d (err: %v)", got, tt.want, err)
			}
		})
	}
}

func TestRenderCommand_NoDeviceWithoutTerminal(t *testing.T) {
	stubSeams(t, false, tui.PickerResult{}, nil)

	_, stderr, err := runCLI(t, "render")
	if err == nil || !strings.Contains(err.Error(), "--device is required") {
		t.Fatalf("expected device required error, got %v", err)
	}
	if !strings.Contains(stderr, "1. CANcoder (cancoder)") {
		t.Fatalf("expected device listing on stderr, got:\n%s", stderr)
	}
}

func TestRenderCommand_PickerEditsInteractively(t *testing.T) {
	gen, err := (&rootOptions{}).orchestrator()
	if err != nil {
		t.Fatalf("orchestrator: %v", err)
	}
	cancoder, err := gen.Device("cancoder")
	if err != nil {
		t.Fatalf("device: %v", err)
	}
	driver := &answerDriver{answers: map[string]string{"CAN ID": "21"}}
	stubSeams(t, true, tui.PickerResult{Action: tui.ActionEdit, Device: cancoder}, driver)

	stdout, _, err := runCLI(t, "render")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(stdout, "        canId = 21.0\n") {
		t.Fatalf("expected prompted value in output:\n%s", stdout)
	}
}

func TestRenderCommand_PickerQuit(t *testing.T) {
	stubSeams(t, true, tui.PickerResult{Action: tui.ActionQuit}, nil)

	stdout, _, err := runCLI(t, "render")
	if err != nil {
		t.Fatalf("quit should not fail, got %v", err)
	}
	if stdout != "" {
		t.Fatalf("expected no output after quitting, got %q", stdout)
	}
}

func TestRenderCommand_InteractiveAbort(t *testing.T) {
	stubSeams(t, true, tui.PickerResult{}, &answerDriver{abort: true})

	_, _, err := runCLI(t, "render", "-d", "motor", "-i")
	if got := errors.GetExitCode(err); got != errors.ExitAborted {
		t.Fatalf("exit code = %d, want %d (err: %v)", got, errors.ExitAborted, err)
	}
}

func TestRenderCommand_HTMLWithThemeFile(t *testing.T) {
	dir := t.TempDir()
	manifest := writeFile(t, dir, "theme.yaml", `
name: field
tokens:
  accent: "#ff6600"
variants:
  night:
    tokens:
      accent: "#222222"
`)

	stdout, _, err := runCLI(t, "render", "-d", "motor", "--renderer", "html",
		"--theme-file", manifest, "--theme", "field", "--variant", "night")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{`data-device="motor"`, `data-theme="field"`, `data-theme-variant="night"`, "--accent: #222222"} {
		if !strings.Contains(stdout, want) {
			t.Fatalf("expected %q in html output", want)
		}
	}
}

func TestRenderCommand_CatalogAndPreset(t *testing.T) {
	dir := t.TempDir()
	catalogDir := filepath.Join(dir, "devices")
	if err := os.Mkdir(catalogDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeFile(t, catalogDir, "arm.yaml", `
key: arm
label: Arm Pivot
rootName: TalonFXConfiguration
sections:
  - title: Motor Output Configs
    fields:
      - type: number
        key: PeakForwardDutyCycle
        min: 0
        max: 1
        defaultValue: 1
`)
	preset := writeFile(t, dir, "team.yaml", `
arm:
  Motor Output Configs:
    PeakForwardDutyCycle: 0.5
`)

	stdout, _, err := runCLI(t, "--catalog", catalogDir, "--preset", preset, "render", "-d", "arm")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := strings.Join([]string{
		"TalonFXConfiguration().apply {",
		"    MotorOutputConfigs = MotorOutput().apply {",
		"        PeakForwardDutyCycle = 0.5",
		"    }",
		"}",
		"",
	}, "\n")
	if diff := cmp.Diff(want, stdout); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}

	_, _, err = runCLI(t, "--catalog", filepath.Join(dir, "missing"), "devices")
	if got := errors.GetExitCode(err); got != errors.ExitConfigError {
		t.Fatalf("exit code = %d, want %d (err: %v)", got, errors.ExitConfigError, err)
	}
}

func TestDefaultsCommand(t *testing.T) {
	stdout, _, err := runCLI(t, "defaults", "cancoder", "--format", "json")
	if err != nil {
		t.Fatalf("defaults: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("decode json output: %v\n%s", err, stdout)
	}
	want := map[string]any{
		"Identity": map[string]any{"canId": 2.0, "bus": "rio", "initStrategy": "Boot to Absolute Position"},
		"Sensor":   map[string]any{"magnetOffset": 0.0, "sensorDirection": "Counter Clockwise Positive", "statusFrameRate": 10.0},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}

	stdout, _, err = runCLI(t, "defaults", "cancoder")
	if err != nil {
		t.Fatalf("defaults yaml: %v", err)
	}
	if !strings.HasPrefix(stdout, "Identity:\n    canId: 2\n") {
		t.Fatalf("unexpected yaml output:\n%s", stdout)
	}

	if _, _, err := runCLI(t, "defaults", "cancoder", "--format", "xml"); err == nil {
		t.Fatalf("expected unsupported format error")
	}
	_, _, err = runCLI(t, "defaults", "pigeon")
	if got := errors.GetExitCode(err); got != errors.ExitDeviceNotFound {
		t.Fatalf("exit code = %d, want %d", got, errors.ExitDeviceNotFound)
	}
}

func TestLoadOverrides_SetOrder(t *testing.T) {
	tree, err := loadOverrides(model.Device{}, "", []string{"Hardware.canId=3", "Hardware.canId=4", "Hardware.inverted=true"})
	if err != nil {
		t.Fatalf("load overrides: %v", err)
	}
	if got, _ := tree.GetPath("Hardware.canId"); got != config.Number(4) {
		t.Fatalf("expected last --set to win, got %v", got)
	}
	if got, _ := tree.GetPath("Hardware.inverted"); got != config.Bool(true) {
		t.Fatalf("expected boolean parse, got %v", got)
	}
}

func TestRenderCommand_SetParsesByFieldKind(t *testing.T) {
	dir := t.TempDir()
	catalogDir := filepath.Join(dir, "devices")
	if err := os.Mkdir(catalogDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeFile(t, catalogDir, "intake.yaml", `
key: intake
rootName: TalonFXConfiguration
sections:
  - title: Notes
    fields:
      - type: text
        key: label
        defaultValue: intake
      - type: select
        key: mode
        options: [{value: "1"}, {value: "2"}]
        defaultValue: "1"
      - type: number
        key: ratio
        defaultValue: 1
`)

	stdout, _, err := runCLI(t, "--catalog", catalogDir, "render", "-d", "intake", "--quoted-strings",
		"--set", "Notes.label=42",
		"--set", "Notes.mode=2",
		"--set", "Notes.ratio=3",
		"--set", `Notes.extra="true"`,
	)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{
		"        label = \"42\"\n",
		"        mode = \"2\"\n",
		"        ratio = 3.0\n",
		"        extra = extraValue.true\n",
	} {
		if !strings.Contains(stdout, want) {
			t.Fatalf("expected %q in output:\n%s", want, stdout)
		}
	}

	_, _, err = runCLI(t, "--catalog", catalogDir, "render", "-d", "intake", "--set", `Notes.ratio="3"`)
	if got := errors.GetExitCode(err); got != errors.ExitConfigError {
		t.Fatalf("exit code = %d, want %d (err: %v)", got, errors.ExitConfigError, err)
	}
}

func TestRenderersCommand(t *testing.T) {
	stdout, _, err := runCLI(t, "renderers")
	if err != nil {
		t.Fatalf("renderers: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and two renderers, got:\n%s", stdout)
	}
	if !strings.HasPrefix(lines[1], "html") || !strings.HasSuffix(lines[1], ".html") {
		t.Fatalf("unexpected html row %q", lines[1])
	}
	if fields := strings.Fields(lines[2]); !cmp.Equal(fields, []string{"kotlin", "text/x-kotlin", ".kt"}) {
		t.Fatalf("unexpected kotlin row %q", lines[2])
	}
}

func TestRenderCommand_RendererFromOutputExtension(t *testing.T) {
	dir := t.TempDir()

	page := filepath.Join(dir, "motor.HTML")
	if _, _, err := runCLI(t, "render", "-d", "motor", "-o", page); err != nil {
		t.Fatalf("render html: %v", err)
	}
	data, err := os.ReadFile(page)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.HasPrefix(string(data), "<!doctype html>") {
		t.Fatalf("expected html inferred from extension, got:\n%s", data)
	}

	forced := filepath.Join(dir, "motor.html")
	if _, _, err := runCLI(t, "render", "-d", "motor", "--renderer", "kotlin", "-o", forced); err != nil {
		t.Fatalf("render kotlin: %v", err)
	}
	data, err = os.ReadFile(forced)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.HasPrefix(string(data), "TalonFXConfiguration().apply {") {
		t.Fatalf("expected explicit --renderer to win, got:\n%s", data)
	}

	plain := filepath.Join(dir, "motor.txt")
	if _, _, err := runCLI(t, "render", "-d", "motor", "-o", plain); err != nil {
		t.Fatalf("render txt: %v", err)
	}
	data, err = os.ReadFile(plain)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.HasPrefix(string(data), "TalonFXConfiguration().apply {") {
		t.Fatalf("expected default renderer for unknown extension, got:\n%s", data)
	}
}

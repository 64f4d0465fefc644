package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestSetup_TextOutput(t *testing.T) {
	var buf bytes.Buffer
	Setup(false, false, &buf)

	Info("rendering device", "device", "motor")

	output := buf.String()
	if !strings.Contains(output, "rendering device") || !strings.Contains(output, "device=motor") {
		t.Errorf("unexpected text output: %s", output)
	}
}

func TestSetup_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	Setup(false, true, &buf)

	Info("rendering device", "device", "motor")

	output := buf.String()
	if !strings.Contains(output, `"msg":"rendering device"`) || !strings.Contains(output, `"device":"motor"`) {
		t.Errorf("unexpected JSON output: %s", output)
	}
}

func TestSetup_Verbosity(t *testing.T) {
	var buf bytes.Buffer
	Setup(false, false, &buf)
	if Verbose {
		t.Fatal("Verbose should be false after Setup(false, ...)")
	}
	Debug("hidden")
	if strings.Contains(buf.String(), "hidden") {
		t.Fatalf("debug record leaked in non-verbose mode: %s", buf.String())
	}

	buf.Reset()
	Setup(true, false, &buf)
	if !Verbose {
		t.Fatal("Verbose should be true after Setup(true, ...)")
	}
	Debug("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Fatalf("debug record missing in verbose mode: %s", buf.String())
	}
}

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	Setup(false, false, &buf)

	Warn("warn test")
	Error("error test")

	output := buf.String()
	for _, want := range []string{"level=WARN", "warn test", "level=ERROR", "error test"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output, got: %s", want, output)
		}
	}
}

func TestWith(t *testing.T) {
	var buf bytes.Buffer
	Setup(false, false, &buf)

	logger := With("component", "orchestrator")
	if logger == nil {
		t.Fatal("With() returned nil")
	}
	logger.Info("with test")

	output := buf.String()
	if !strings.Contains(output, "with test") || !strings.Contains(output, "component=orchestrator") {
		t.Errorf("unexpected output: %s", output)
	}
}

func TestSetup_NilWriter(t *testing.T) {
	Setup(false, false, nil)
	if Logger == nil {
		t.Error("Logger should not be nil after Setup with nil writer")
	}
}

func TestUserOutput(t *testing.T) {
	var out, errOut bytes.Buffer
	prevOut, prevErr := Stdout, Stderr
	Stdout, Stderr = &out, &errOut
	t.Cleanup(func() { Stdout, Stderr = prevOut, prevErr })

	UserInfo("Rendering %s", "motor")
	UserSuccess("Copied %d lines", 3)
	UserWarning("No TTY")
	UserError("failed: %v", "boom")

	if got, want := out.String(), "ℹ Rendering motor\n✓ Copied 3 lines\n"; got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
	if got, want := errOut.String(), "⚠ No TTY\n✗ failed: boom\n"; got != want {
		t.Errorf("stderr = %q, want %q", got, want)
	}
}

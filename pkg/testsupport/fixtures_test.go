package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-phoenixgen/pkg/config"
)

func TestLoadTree(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "override.yaml")
	if err := os.WriteFile(path, []byte("Hardware:\n  canId: 7\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	tree := MustLoadTree(t, path)
	got, ok := tree.GetPath("Hardware.canId")
	if !ok || got != config.Number(7) {
		t.Fatalf("unexpected value %v (ok=%v)", got, ok)
	}

	if _, err := LoadTree(filepath.Join(dir, "override.ini")); err == nil {
		t.Fatalf("expected unknown extension error")
	}
}

func TestSampleDeviceValidates(t *testing.T) {
	if err := SampleDevice().Validate(); err != nil {
		t.Fatalf("sample device invalid: %v", err)
	}
}

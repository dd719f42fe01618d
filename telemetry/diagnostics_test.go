package telemetry

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDiagnosticsWriteCSV(t *testing.T) {
	d := NewDiagnostics()
	d.FlagSkinny(3, 1.2)
	d.FlagSkinny(17, 4.9)

	dir := t.TempDir()
	path := filepath.Join(dir, "diagnostics.csv")
	if err := d.WriteCSV(path); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected non-empty CSV output")
	}
}

func TestDiagnosticsReset(t *testing.T) {
	d := NewDiagnostics()
	d.FlagSkinny(1, 0.5)
	if len(d.Skinny) != 1 {
		t.Fatalf("len(Skinny) = %d, want 1", len(d.Skinny))
	}
	d.Reset()
	if len(d.Skinny) != 0 {
		t.Fatalf("len(Skinny) after Reset = %d, want 0", len(d.Skinny))
	}
}

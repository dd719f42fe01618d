package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/redblobgames/mapgen4/blob"
	"github.com/redblobgames/mapgen4/mapgenerr"
)

func TestRunWritesDecodableBlob(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "points.data")

	if err := run(187, 60, 200, 1.0, out); err != nil {
		t.Fatalf("run: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	ps, err := blob.Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(ps.Points) == 0 {
		t.Fatal("expected a non-empty point set")
	}
}

func TestRunRejectsInvalidSpacing(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "points.data")

	err := run(1, 10, 5, 1.0, out)
	if kind, ok := mapgenerr.KindOf(err); !ok || kind != mapgenerr.InvalidParameter {
		t.Fatalf("run with mountain-spacing < spacing: got err %v, want InvalidParameter", err)
	}
}

package pipeline

import (
	"testing"

	"github.com/redblobgames/mapgen4/config"
	"github.com/redblobgames/mapgen4/mapgenerr"
	"github.com/redblobgames/mapgen4/mesh"
)

func testConstraintGrid(size int, value float64) []float64 {
	grid := make([]float64, size*size)
	for i := range grid {
		grid[i] = value
	}
	return grid
}

func newTestPipeline(t *testing.T, cfg *config.Config) *Pipeline {
	t.Helper()
	rng := mesh.NewPRNG(uint64(cfg.Elevation.Seed))
	ps, err := mesh.GeneratePoints(rng, cfg.Mesh.Spacing, cfg.Mesh.MountainSpacing, cfg.Mesh.Curvature)
	if err != nil {
		t.Fatalf("GeneratePoints: %v", err)
	}
	p, err := New(ps, cfg, 16, testConstraintGrid(16, 0.3), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return p
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	cfg.Mesh.Spacing = 60
	cfg.Mesh.MountainSpacing = 200
	return cfg
}

func TestNewRunsAllStagesOnFirstRecompute(t *testing.T) {
	p := newTestPipeline(t, testConfig(t))
	if p.Geometry == nil {
		t.Fatal("expected Geometry to be populated after New")
	}
	if len(p.Geometry.Positions) == 0 {
		t.Fatal("expected non-empty position buffer")
	}
	if p.elevationDirty || p.rainfallDirty || p.riversDirty {
		t.Error("expected all dirty bits cleared after a successful Recompute")
	}
}

func TestSetConfigRainfallOnlyLeavesElevationClean(t *testing.T) {
	cfg := testConfig(t)
	p := newTestPipeline(t, cfg)

	prevElevation := append([]float64(nil), p.Field.TriangleElevation...)

	updated := *cfg
	updated.Biomes.Raininess = cfg.Biomes.Raininess + 0.3
	p.SetConfig(&updated)

	if p.elevationDirty {
		t.Error("a biomes-only change should not dirty elevation")
	}
	if !p.rainfallDirty || !p.riversDirty {
		t.Error("a biomes-only change must dirty rainfall and rivers")
	}

	if err := p.Recompute(); err != nil {
		t.Fatalf("Recompute: %v", err)
	}

	for i, e := range p.Field.TriangleElevation {
		if e != prevElevation[i] {
			t.Fatalf("triangle %d elevation changed (%v -> %v) after a rainfall-only update", i, prevElevation[i], e)
		}
	}
}

func TestSetConstraintGridDirtiesEverything(t *testing.T) {
	cfg := testConfig(t)
	p := newTestPipeline(t, cfg)

	p.SetConstraintGrid(16, testConstraintGrid(16, -0.5))
	if !p.elevationDirty || !p.rainfallDirty || !p.riversDirty {
		t.Fatal("SetConstraintGrid must dirty elevation, rainfall, and rivers")
	}
	if err := p.Recompute(); err != nil {
		t.Fatalf("Recompute: %v", err)
	}
	for _, e := range p.Field.RegionElevation {
		if e >= 0 {
			continue // some inland regions are fine; just checking the run completed
		}
	}
}

func TestRecomputeRejectsInvalidParameters(t *testing.T) {
	cfg := testConfig(t)
	p := newTestPipeline(t, cfg)

	bad := *cfg
	bad.Mesh.Spacing = -1
	p.SetConfig(&bad)

	err := p.Recompute()
	if kind, ok := mapgenerr.KindOf(err); !ok || kind != mapgenerr.InvalidParameter {
		t.Fatalf("Recompute with negative spacing: got err %v, want InvalidParameter", err)
	}
}

func TestRecomputeIsIdempotentGivenUnchangedInputs(t *testing.T) {
	p := newTestPipeline(t, testConfig(t))
	first := append([]float32(nil), p.Geometry.Positions...)

	// Re-running without any dirty bits set should leave buffers as-is
	// (every stage is skipped, spec.md §4.11).
	if err := p.Recompute(); err != nil {
		t.Fatalf("Recompute: %v", err)
	}
	for i, v := range p.Geometry.Positions {
		if v != first[i] {
			t.Fatalf("position %d changed on a no-op recompute: %v -> %v", i, first[i], v)
		}
	}
}

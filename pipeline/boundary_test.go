package pipeline

import (
	"math"
	"testing"

	"github.com/redblobgames/mapgen4/mesh"
)

// TestBoundaryAllOceanGridHasNoLandOrRivers is spec.md §8's "All-ocean
// painted grid" boundary case: every region has elevation < 0, and no
// river triangles are emitted.
func TestBoundaryAllOceanGridHasNoLandOrRivers(t *testing.T) {
	cfg := scenarioConfig(t)
	cfg.Mesh.Spacing = 80
	cfg.Mesh.MountainSpacing = 260
	cfg.Elevation.NoisyCoastlines = 0
	grid := testConstraintGrid(16, -0.99)
	p := buildScenarioPipeline(t, cfg, grid, 16)

	for r := 0; r < p.Mesh.NumRegions(); r++ {
		rid := mesh.RegionID(r)
		if p.Mesh.IsGhostRegion(rid) {
			continue
		}
		if p.Field.RegionElevation[r] >= 0 {
			t.Fatalf("region %d elevation %v, want < 0 for an all-ocean grid", r, p.Field.RegionElevation[r])
		}
	}
	if len(p.RiverGeometry) != 0 {
		t.Fatalf("expected no river triangles over an all-ocean grid, got %d", len(p.RiverGeometry))
	}
}

// TestBoundaryAllLandGridDrainsEveryTriangle is spec.md §8's "All-land
// painted grid" boundary case: with no ghost-driven ocean seed, the
// fallback seeding from ghost-adjacent triangles must still leave every
// solid triangle with a downslope assignment, so the whole mesh drains
// to the boundary.
func TestBoundaryAllLandGridDrainsEveryTriangle(t *testing.T) {
	cfg := scenarioConfig(t)
	cfg.Mesh.Spacing = 80
	cfg.Mesh.MountainSpacing = 260
	// island=0 keeps the painted grid as is; any island blend sinks the
	// map corners below the ocean-seed threshold.
	cfg.Elevation.Island = 0
	grid := testConstraintGrid(16, 0.5)
	p := buildScenarioPipeline(t, cfg, grid, 16)

	for tr := 0; tr < p.Mesh.NumSolidTriangles(); tr++ {
		if p.Field.DownslopeSide[tr] < 0 {
			t.Fatalf("triangle %d has no downslope side over an all-land grid", tr)
		}
	}
}

// TestBoundaryWindAngleFullRotationMatchesZero is spec.md §8's "Wind
// angle rotated by 360°" boundary case: a full rotation must produce
// the same rainfall field as no rotation at all.
func TestBoundaryWindAngleFullRotationMatchesZero(t *testing.T) {
	cfg := scenarioConfig(t)
	cfg.Mesh.Spacing = 80
	cfg.Mesh.MountainSpacing = 260
	cfg.Biomes.WindAngleDeg = 0
	grid := testConstraintGrid(16, 0.3)
	base := buildScenarioPipeline(t, cfg, grid, 16)

	rotated := *cfg
	rotated.Biomes.WindAngleDeg = 360
	rp := buildScenarioPipeline(t, &rotated, grid, 16)

	for r, v := range base.Field.RegionRainfall {
		if math.Abs(v-rp.Field.RegionRainfall[r]) > 1e-6 {
			t.Fatalf("region %d rainfall differs after a 360deg wind rotation: %v vs %v", r, v, rp.Field.RegionRainfall[r])
		}
	}
}

// TestBoundaryZeroRaininessAndFlowZeroOutRainfallAndRivers is spec.md
// §8's last two boundary cases: raininess=0 zeroes every region's
// rainfall, and flow=0 leaves no river triangles (every width is 0).
func TestBoundaryZeroRaininessAndFlowZeroOutRainfallAndRivers(t *testing.T) {
	cfg := scenarioConfig(t)
	cfg.Mesh.Spacing = 80
	cfg.Mesh.MountainSpacing = 260
	cfg.Biomes.Raininess = 0
	cfg.Rivers.Flow = 0
	grid := testConstraintGrid(16, 0.3)
	p := buildScenarioPipeline(t, cfg, grid, 16)

	for r, v := range p.Field.RegionRainfall {
		if v != 0 {
			t.Fatalf("region %d rainfall %v, want 0 when raininess=0", r, v)
		}
	}
	if len(p.RiverGeometry) != 0 {
		t.Fatalf("expected no river triangles when flow=0, got %d", len(p.RiverGeometry))
	}
}

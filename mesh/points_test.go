package mesh

import "testing"

func TestGeneratePointsOrderingAndCounts(t *testing.T) {
	rng := NewPRNG(187)
	ps, err := GeneratePoints(rng, 40, 140, 1.0)
	if err != nil {
		t.Fatalf("GeneratePoints: %v", err)
	}

	want := ps.NumExteriorBoundary + ps.NumInteriorBoundary + ps.NumMountainPeaks
	infillCount := len(ps.Points) - want
	if infillCount <= 0 {
		t.Fatalf("expected a non-empty infill block, got %d points beyond boundary+peaks", infillCount)
	}
	if len(ps.Points) != want+infillCount {
		t.Fatalf("point count mismatch: len=%d, blocks sum to %d", len(ps.Points), want+infillCount)
	}
	if ps.NumBoundary() != ps.NumExteriorBoundary+ps.NumInteriorBoundary {
		t.Errorf("NumBoundary() = %d, want %d", ps.NumBoundary(), ps.NumExteriorBoundary+ps.NumInteriorBoundary)
	}
	if ps.NumExteriorBoundary == 0 || ps.NumInteriorBoundary == 0 {
		t.Error("expected non-empty boundary rings")
	}
	if ps.NumMountainPeaks == 0 {
		t.Error("expected at least one mountain peak for this spacing")
	}
}

func TestGeneratePointsDeterministic(t *testing.T) {
	a, err := GeneratePoints(NewPRNG(187), 40, 140, 1.0)
	if err != nil {
		t.Fatalf("GeneratePoints: %v", err)
	}
	b, err := GeneratePoints(NewPRNG(187), 40, 140, 1.0)
	if err != nil {
		t.Fatalf("GeneratePoints: %v", err)
	}
	if len(a.Points) != len(b.Points) {
		t.Fatalf("point counts differ: %d vs %d", len(a.Points), len(b.Points))
	}
	for i := range a.Points {
		if a.Points[i] != b.Points[i] {
			t.Fatalf("point %d differs: %v vs %v", i, a.Points[i], b.Points[i])
		}
	}
}

func TestGeneratePointsFeedsMeshBuild(t *testing.T) {
	ps, err := GeneratePoints(NewPRNG(187), 60, 200, 1.0)
	if err != nil {
		t.Fatalf("GeneratePoints: %v", err)
	}
	m, err := Build(ps.Points, ps.NumBoundary())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if m.NumBoundaryRegions() != ps.NumBoundary() {
		t.Errorf("NumBoundaryRegions() = %d, want %d", m.NumBoundaryRegions(), ps.NumBoundary())
	}
}

func TestInteriorRingStaysWithinMapBounds(t *testing.T) {
	exterior, interior := boundaryRings(40, 1.0)
	if len(exterior) == 0 || len(interior) == 0 {
		t.Fatal("expected non-empty rings")
	}
	for _, p := range interior {
		if p.X < -1 || p.X > mapSize+1 || p.Y < -1 || p.Y > mapSize+1 {
			t.Errorf("interior point %v strayed far outside the map square", p)
		}
	}
	// The exterior ring must lie outside the map square (that's the point
	// of it: it keeps the hull's outer triangles away from real terrain).
	anyOutside := false
	for _, p := range exterior {
		if p.X < 0 || p.X > mapSize || p.Y < 0 || p.Y > mapSize {
			anyOutside = true
			break
		}
	}
	if !anyOutside {
		t.Error("expected at least one exterior boundary point outside the map square")
	}
}

package mesh

import "testing"

func TestPoissonMinDistance(t *testing.T) {
	bounds := Bounds{MinX: 0, MinY: 0, MaxX: 200, MaxY: 200}
	radius := 8.0
	p := NewPoisson(bounds, radius, 10, NewPRNG(187))
	pts := p.Fill()

	if len(pts) < 2 {
		t.Fatalf("Fill() returned %d points, want at least 2", len(pts))
	}
	for i := 0; i < len(pts); i++ {
		if !bounds.contains(pts[i]) {
			t.Fatalf("point %v outside bounds %v", pts[i], bounds)
		}
		for j := i + 1; j < len(pts); j++ {
			dx, dy := pts[i].X-pts[j].X, pts[i].Y-pts[j].Y
			d2 := dx*dx + dy*dy
			if d2 < radius*radius-1e-6 {
				t.Fatalf("points %v and %v are %v apart, want >= %v", pts[i], pts[j], hypot(dx, dy), radius)
			}
		}
	}
}

func TestPoissonDeterministic(t *testing.T) {
	bounds := Bounds{MinX: 0, MinY: 0, MaxX: 100, MaxY: 100}
	a := NewPoisson(bounds, 6, 8, NewPRNG(42)).Fill()
	b := NewPoisson(bounds, 6, 8, NewPRNG(42)).Fill()
	if len(a) != len(b) {
		t.Fatalf("point counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("point %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestPoissonPreSeededPointsPreserved(t *testing.T) {
	bounds := Bounds{MinX: 0, MinY: 0, MaxX: 100, MaxY: 100}
	p := NewPoisson(bounds, 5, 8, NewPRNG(3))
	seed := Point{50, 50}
	if !p.AddPoint(seed) {
		t.Fatal("AddPoint rejected a valid in-bounds seed")
	}
	pts := p.Fill()
	if pts[0] != seed {
		t.Fatalf("first point is %v, want preserved seed %v", pts[0], seed)
	}
}

func TestPoissonAddPointRejectsOutOfBounds(t *testing.T) {
	bounds := Bounds{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}
	p := NewPoisson(bounds, 1, 8, NewPRNG(1))
	if p.AddPoint(Point{-1, 5}) {
		t.Error("AddPoint accepted an out-of-bounds point")
	}
}

func TestPoissonAddPointRejectsTooClose(t *testing.T) {
	bounds := Bounds{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}
	p := NewPoisson(bounds, 5, 8, NewPRNG(1))
	if !p.AddPoint(Point{5, 5}) {
		t.Fatal("first AddPoint should succeed")
	}
	if p.AddPoint(Point{5.1, 5}) {
		t.Error("AddPoint accepted a point closer than radius to an existing point")
	}
}

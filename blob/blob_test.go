package blob

import (
	"testing"

	"github.com/redblobgames/mapgen4/mapgenerr"
	"github.com/redblobgames/mapgen4/mesh"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	ps := mesh.PointSet{
		NumExteriorBoundary: 4,
		NumInteriorBoundary: 4,
		NumMountainPeaks:    2,
		Points: []mesh.Point{
			{X: 0, Y: 0},
			{X: 1000, Y: 1000},
			{X: 500, Y: 500},
			{X: -100, Y: 1100},
			{X: 123.456, Y: 789.012},
			{X: -50, Y: 50},
			{X: 100, Y: -20},
			{X: 999, Y: 1},
			{X: 0.5, Y: 0.5},
			{X: 700, Y: 700},
		},
	}

	data, err := Encode(ps)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	got, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if got.NumExteriorBoundary != ps.NumExteriorBoundary ||
		got.NumInteriorBoundary != ps.NumInteriorBoundary ||
		got.NumMountainPeaks != ps.NumMountainPeaks {
		t.Fatalf("counts mismatch: got %+v, want %+v", got, ps)
	}
	if len(got.Points) != len(ps.Points) {
		t.Fatalf("point count mismatch: got %d, want %d", len(got.Points), len(ps.Points))
	}

	// The rescale step quantizes to 16 bits, so round-trip is approximate,
	// not exact, for arbitrary floats (spec.md §4.12 only promises exact
	// reversal of the integer encoding, not lossless float round-trip).
	const tol = (1100.0 - (-100.0)) / 65535.0
	for i := range ps.Points {
		if abs(got.Points[i].X-ps.Points[i].X) > tol {
			t.Errorf("point %d X: got %v, want ~%v", i, got.Points[i].X, ps.Points[i].X)
		}
		if abs(got.Points[i].Y-ps.Points[i].Y) > tol {
			t.Errorf("point %d Y: got %v, want ~%v", i, got.Points[i].Y, ps.Points[i].Y)
		}
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func TestEncodeRejectsOutOfRange(t *testing.T) {
	ps := mesh.PointSet{Points: []mesh.Point{{X: -200, Y: 0}}}
	_, err := Encode(ps)
	if kind, ok := mapgenerr.KindOf(err); !ok || kind != mapgenerr.RangeError {
		t.Fatalf("Encode out-of-range: got %v, want RangeError", err)
	}
}

func TestDecodeRejectsShortData(t *testing.T) {
	_, err := Decode([]byte{1, 2, 3})
	if kind, ok := mapgenerr.KindOf(err); !ok || kind != mapgenerr.RangeError {
		t.Fatalf("Decode short data: got %v, want RangeError", err)
	}
}

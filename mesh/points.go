package mesh

import "math"

// mapSize is the fixed map square side length every generated point set
// is laid out against.
const mapSize = 1000.0

// PointSet is the ordered point array produced by GeneratePoints: a
// contiguous exterior-boundary ring, interior-boundary ring, mountain
// peaks, and infill, in that order, with the boundary between each block
// recorded so downstream code (mesh construction, C6 peak seeding) knows
// where each begins.
type PointSet struct {
	Points []Point

	NumExteriorBoundary int
	NumInteriorBoundary int
	NumMountainPeaks    int
}

// NumBoundary returns the combined exterior+interior boundary prefix
// length, the numBoundaryRegions argument mesh.Build expects.
func (ps PointSet) NumBoundary() int {
	return ps.NumExteriorBoundary + ps.NumInteriorBoundary
}

// GeneratePoints lays out the four point blocks of spec.md §4.4, in the
// same layered-pass style as the teacher's TerrainSystem.Generate (one
// self-contained method per pass, called in sequence): boundaryRings,
// then peaks, then infill. Deterministic given (rng, spacing,
// mountainSpacing, curvature).
func GeneratePoints(rng *PRNG, spacing, mountainSpacing, curvature float64) (PointSet, error) {
	ps := PointSet{}

	exterior, interior := boundaryRings(spacing, curvature)
	ps.NumExteriorBoundary = len(exterior)
	ps.NumInteriorBoundary = len(interior)
	ps.Points = append(ps.Points, exterior...)
	ps.Points = append(ps.Points, interior...)

	peaks := generatePeaks(rng, interior, mountainSpacing)
	ps.NumMountainPeaks = len(peaks)
	ps.Points = append(ps.Points, peaks...)

	infill := generateInfill(rng, interior, peaks, spacing)
	ps.Points = append(ps.Points, infill...)

	return ps, nil
}

// boundaryRings builds the two concentric rings around the map square.
// The interior ring sits just inside the square with a mild quadratic
// inward bulge per edge (discourages long thin triangles hugging a
// perfectly straight border); the exterior ring sits spacing/sqrt(2)
// outside each edge, plus the four outer corners, so the hull the
// triangulator sees is never degenerate at the map corners.
func boundaryRings(spacing, curvature float64) (exterior, interior []Point) {
	step := spacing * math.Sqrt2
	exteriorOffset := spacing / math.Sqrt2

	type edge struct {
		// from -> to walks one side of the square counter-clockwise;
		// inward is the unit vector pointing into the square.
		fromX, fromY, toX, toY   float64
		inwardX, inwardY         float64
		outwardX, outwardY       float64
	}
	edges := []edge{
		{0, 0, mapSize, 0, 0, 1, 0, -1},
		{mapSize, 0, mapSize, mapSize, -1, 0, 1, 0},
		{mapSize, mapSize, 0, mapSize, 0, -1, 0, 1},
		{0, mapSize, 0, 0, 1, 0, -1, 0},
	}

	for _, e := range edges {
		length := hypot(e.toX-e.fromX, e.toY-e.fromY)
		n := int(math.Round(length / step))
		if n < 1 {
			n = 1
		}
		for i := 0; i < n; i++ {
			t := float64(i) / float64(n)
			x := e.fromX + t*(e.toX-e.fromX)
			y := e.fromY + t*(e.toY-e.fromY)

			// Quadratic inward bulge: zero at the edge midpoint, growing to
			// curvature*spacing at the corners.
			bulge := curvature * 4 * (t - 0.5) * (t - 0.5) * spacing
			ix := x + e.inwardX*bulge
			iy := y + e.inwardY*bulge
			interior = append(interior, Point{ix, iy})

			ex := x + e.outwardX*exteriorOffset
			ey := y + e.outwardY*exteriorOffset
			exterior = append(exterior, Point{ex, ey})
		}
	}

	// Four outer corners, so the exterior hull fully encloses the
	// interior ring's corners too.
	exterior = append(exterior,
		Point{-exteriorOffset, -exteriorOffset},
		Point{mapSize + exteriorOffset, -exteriorOffset},
		Point{mapSize + exteriorOffset, mapSize + exteriorOffset},
		Point{-exteriorOffset, mapSize + exteriorOffset},
	)

	return exterior, interior
}

// generatePeaks Poisson-fills the interior at mountainSpacing, pre-seeded
// with the interior boundary ring so peaks stay away from the edge, and
// returns only the newly accepted points (the peak block).
func generatePeaks(rng *PRNG, interior []Point, mountainSpacing float64) []Point {
	bounds := Bounds{MinX: 0, MinY: 0, MaxX: mapSize, MaxY: mapSize}
	p := NewPoisson(bounds, mountainSpacing, 30, rng)
	for _, pt := range interior {
		p.AddPoint(pt)
	}
	seeded := p.NumPoints() // AddPoint may reject a seed
	all := p.Fill()
	return append([]Point(nil), all[seeded:]...)
}

// generateInfill Poisson-fills the interior at spacing, pre-seeded with
// the interior boundary ring and the mountain peaks, and returns only the
// newly accepted points. tries is kept low (spec.md §4.2: 6 is the
// documented floor for stability) since infill dominates the point
// count and a higher try count would dominate generation time for little
// packing benefit.
func generateInfill(rng *PRNG, interior, peaks []Point, spacing float64) []Point {
	bounds := Bounds{MinX: 0, MinY: 0, MaxX: mapSize, MaxY: mapSize}
	p := NewPoisson(bounds, spacing, 6, rng)
	for _, pt := range interior {
		p.AddPoint(pt)
	}
	for _, pt := range peaks {
		p.AddPoint(pt)
	}
	seeded := p.NumPoints() // AddPoint may reject a seed
	all := p.Fill()
	return append([]Point(nil), all[seeded:]...)
}

package terrain

import (
	"math"

	"github.com/redblobgames/mapgen4/mapgenerr"
	"github.com/redblobgames/mapgen4/mesh"
)

// mountainSlope is a fixed design constant (spec.md §4.7: "≈16-20").
const mountainSlope = 20.0

// sampleConstraintGrid bilinearly samples the painted constraint grid at
// normalized coordinates u,v in [0,1], clamping the 2x2 sample footprint
// to [0, size-2] (spec.md §4.7 step 1) rather than wrapping, unlike the
// teacher's toroidal sampleGrid in systems/resource_field.go — the
// painted grid has a real edge, not a seamless torus, so clamping (not
// wrapping) is the correct adaptation of that bilinear-sample shape.
func (f *Field) sampleConstraintGrid(u, v float64) float64 {
	size := f.ConstraintSize
	fx := u * float64(size-1)
	fy := v * float64(size-1)

	x0 := int(fx)
	y0 := int(fy)
	if x0 > size-2 {
		x0 = size - 2
	}
	if y0 > size-2 {
		y0 = size - 2
	}
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	x1, y1 := x0+1, y0+1

	tx := fx - float64(x0)
	ty := fy - float64(y0)

	g := f.ConstraintGrid
	i00 := y0*size + x0
	i10 := y0*size + x1
	i01 := y1*size + x0
	i11 := y1*size + x1

	a := g[i00] + (g[i10]-g[i00])*tx
	b := g[i01] + (g[i11]-g[i01])*tx
	return a + (b-a)*ty
}

func clampLow(x, lo float64) float64 {
	if x < lo {
		return lo
	}
	return x
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// RecomputeElevation runs the elevation pipeline (spec.md §4.7) over
// every solid triangle, then aggregates to regions. Requires
// RecomputeNoise and RecomputeMountainDistance to have already populated
// Noise and MountainDistance.
func (f *Field) RecomputeElevation() error {
	if f.ConstraintGrid == nil || f.ConstraintSize < 8 {
		return mapgenerr.New(mapgenerr.InvalidParameter, "elevation: constraint grid not set or smaller than 8x8 (size=%d)", f.ConstraintSize)
	}

	m := f.Mesh
	cfg := f.Cfg.Elevation
	for t := 0; t < m.NumSolidTriangles(); t++ {
		p := m.TrianglePos(mesh.TriangleID(t))
		u, v := p.X/1000, p.Y/1000
		e := f.sampleConstraintGrid(u, v)

		if cfg.Island > 0 {
			// Blend the painted elevation toward a synthetic radial island
			// shape (+1 at the map center, falling below 0 past roughly
			// 70% of the way to a corner), so island=1 produces a
			// coastline regardless of what's painted and island=0 leaves
			// the painted grid untouched.
			d := math.Hypot(u-0.5, v-0.5)
			islandShape := 1 - 2*d
			e = (1-cfg.Island)*e + cfg.Island*islandShape
		}

		n := f.Noise[t]
		// n0 is not one of the six cached scales; the lowest-frequency
		// sample (n1) is reused for it since both formulas want a
		// low-frequency modulator.
		n0, n1, n4, n5, n6 := n[0], n[0], n[3], n[4], n[5]

		e += cfg.NoisyCoastlines * (1 - e*e*e*e) * (n4 + n5/2 + n6/4)

		if e > 0 {
			weight := 1 - 0.5*(1+n0)
			eh := weight*n5 + (1-weight)*n6
			eh = clampLow(eh, 0.01) * cfg.HillHeight

			em := 1 - mountainSlope/math.Pow(2, cfg.MountainSharpness)*f.MountainDistance[t]
			em = clampLow(em, 0.01)

			e = (1-e*e)*eh + e*e*em
		} else {
			e = e * (cfg.OceanDepth + n1)
		}

		f.TriangleElevation[t] = clamp(e, -1, 1)
	}

	for r := 0; r < m.NumRegions(); r++ {
		if m.IsGhostRegion(mesh.RegionID(r)) {
			continue
		}
		sum := 0.0
		count := 0
		anyWater := false
		for _, t := range m.TAroundR(mesh.RegionID(r)) {
			if m.IsGhostTriangle(t) {
				continue
			}
			e := f.TriangleElevation[t]
			sum += e
			count++
			if e < 0 {
				anyWater = true
			}
		}
		avg := 0.0
		if count > 0 {
			avg = sum / float64(count)
		}
		if anyWater && avg >= 0 {
			avg = -0.001
		}
		f.RegionElevation[r] = avg
	}
	return nil
}

package terrain

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/redblobgames/mapgen4/mesh"
)

// windProjection projects a region's position onto the wind direction
// unit vector; lower values are further upwind (spec.md §4.8 step 1).
func (f *Field) windProjection(r mesh.RegionID) float64 {
	p := f.Mesh.RegionPos(r)
	d := f.Cfg.Derived
	return floats.Dot([]float64{p.X, p.Y}, []float64{d.WindDirX, d.WindDirY})
}

// RecomputeRainfall runs the rainfall pipeline (spec.md §4.8) in wind
// order. Requires RegionElevation to already be populated.
func (f *Field) RecomputeRainfall() {
	m := f.Mesh
	cfg := f.Cfg.Biomes
	angle := f.Cfg.Derived.WindDirX*1e9 + f.Cfg.Derived.WindDirY // cheap identity for change detection

	if !f.haveWindOrder || angle != f.lastWindAngle {
		type regionProj struct {
			r    int32
			proj float64
		}
		pairs := make([]regionProj, 0, m.NumRegions())
		for r := 0; r < m.NumRegions(); r++ {
			if !m.IsGhostRegion(mesh.RegionID(r)) {
				pairs = append(pairs, regionProj{int32(r), f.windProjection(mesh.RegionID(r))})
			}
		}
		sort.Slice(pairs, func(i, j int) bool { return pairs[i].proj < pairs[j].proj })

		order := make([]int32, len(pairs))
		for i, p := range pairs {
			order[i] = p.r
		}
		f.windOrder = order
		f.haveWindOrder = true
		f.lastWindAngle = angle
	}

	for i := range f.RegionHumidity {
		f.RegionHumidity[i] = 0
		f.RegionRainfall[i] = 0
	}

	projCache := make(map[mesh.RegionID]float64, m.NumRegions())
	for r := 0; r < m.NumRegions(); r++ {
		if !m.IsGhostRegion(mesh.RegionID(r)) {
			projCache[mesh.RegionID(r)] = f.windProjection(mesh.RegionID(r))
		}
	}

	for _, ri := range f.windOrder {
		r := mesh.RegionID(ri)
		rProj := projCache[r]

		upSum, upCount := 0.0, 0
		for _, nb := range m.RAroundR(r) {
			if m.IsGhostRegion(nb) {
				continue
			}
			if projCache[nb] < rProj {
				upSum += f.RegionHumidity[nb]
				upCount++
			}
		}
		humidity := 0.0
		if upCount > 0 {
			humidity = upSum / float64(upCount)
		}
		rainfall := cfg.Raininess * humidity

		if m.IsBoundaryRegion(r) {
			humidity = 1
		}

		elev := f.RegionElevation[r]
		if elev < 0 {
			humidity += cfg.Evaporation * math.Abs(elev)
		}

		if threshold := 1 - elev; humidity > threshold {
			orographic := cfg.RainShadow * (humidity - threshold)
			rainfall += cfg.Raininess * orographic
			humidity -= orographic
		}

		f.RegionHumidity[r] = humidity
		f.RegionRainfall[r] = rainfall
	}
}


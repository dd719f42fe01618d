package terrain

import (
	"container/heap"

	"github.com/redblobgames/mapgen4/mesh"
)

// RecomputeRivers runs the two-pass rivers pipeline of spec.md §4.9.
// Requires RegionRainfall and RegionElevation to already be populated.
func (f *Field) RecomputeRivers() {
	m := f.Mesh

	for i := range f.DownslopeSide {
		f.DownslopeSide[i] = sideUnset
	}
	for i := range f.FlowSide {
		f.FlowSide[i] = 0
	}

	pq := &triQueue{}
	heap.Init(pq)
	seq := 0

	// Phase A: ocean triangles point toward their lowest neighbor and
	// seed the flood fill, in triangle-id order for deterministic
	// tie-breaking.
	haveOceanSeed := false
	for t := 0; t < m.NumSolidTriangles(); t++ {
		if f.TriangleElevation[t] >= -0.1 {
			continue
		}
		best := sideNone
		bestElev := 0.0
		haveBest := false
		for _, s := range m.SAroundT(mesh.TriangleID(t)) {
			nb := m.TOuter(s)
			if m.IsGhostTriangle(nb) {
				continue
			}
			e := f.TriangleElevation[nb]
			if !haveBest || e < bestElev {
				bestElev = e
				best = int32(s)
				haveBest = true
			}
		}
		f.DownslopeSide[t] = best
		heap.Push(pq, &triQueueItem{t: int32(t), priority: f.TriangleElevation[t], seq: seq})
		seq++
		haveOceanSeed = true
	}

	// Fallback seeding for an all-land painted grid (spec.md §8 "All-land
	// painted grid" boundary case): with no ocean triangle to seed from,
	// every triangle touching the ghost-closed hull points out toward its
	// ghost side instead, so the flood fill still reaches and drains
	// every solid triangle to the boundary.
	if !haveOceanSeed {
		for t := 0; t < m.NumSolidTriangles(); t++ {
			for _, s := range m.SAroundT(mesh.TriangleID(t)) {
				if !m.IsGhostTriangle(m.TOuter(s)) {
					continue
				}
				f.DownslopeSide[t] = int32(s)
				heap.Push(pq, &triQueueItem{t: int32(t), priority: f.TriangleElevation[t], seq: seq})
				seq++
				break
			}
		}
	}

	f.triOrder = f.triOrder[:0]
	for pq.Len() > 0 {
		cur := heap.Pop(pq).(*triQueueItem)
		f.triOrder = append(f.triOrder, cur.t)
		for _, s := range m.SAroundT(mesh.TriangleID(cur.t)) {
			nb := m.TOuter(s)
			if m.IsGhostTriangle(nb) {
				continue
			}
			if f.DownslopeSide[nb] != sideUnset {
				continue
			}
			f.DownslopeSide[nb] = int32(m.Opposite(s))
			heap.Push(pq, &triQueueItem{t: int32(nb), priority: f.TriangleElevation[nb], seq: seq})
			seq++
		}
	}

	// Moisture and flow.
	riversFlow := f.Cfg.Rivers.Flow
	for t := 0; t < m.NumSolidTriangles(); t++ {
		sum := 0.0
		corners := m.RAroundT(mesh.TriangleID(t))
		for _, r := range corners {
			sum += f.RegionRainfall[r]
		}
		moisture := sum / float64(len(corners))
		f.Moisture[t] = moisture

		if f.TriangleElevation[t] >= 0 {
			f.Flow[t] = riversFlow * moisture * moisture
		} else {
			f.Flow[t] = 0
		}
	}

	for i := len(f.triOrder) - 1; i >= 0; i-- {
		t1 := f.triOrder[i]
		s := f.DownslopeSide[t1]
		if s < 0 {
			continue
		}
		trunk := m.TOuter(mesh.SideID(s))
		if m.IsGhostTriangle(trunk) {
			continue
		}
		f.Flow[trunk] += f.Flow[t1]
		f.FlowSide[s] += f.Flow[t1]
		if f.TriangleElevation[trunk] > f.TriangleElevation[t1] && f.TriangleElevation[t1] >= 0 {
			f.TriangleElevation[trunk] = f.TriangleElevation[t1]
		}
	}
}

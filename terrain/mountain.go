package terrain

import (
	"container/heap"

	"github.com/redblobgames/mapgen4/mesh"
)

// triQueueItem is one entry in the mountain-distance/rivers priority
// queue, grounded on systems/astar.go's nodeHeap (the same "open set"
// shape, repurposed here for a flood fill instead of a path search).
type triQueueItem struct {
	t        int32
	priority float64
	seq      int // insertion order, breaks priority ties deterministically
	index    int
}

type triQueue []*triQueueItem

func (q triQueue) Len() int { return len(q) }
func (q triQueue) Less(i, j int) bool {
	if q[i].priority != q[j].priority {
		return q[i].priority < q[j].priority
	}
	return q[i].seq < q[j].seq
}
func (q triQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}
func (q *triQueue) Push(x any) {
	item := x.(*triQueueItem)
	item.index = len(*q)
	*q = append(*q, item)
}
func (q *triQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return item
}

// RecomputeMountainDistance rebuilds sideWeight from the current
// jaggedness/seed and runs a priority-queue BFS (spec.md §4.6) outward
// from PeakTriangles, writing MountainDistance. Unreached triangles keep
// the -1 sentinel.
func (f *Field) RecomputeMountainDistance() {
	m := f.Mesh
	spacing := f.Cfg.Mesh.Spacing
	jagged := f.Cfg.Elevation.MountainJagged

	rng := mesh.NewPRNG(uint64(f.Cfg.Elevation.Seed) ^ 0x6d6f756e74)
	for s := 0; s < m.NumSides(); s++ {
		u, v := rng.Float64(), rng.Float64()
		f.sideWeight[s] = spacing * (1 + jagged*(u-v))
	}

	for i := range f.MountainDistance {
		f.MountainDistance[i] = -1
	}

	pq := &triQueue{}
	heap.Init(pq)
	seq := 0
	for _, t := range f.PeakTriangles {
		if m.IsGhostTriangle(mesh.TriangleID(t)) {
			continue
		}
		f.MountainDistance[t] = 0
		heap.Push(pq, &triQueueItem{t: t, priority: 0, seq: seq})
		seq++
	}

	for pq.Len() > 0 {
		cur := heap.Pop(pq).(*triQueueItem)
		for _, s := range m.SAroundT(mesh.TriangleID(cur.t)) {
			nb := m.TOuter(s)
			if m.IsGhostTriangle(nb) {
				continue
			}
			if f.MountainDistance[nb] != -1 {
				continue
			}
			dist := cur.priority + f.sideWeight[s]
			f.MountainDistance[nb] = dist
			heap.Push(pq, &triQueueItem{t: int32(nb), priority: dist, seq: seq})
			seq++
		}
	}
}
